package config

// Program identity shown in Help > About and by --version.
const (
	AppName = "cubeview"
	Version = "0.1.0"
)
