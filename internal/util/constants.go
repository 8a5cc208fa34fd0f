// Package util provides common utility functions and constants used across the
// hkctl application. This package is intentionally kept dependency-free
// (no imports from other internal/* packages) to serve as a shared foundation
// without introducing circular dependencies.
package util

const (
	// DefaultHost is the address of the automation service when neither
	// config.yaml nor HKCTL_HOST names one. The service only listens on the
	// loopback interface of the machine that owns the HomeKit database.
	// Used by: internal/appconfig/config.go (Default, Load).
	DefaultHost = "127.0.0.1"

	// DefaultPort is the well-known port of the automation service. It is used
	// when the --port flag is absent and no port is configured.
	//
	// Used by: internal/appconfig/config.go (Default, Load, Config.ResolvePort).
	DefaultPort uint16 = 55123

	// AppName names the binary, the config directory and the env prefix.
	AppName = "hkctl"

	EnvHost = "HKCTL_HOST"
	EnvPort = "HKCTL_PORT"
	EnvHome = "HKCTL_HOME"
)
