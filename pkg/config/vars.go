package config

import (
	"path/filepath"
)

var (
	// MinVersionADIF determines the oldest ADIF specification export that
	// adiftest can read. Newer versions are all supported.
	MinVersionADIF = "v3.0.5"
	// AppName is used in generating file system paths.
	AppName = "adiftest"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/adiftest by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/adiftest/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/adiftest/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// PlanFilePath returns the full path to the default record plan.
// Returns ~/.config/adiftest/plan.yaml by default.
func PlanFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "plan.yaml")
}
