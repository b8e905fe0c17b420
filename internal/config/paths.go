package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// GetGlobalConfigDir returns the path to the global configuration directory
// (~/.taskgraph). It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskgraph"), nil
}

// GetDataBasePath returns the directory holding the graph database.
// Resolution order (first match wins):
//  1. Explicit config via "data.path" (viper/env/flag)
//  2. Local project directory: .taskgraph (if it exists)
//  3. XDG_DATA_HOME/taskgraph (if XDG_DATA_HOME is set)
//  4. Global fallback: ~/.taskgraph
func GetDataBasePath() string {
	if path := viper.GetString(KeyDataPath); path != "" {
		return path
	}

	local := ".taskgraph"
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		return local
	}

	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "taskgraph")
	}

	dir, err := GetGlobalConfigDir()
	if err != nil {
		return ".taskgraph"
	}
	return dir
}

// SetDefaults registers default values on the global viper instance.
func SetDefaults() {
	viper.SetDefault(KeyServerPort, DefaultServerPort)
	viper.SetDefault(KeyOverrideInProgress, DefaultOverrideInProgress)
}
