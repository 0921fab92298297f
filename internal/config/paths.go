// ABOUTME: Standard filesystem paths for termlens configuration
// ABOUTME: Resolves ~/.termlens/ for global and .termlens/ for local settings

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName = ".termlens"
	localDirName  = ".termlens"
	configName    = "config.yaml"
)

// GlobalDir returns the user-global config directory (~/.termlens/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), configName)
}

// LocalConfigFile returns the path to the directory-local config file.
func LocalConfigFile(dir string) string {
	return filepath.Join(dir, localDirName, configName)
}
