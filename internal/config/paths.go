package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"eunify/internal/errors"
)

const (
	// EnvConfigPath names an explicit config file
	EnvConfigPath = "EUNIFY_CONFIG"
	// ConfigName is the config file name without extension
	ConfigName = "eunify"
	// ConfigFileName is the YAML config file looked for in each search dir
	ConfigFileName = ConfigName + ".yaml"
)

// SearchDirs lists the directories viper scans for eunify.yaml, highest
// priority first
func SearchDirs() []string {
	dirs := []string{"."}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, ConfigName))
	}
	if home := os.Getenv("HOME"); home != "" {
		dirs = append(dirs, filepath.Join(home, ".config", ConfigName))
	}
	return append(dirs, filepath.Join("/etc", ConfigName))
}

// readConfig loads path into v, or searches SearchDirs when path is
// empty. It returns the file read, or "" when none was found.
func readConfig(v *viper.Viper, path string) (string, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return path, errors.Wrapf(err, "read config %s", path)
		}
		return path, nil
	}

	// no SetConfigType: with a type set viper also accepts an
	// extensionless "eunify" file, which is usually the binary itself
	v.SetConfigName(ConfigName)
	for _, dir := range SearchDirs() {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return v.ConfigFileUsed(), errors.Wrap(err, "read config")
	}
	return v.ConfigFileUsed(), nil
}
