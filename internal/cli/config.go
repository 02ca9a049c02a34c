package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/bisurvey/internal/paths"
	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDataFile = "data_file"
	cfgKeyLogo     = "logo"
	cfgKeyListen   = "listen"
	cfgKeyLogLevel = "log_level"
)

// configFile is the on-disk shape of config.yaml.
type configFile struct {
	DataFile string `yaml:"data_file,omitempty"`
	Logo     string `yaml:"logo,omitempty"`
	Listen   string `yaml:"listen"`
	LogLevel string `yaml:"log_level"`
}

// loadConfig reads config.yaml from configDir, falling back to the per-user
// configuration directory. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyListen, types.DefaultListen)
	v.SetDefault(cfgKeyLogLevel, types.DefaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if userDir, err := paths.UserConfigDir(); err == nil {
		v.AddConfigPath(userDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// resolveConfig combines flags, environment, and config.yaml into a
// validated Config.
func (a *app) resolveConfig() (types.Config, error) {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return types.Config{}, err
	}

	dataFile, err := paths.ResolveDataFile(a.flags.dataFile, v.GetString(cfgKeyDataFile))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data file: %w", err)
	}
	logo, err := paths.ResolveLogoFile(a.flags.logo, v.GetString(cfgKeyLogo))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve logo: %w", err)
	}

	cfg := types.Config{
		DataFile: dataFile,
		LogoFile: logo,
		Listen:   v.GetString(cfgKeyListen),
		LogLevel: v.GetString(cfgKeyLogLevel),
	}
	if a.flags.logLevel != "" {
		cfg.LogLevel = a.flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// writeConfigIfMissing writes a default config.yaml into configDir unless
// one already exists. It reports whether a file was written.
func writeConfigIfMissing(configDir string) (bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config dir: %w", err)
	}
	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(configFile{
		Listen:   types.DefaultListen,
		LogLevel: types.DefaultLogLevel,
	})
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := "# survey configuration\n# data_file and logo default to the working directory.\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}
