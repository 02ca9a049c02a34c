package types

import "strings"

// Defaults used when neither flags, environment nor config.yaml set a value.
const (
	DefaultDataFile = "C03_Encuesta.csv"
	DefaultLogoFile = "C02_logo_empresa.jpg"
	DefaultListen   = "127.0.0.1:8501"
	DefaultLogLevel = "info"
)

// Config holds the resolved settings shared by the CLI and web shells.
type Config struct {
	DataFile string `json:"data_file" yaml:"data_file"`
	LogoFile string `json:"logo" yaml:"logo"`
	Listen   string `json:"listen" yaml:"listen"`
	LogLevel string `json:"log_level" yaml:"log_level"`
}

var knownLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the Config is well-formed. An empty LogoFile is
// allowed; the shells fall back to a placeholder.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return ErrDataFileEmpty
	}
	if c.Listen == "" {
		return ErrListenEmpty
	}
	if c.LogLevel != "" && !knownLogLevels[strings.ToLower(c.LogLevel)] {
		return ErrLogLevelUnknown
	}
	return nil
}
