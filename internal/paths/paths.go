// Package paths resolves the configuration directory, the survey data file,
// and the branding asset.
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

// DefaultConfigDirName is the CWD-relative configuration directory.
const DefaultConfigDirName = ".bisurvey"

// Environment variable names for overrides.
const (
	EnvConfigDir = "BISURVEY_CONFIG_DIR"
	EnvDataFile  = "BISURVEY_DATA_FILE"
	EnvLogoFile  = "BISURVEY_LOGO"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// UserConfigDir returns the platform-specific per-user configuration
// directory, used by `survey init --global`.
//
// Linux:   $XDG_CONFIG_HOME/bisurvey (fallback ~/.config/bisurvey)
// macOS:   ~/Library/Application Support/bisurvey
// Windows: %APPDATA%/bisurvey
func UserConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "bisurvey"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "bisurvey"), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "bisurvey"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > BISURVEY_CONFIG_DIR env > $(CWD)/.bisurvey.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultConfigDirName), nil
}

// ResolveDataFile returns the survey CSV path following the precedence
// chain: flag > config.yaml data_file > BISURVEY_DATA_FILE env >
// $(CWD)/C03_Encuesta.csv.
func ResolveDataFile(flag, configValue string) (string, error) {
	return resolveFile(flag, configValue, EnvDataFile, types.DefaultDataFile)
}

// ResolveLogoFile returns the branding image path with the same precedence
// as ResolveDataFile. The file does not need to exist.
func ResolveLogoFile(flag, configValue string) (string, error) {
	return resolveFile(flag, configValue, EnvLogoFile, types.DefaultLogoFile)
}

func resolveFile(flag, configValue, env, def string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if v := os.Getenv(env); v != "" {
		return filepath.Abs(v)
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, def), nil
}
