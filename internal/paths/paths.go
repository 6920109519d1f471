// Package paths resolves where folio keeps its configuration, its database
// and uploaded files.
package paths

import (
	"os"
	"path/filepath"
)

// AppName names the per-user configuration subdirectory.
const AppName = "folio"

// Default directory names.
const (
	// DefaultDataDirName is created in the working directory.
	DefaultDataDirName = ".folio-data"

	// DefaultUploadsDirName is created inside the data directory.
	DefaultUploadsDirName = "uploads"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "FOLIO_CONFIG_DIR"
	EnvDataDir   = "FOLIO_DATA_DIR"
)

// userConfigDir is os.UserConfigDir, replaceable in tests.
var userConfigDir = os.UserConfigDir

// DefaultConfigDir returns the per-user configuration directory:
// $XDG_CONFIG_HOME/folio or ~/.config/folio on Linux,
// ~/Library/Application Support/folio on macOS, %AppData%\folio on Windows.
func DefaultConfigDir() (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// ResolveConfigDir returns the configuration directory:
// flag > FOLIO_CONFIG_DIR > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if dir, ok, err := firstAbs(flag, os.Getenv(EnvConfigDir)); ok || err != nil {
		return dir, err
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory:
// flag > config.yaml data_dir > FOLIO_DATA_DIR > $(CWD)/.folio-data.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if dir, ok, err := firstAbs(flag, configYAMLValue, os.Getenv(EnvDataDir)); ok || err != nil {
		return dir, err
	}
	return filepath.Abs(DefaultDataDirName)
}

// ResolveUploadsDir returns the uploads directory: configValue when set,
// otherwise the uploads subdirectory of dataDir.
func ResolveUploadsDir(configValue, dataDir string) (string, error) {
	if dir, ok, err := firstAbs(configValue); ok || err != nil {
		return dir, err
	}
	return filepath.Join(dataDir, DefaultUploadsDirName), nil
}

// firstAbs returns the first non-empty candidate as an absolute path.
// ok is false when every candidate is empty.
func firstAbs(candidates ...string) (dir string, ok bool, err error) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		dir, err = filepath.Abs(c)
		return dir, true, err
	}
	return "", false, nil
}
