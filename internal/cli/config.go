package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	apperrors "github.com/gridflow-dev/gridflow/pkg/errors"
)

// Config holds user-tunable CLI defaults, loaded from a TOML file.
// Engine behavior is deliberately not configurable; only the CLI surface is.
type Config struct {
	// Output controls how results are written.
	Output OutputConfig `toml:"output"`

	// SnapshotDir overrides the snapshot store location.
	// Empty means ~/.config/gridflow/snapshots/.
	SnapshotDir string `toml:"snapshot_dir"`

	// CacheDir overrides the result cache location.
	// Empty means ~/.cache/gridflow/.
	CacheDir string `toml:"cache_dir"`
}

// OutputConfig controls result serialization.
type OutputConfig struct {
	// Indent enables pretty-printed JSON output. Default true.
	Indent bool `toml:"indent"`

	// Color enables styled status messages on stderr. Default true.
	Color bool `toml:"color"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{Indent: true, Color: true},
	}
}

// DefaultConfigPath returns ~/.config/gridflow/config.toml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DefaultCacheDir returns ~/.cache/gridflow.
func DefaultCacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("get cache dir: %w", err)
	}
	return filepath.Join(dir, appName), nil
}

// LoadConfig reads the config file at path, falling back to the default
// location when path is empty. A missing file is not an error; defaults are
// returned. A malformed file is reported with ErrCodeInvalidConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return cfg, nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig(), apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return cfg, nil
}
