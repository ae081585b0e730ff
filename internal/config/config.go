// Package config loads memo's settings from defaults, a yaml config file,
// .env files and MEMO_* environment variables, in increasing precedence.
// Command-line flags are applied on top by the cmd package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	pkgerrors "github.com/justin0804nitsuj/memo/pkg/errors"
)

// EnvPrefix prefixes every environment variable memo reads.
const EnvPrefix = "MEMO"

// Config holds the resolved settings.
type Config struct {
	// ConfigFile is the file the settings were read from, if any.
	ConfigFile string

	DatabasePath string

	LogLevel  string
	LogFormat string
	LogOutput string

	// Output is the list format: table, json, yaml, or empty for auto.
	Output string

	PreviewMaxWidth  int
	PreviewMaxHeight int
	PreviewTextLimit int64

	WatchSettle time.Duration
}

// Dir returns the default configuration directory, $HOME/.memo.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".memo"
	}
	return filepath.Join(home, ".memo")
}

// New returns a viper instance with defaults and environment binding set.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("database.path", filepath.Join(Dir(), "my_files.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "auto")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("output", "")
	v.SetDefault("preview.max_width", 400)
	v.SetDefault("preview.max_height", 400)
	v.SetDefault("preview.text_limit", 0)
	v.SetDefault("watch.settle", 5*time.Second)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configFile, or config.yaml from the working directory or Dir()
// when configFile is empty. A missing config file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	loadEnvFiles()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(Dir())
	}

	used := ""
	if err := v.ReadInConfig(); err == nil {
		used = v.ConfigFileUsed()
	} else {
		// An explicit --config path that does not exist yet is a file
		// init can still write.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{
		ConfigFile:       used,
		DatabasePath:     os.ExpandEnv(v.GetString("database.path")),
		LogLevel:         v.GetString("log.level"),
		LogFormat:        v.GetString("log.format"),
		LogOutput:        v.GetString("log.output"),
		Output:           v.GetString("output"),
		PreviewMaxWidth:  v.GetInt("preview.max_width"),
		PreviewMaxHeight: v.GetInt("preview.max_height"),
		PreviewTextLimit: v.GetInt64("preview.text_limit"),
		WatchSettle:      v.GetDuration("watch.settle"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later in confusing ways.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return pkgerrors.NewValidationError("database.path", c.DatabasePath, "cannot be empty")
	}
	if c.PreviewMaxWidth <= 0 || c.PreviewMaxHeight <= 0 {
		return pkgerrors.NewValidationError("preview.max_width", c.PreviewMaxWidth, "preview size must be positive")
	}
	if c.PreviewTextLimit < 0 {
		return pkgerrors.NewValidationError("preview.text_limit", c.PreviewTextLimit, "cannot be negative")
	}
	if c.WatchSettle < 0 {
		return pkgerrors.NewValidationError("watch.settle", c.WatchSettle, "cannot be negative")
	}
	return nil
}

// WriteDefault writes the current settings of v to path unless the file
// already exists. It reports whether a file was written.
func WriteDefault(v *viper.Viper, path string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating config directory: %w", err)
	}
	if err := v.SafeWriteConfigAs(path); err != nil {
		var exists viper.ConfigFileAlreadyExistsError
		if errors.As(err, &exists) {
			return false, nil
		}
		return false, fmt.Errorf("writing config: %w", err)
	}
	return true, nil
}

// loadEnvFiles loads .env.local then .env. godotenv never overrides a
// variable that is already set, so the environment beats .env.local, which
// beats .env.
func loadEnvFiles() {
	for _, f := range []string{".env.local", ".env"} {
		_ = godotenv.Load(f)
	}
}
