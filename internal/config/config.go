package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// ArchiveSource is one archive location beyond the main directory:
// either a single archive file or a directory of them. In the config
// file a bare string is shorthand for { path = "..." }.
type ArchiveSource struct {
	Path  string `mapstructure:"path"`
	Watch bool   `mapstructure:"watch"`
}

type ArchivesConfig struct {
	Dir   string          `mapstructure:"dir"`
	Extra []ArchiveSource `mapstructure:"extra"`
}

type DaemonConfig struct {
	ExpirationSeconds int `mapstructure:"expiration_seconds"`
}

type URLConfig struct {
	Frames bool `mapstructure:"frames"`
}

type Config struct {
	Archives ArchivesConfig `mapstructure:"archives"`
	Daemon   DaemonConfig   `mapstructure:"daemon"`
	URLs     URLConfig      `mapstructure:"urls"`
}

// cacheBase returns the base cache directory for jdex.
// Checks XDG_CACHE_HOME, then ~/.cache, then /tmp/jdex as fallback.
func cacheBase() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "jdex")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "jdex")
	}
	return filepath.Join(os.TempDir(), "jdex")
}

// dataBase returns the base data directory for jdex.
// Checks XDG_DATA_HOME, then ~/.local/share, then /tmp/jdex as fallback.
func dataBase() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "jdex")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "jdex")
	}
	return filepath.Join(os.TempDir(), "jdex")
}

// DefaultArchivesDir returns where javadoc archives live when the
// config does not say otherwise.
func DefaultArchivesDir() string {
	return filepath.Join(dataBase(), "archives")
}

// LogPath returns the path to the daemon's log file.
func LogPath() string {
	return filepath.Join(cacheBase(), "daemon.log")
}

// SocketPath returns the path to the daemon's unix socket.
func SocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "jdex", "daemon.sock")
	}
	return filepath.Join(fmt.Sprintf("/run/user/%d", os.Getuid()), "jdex", "daemon.sock")
}

func InitializeViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		viper.AddConfigPath(filepath.Join(xdg, "jdex"))
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "jdex"))
	}

	viper.SetDefault("daemon.expiration_seconds", 600)
	viper.SetDefault("urls.frames", false)

	viper.SetEnvPrefix("JDEX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

func stringToArchiveSourceHookFunc() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(ArchiveSource{}) {
			return data, nil
		}
		if f.Kind() == reflect.String {
			return ArchiveSource{Path: data.(string)}, nil
		}
		return data, nil
	}
}

func Load() (*Config, error) {
	if err := InitializeViper(); err != nil {
		return nil, err
	}

	var config Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringToArchiveSourceHookFunc(),
		Result:     &config,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Archives.Dir == "" {
		config.Archives.Dir = DefaultArchivesDir()
	}
	config.Archives.Dir = expandHome(config.Archives.Dir)
	for i := range config.Archives.Extra {
		config.Archives.Extra[i].Path = expandHome(config.Archives.Extra[i].Path)
	}

	return &config, nil
}

// expandHome rewrites a leading "~/" to the user's home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
