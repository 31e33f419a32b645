package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var (
	config *Config
	path   string
	once   sync.Once
	mu     sync.Mutex
	v      = viper.New()
)

// EnvPrefix is the prefix of environment overrides, e.g. TASKMATE_API_BASE_URL.
const EnvPrefix = "TASKMATE"

// Config represents the configuration implementation.
type Config struct {
	AppName  string
	RunMode  string
	API      *API
	Session  *Session
	Logger   *Logger
	Observes *Observes
	Stub     *Stub
	Viper    *viper.Viper
}

// Init initializes and loads the configuration once.
func Init(configPath string) (cfg *Config, err error) {
	once.Do(func() {
		path = configPath
		cfg, err = load(v, configPath)
		if err == nil {
			mu.Lock()
			config = cfg
			mu.Unlock()
		}
	})
	if err != nil {
		return nil, err
	}
	return GetConfig()
}

// GetConfig returns the configuration.
func GetConfig() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()
	if config == nil {
		return nil, errors.New("config not initialized")
	}
	return config, nil
}

// LoadConfig loads the configuration from the file into a fresh viper instance.
// An empty path searches the default locations; a missing default file is not an
// error, every key then takes its default.
func LoadConfig(configPath string) (*Config, error) {
	return load(viper.New(), configPath)
}

func load(v *viper.Viper, configPath string) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("$HOME/.taskmate")
		v.AddConfigPath(".")
		if ex, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(ex))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		AppName:  v.GetString("app_name"),
		RunMode:  v.GetString("run_mode"),
		API:      getAPIConfig(v),
		Session:  getSessionConfig(v),
		Logger:   getLoggerConfig(v),
		Observes: getObservesConfig(v),
		Stub:     getStubConfig(v),
		Viper:    v,
	}
	if err := cfg.API.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "taskmate")
	v.SetDefault("run_mode", "release")
}

// Reload reloads the configuration from the file.
func Reload() error {
	newConfig, err := load(v, path)
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	mu.Lock()
	config = newConfig
	mu.Unlock()
	return nil
}

// Watch watches the configuration file and reloads it when it changes.
func Watch(callback func(*Config)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		if err := Reload(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reloading config: %v\n", err)
			return
		}
		cfg, err := GetConfig()
		if err == nil {
			callback(cfg)
		}
	})
	v.WatchConfig()
}
