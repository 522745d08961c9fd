// Package config loads the client configuration: where the backend lives,
// how the live channel reconnects, and where session state is kept.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var (
	cfg  *Config
	once sync.Once
	mu   sync.RWMutex
)

// Config represents the client configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Live    LiveConfig    `mapstructure:"live"`
	State   StateConfig   `mapstructure:"state"`
	Logging LoggingConfig `mapstructure:"logging"`
	UI      UIConfig      `mapstructure:"ui"`
}

// APIConfig describes the backend REST endpoint.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Debug   bool          `mapstructure:"debug"`
}

// LiveConfig describes the notification websocket.
type LiveConfig struct {
	URL               string        `mapstructure:"url"`
	ReconnectDelay    time.Duration `mapstructure:"reconnect_delay"`
	InitialRetryDelay time.Duration `mapstructure:"initial_retry_delay"`
}

// StateConfig locates durable client state (the session file).
type StateConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// UIConfig holds presentation knobs.
type UIConfig struct {
	PageSize        int           `mapstructure:"page_size"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.debug", false)
	v.SetDefault("live.url", "ws://localhost:8000/tickets/ws/notifications")
	v.SetDefault("live.reconnect_delay", 5*time.Second)
	v.SetDefault("live.initial_retry_delay", 10*time.Second)
	v.SetDefault("state.dir", defaultStateDir())
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("ui.page_size", 20)
	v.SetDefault("ui.refresh_interval", 30*time.Second)
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".supportdesk"
	}
	return filepath.Join(home, ".supportdesk")
}

// Load initializes the configuration with hot reload support. configPath
// may be empty, in which case only defaults and environment variables
// apply.
func Load(configPath string) error {
	var err error
	once.Do(func() {
		v := viper.New()
		v.SetConfigType("yaml")
		setDefaults(v)

		if configPath != "" {
			v.SetConfigFile(configPath)
			if readErr := v.ReadInConfig(); readErr != nil {
				err = fmt.Errorf("failed to read config: %w", readErr)
				return
			}
		}

		v.SetEnvPrefix("SUPPORTDESK")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		loaded := &Config{}
		if err = v.Unmarshal(loaded); err != nil {
			err = fmt.Errorf("failed to unmarshal config: %w", err)
			return
		}
		if err = loaded.Validate(); err != nil {
			return
		}
		cfg = loaded

		if configPath != "" {
			v.WatchConfig()
			v.OnConfigChange(func(e fsnotify.Event) {
				newCfg := &Config{}
				if uErr := v.Unmarshal(newCfg); uErr != nil {
					return
				}
				if vErr := newCfg.Validate(); vErr != nil {
					return
				}
				mu.Lock()
				cfg = newCfg
				mu.Unlock()
			})
		}
	})
	return err
}

// Get returns the current configuration (thread-safe). It is nil until
// Load succeeds.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// Reset clears the singleton so tests can load a fresh configuration.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cfg = nil
	once = sync.Once{}
}

// Validate checks the fields that would otherwise fail deep inside a
// request or dial.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("api.base_url %q is not a valid http(s) URL", c.API.BaseURL)
	}
	lu, err := url.Parse(c.Live.URL)
	if err != nil || lu.Host == "" || (lu.Scheme != "ws" && lu.Scheme != "wss") {
		return fmt.Errorf("live.url %q is not a valid ws(s) URL", c.Live.URL)
	}
	if c.UI.PageSize < 1 || c.UI.PageSize > 100 {
		return fmt.Errorf("ui.page_size must be between 1 and 100")
	}
	return nil
}
