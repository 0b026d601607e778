// Package config loads the canteen client configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all client configuration
type Config struct {
	Backend   BackendConfig
	Retry     RetryConfig
	Poll      PollConfig
	Store     StoreConfig
	Cache     CacheConfig
	Server    ServerConfig
	Log       LogConfig
	Telemetry TelemetryConfig
}

// BackendConfig points at the remote services
type BackendConfig struct {
	BaseURL      string
	RecommendURL string
	ChatURL      string
	Timeout      time.Duration
	RateLimit    float64 // requests per second, 0 disables
	RateBurst    int
}

// RetryConfig controls retries of idempotent remote calls
type RetryConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// PollConfig holds the refresh intervals of live views
type PollConfig struct {
	Board    time.Duration
	Tracking time.Duration
}

// StoreConfig holds the local sqlite store settings
type StoreConfig struct {
	Path string
}

// CacheConfig holds menu cache settings
type CacheConfig struct {
	Type  string // memory, redis
	TTL   time.Duration
	Redis RedisConfig
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ServerConfig holds kiosk API settings
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MetricsEnabled  bool
	TrustedProxies  []string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// TelemetryConfig toggles request tracing on the kiosk API
type TelemetryConfig struct {
	Enabled     bool
	ServiceName string
}

// Load reads configuration. Priority, highest first:
//  1. CANTEEN_ environment variables (CANTEEN_BACKEND_BASE_URL)
//  2. the file at path, or config.toml in . or $HOME/.canteen
//  3. built-in defaults
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if dir, err := DefaultHome(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("CANTEEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Backend: BackendConfig{
			BaseURL:      v.GetString("backend.base_url"),
			RecommendURL: v.GetString("backend.recommend_url"),
			ChatURL:      v.GetString("backend.chat_url"),
			Timeout:      v.GetDuration("backend.timeout"),
			RateLimit:    v.GetFloat64("backend.rate_limit"),
			RateBurst:    v.GetInt("backend.rate_burst"),
		},
		Retry: RetryConfig{
			MaxRetries:      v.GetInt("retry.max_retries"),
			InitialInterval: v.GetDuration("retry.initial_interval"),
			MaxInterval:     v.GetDuration("retry.max_interval"),
			Multiplier:      v.GetFloat64("retry.multiplier"),
		},
		Poll: PollConfig{
			Board:    v.GetDuration("poll.board"),
			Tracking: v.GetDuration("poll.tracking"),
		},
		Store: StoreConfig{
			Path: v.GetString("store.path"),
		},
		Cache: CacheConfig{
			Type: v.GetString("cache.type"),
			TTL:  v.GetDuration("cache.ttl"),
			Redis: RedisConfig{
				Host:     v.GetString("cache.redis.host"),
				Port:     v.GetInt("cache.redis.port"),
				Password: v.GetString("cache.redis.password"),
				DB:       v.GetInt("cache.redis.db"),
			},
		},
		Server: ServerConfig{
			Addr:            v.GetString("server.addr"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
			MetricsEnabled:  v.GetBool("server.metrics_enabled"),
			TrustedProxies:  v.GetStringSlice("server.trusted_proxies"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Telemetry: TelemetryConfig{
			Enabled:     v.GetBool("telemetry.enabled"),
			ServiceName: v.GetString("telemetry.service_name"),
		},
	}
	if !v.IsSet("server.metrics_enabled") {
		cfg.Server.MetricsEnabled = true
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a configuration built only from defaults
func Default() *Config {
	cfg := &Config{Server: ServerConfig{MetricsEnabled: true}}
	applyDefaults(cfg)
	return cfg
}

// DefaultHome returns $HOME/.canteen
func DefaultHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".canteen"), nil
}

func applyDefaults(cfg *Config) {
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = "https://ajay-cafe-1.onrender.com"
	}
	if cfg.Backend.RecommendURL == "" {
		cfg.Backend.RecommendURL = "https://api-general-latest.onrender.com"
	}
	if cfg.Backend.ChatURL == "" {
		cfg.Backend.ChatURL = "https://canteen-recommendation-system.onrender.com"
	}
	if cfg.Backend.Timeout == 0 {
		cfg.Backend.Timeout = 15 * time.Second
	}
	if cfg.Backend.RateBurst == 0 {
		cfg.Backend.RateBurst = 10
	}
	if cfg.Retry.MaxRetries == 0 {
		cfg.Retry.MaxRetries = 2
	}
	if cfg.Retry.InitialInterval == 0 {
		cfg.Retry.InitialInterval = 200 * time.Millisecond
	}
	if cfg.Retry.MaxInterval == 0 {
		cfg.Retry.MaxInterval = 2 * time.Second
	}
	if cfg.Retry.Multiplier == 0 {
		cfg.Retry.Multiplier = 2.0
	}
	if cfg.Poll.Board == 0 {
		cfg.Poll.Board = 5 * time.Second
	}
	if cfg.Poll.Tracking == 0 {
		cfg.Poll.Tracking = 10 * time.Second
	}
	if cfg.Store.Path == "" {
		if dir, err := DefaultHome(); err == nil {
			cfg.Store.Path = filepath.Join(dir, "canteen.db")
		} else {
			cfg.Store.Path = "canteen.db"
		}
	}
	if cfg.Cache.Type == "" {
		cfg.Cache.Type = "memory"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 5 * time.Minute
	}
	if cfg.Cache.Redis.Host == "" {
		cfg.Cache.Redis.Host = "localhost"
	}
	if cfg.Cache.Redis.Port == 0 {
		cfg.Cache.Redis.Port = 6379
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8088"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "canteen-kiosk"
	}
}

// Validate checks the configuration for values the client cannot work with
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"backend.base_url":      c.Backend.BaseURL,
		"backend.recommend_url": c.Backend.RecommendURL,
		"backend.chat_url":      c.Backend.ChatURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}
	if c.Backend.RateLimit < 0 {
		return fmt.Errorf("backend.rate_limit cannot be negative")
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries cannot be negative")
	}
	if c.Retry.Multiplier < 1 {
		return fmt.Errorf("retry.multiplier must be at least 1")
	}
	if c.Poll.Board < time.Second || c.Poll.Tracking < time.Second {
		return fmt.Errorf("poll intervals must be at least 1s")
	}
	switch c.Cache.Type {
	case "memory", "redis":
	default:
		return fmt.Errorf("cache.type must be memory or redis, got %q", c.Cache.Type)
	}
	return nil
}
