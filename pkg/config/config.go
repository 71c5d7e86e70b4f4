// Package config loads starfield settings.
//
// Settings come from, in increasing precedence: built-in defaults, a TOML
// file (starfield.toml in the working directory or the user config
// directory, or an explicit --config path), and STARFIELD_* environment
// variables. A .env file in the working directory is loaded into the
// environment first.
//
//	STARFIELD_COUNT=500
//	STARFIELD_SERVER_ADDR=:9000
//	STARFIELD_CACHE_BACKEND=redis
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	sferrors "github.com/matzehuels/starfield/pkg/errors"
	"github.com/matzehuels/starfield/pkg/starfield"
)

// FileName is the config file searched for when no path is given.
const FileName = "starfield.toml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "STARFIELD"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the complete settings tree.
type Config struct {
	Count  int              `toml:"count" mapstructure:"count"`
	Seed   uint64           `toml:"seed" mapstructure:"seed"`
	Params starfield.Params `toml:"params" mapstructure:"params"`
	Render RenderConfig     `toml:"render" mapstructure:"render"`
	Server ServerConfig     `toml:"server" mapstructure:"server"`
	Cache  CacheConfig      `toml:"cache" mapstructure:"cache"`
	Log    LogConfig        `toml:"log" mapstructure:"log"`

	// File is the config file that was read, empty when none was found.
	File string `toml:"-" mapstructure:"-"`
}

// RenderConfig holds artifact defaults.
type RenderConfig struct {
	Formats     []string `toml:"formats" mapstructure:"formats"`
	Width       int      `toml:"width" mapstructure:"width"`
	Height      int      `toml:"height" mapstructure:"height"`
	Title       string   `toml:"title" mapstructure:"title"`
	ContainerID string   `toml:"container_id" mapstructure:"container_id"`
	Pretty      bool     `toml:"pretty" mapstructure:"pretty"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `toml:"addr" mapstructure:"addr"`
	MaxCount        int           `toml:"max_count" mapstructure:"max_count"`
	ReadTimeout     time.Duration `toml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `toml:"cors_origins" mapstructure:"cors_origins"`
	Compress        bool          `toml:"compress" mapstructure:"compress"`
	RateLimit       RateLimit     `toml:"rate_limit" mapstructure:"rate_limit"`
}

// RateLimit configures the per-client token bucket.
type RateLimit struct {
	Enabled           bool    `toml:"enabled" mapstructure:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `toml:"burst" mapstructure:"burst"`
	TrustProxy        bool    `toml:"trust_proxy" mapstructure:"trust_proxy"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend  string `toml:"backend" mapstructure:"backend"`
	Dir      string `toml:"dir" mapstructure:"dir"`
	RedisURL string `toml:"redis_url" mapstructure:"redis_url"`
	Prefix   string `toml:"prefix" mapstructure:"prefix"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" mapstructure:"level"`
}

// SetDefaults registers every key with its default on v.
// Keys without a default are invisible to environment overrides.
func SetDefaults(v *viper.Viper) {
	p := starfield.DefaultParams
	v.SetDefault("count", starfield.DefaultCount)
	v.SetDefault("seed", 0)
	for name, r := range map[string]starfield.Range{
		"size": p.Size, "x": p.X, "y": p.Y, "duration": p.Duration, "delay": p.Delay,
	} {
		v.SetDefault("params."+name+".min", r.Min)
		v.SetDefault("params."+name+".max", r.Max)
	}

	v.SetDefault("render.formats", []string{"html"})
	v.SetDefault("render.width", 1280)
	v.SetDefault("render.height", 720)
	v.SetDefault("render.title", "Stars")
	v.SetDefault("render.container_id", starfield.DefaultContainerID)
	v.SetDefault("render.pretty", false)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_count", 5000)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.compress", true)
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.requests_per_second", 10.0)
	v.SetDefault("server.rate_limit.burst", 20)
	v.SetDefault("server.rate_limit.trust_proxy", false)

	v.SetDefault("cache.backend", BackendFile)
	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.redis_url", "redis://localhost:6379/0")
	v.SetDefault("cache.prefix", "")

	v.SetDefault("log.level", "info")
}

// Default returns the built-in settings.
func Default() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		panic(fmt.Sprintf("config: decode defaults: %v", err))
	}
	return cfg
}

// LoadDotenv loads .env files into the process environment. Missing files
// are skipped; existing variables are not overwritten.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads settings. An explicit path must exist; without one the default
// search locations are tried and a missing file is not an error.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.AddConfigPath(".")
		if dir, err := UserDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	cfg.File = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UserDir is the per-user config directory.
func UserDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "starfield"), nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Count < 0 {
		return sferrors.New(sferrors.ErrCodeInvalidInput, "count must be non-negative, got %d", c.Count)
	}
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if err := sferrors.ValidateElementID(c.Render.ContainerID); err != nil {
		return err
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return sferrors.New(sferrors.ErrCodeInvalidInput, "render size must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Server.MaxCount <= 0 {
		return sferrors.New(sferrors.ErrCodeInvalidInput, "server.max_count must be positive, got %d", c.Server.MaxCount)
	}
	if rl := c.Server.RateLimit; rl.Enabled && (rl.RequestsPerSecond <= 0 || rl.Burst <= 0) {
		return sferrors.New(sferrors.ErrCodeInvalidInput, "rate limit needs positive requests_per_second and burst")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return sferrors.New(sferrors.ErrCodeInvalidInput, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	return nil
}

// Encode writes c as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes c as TOML to path, refusing to overwrite unless force.
func (c *Config) WriteFile(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}
