// Package config loads server settings from defaults, an optional .env file,
// an optional YAML file and ACADEME_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rpggio/academe/internal/validate"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
	Report    ReportConfig    `yaml:"report"`
	Actor     ActorConfig     `yaml:"actor"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StoreConfig selects the storage backend. Path is only used by sqlite.
type StoreConfig struct {
	Driver  string        `yaml:"driver"`
	Path    string        `yaml:"path"`
	Latency time.Duration `yaml:"latency"`
	Seed    bool          `yaml:"seed"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type ReportConfig struct {
	Mode string `yaml:"mode"`
}

// ActorConfig is the identity used when a request declares none.
type ActorConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Role string `yaml:"role"`
}

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"

	ModeHTTP  = "http"
	ModeStdio = "stdio"
)

const envPrefix = "ACADEME_"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Store: StoreConfig{
			Driver: DriverMemory,
			Path:   "academe.db",
			Seed:   true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: ModeHTTP,
		},
		Report: ReportConfig{
			Mode: "live",
		},
		Actor: ActorConfig{
			ID:   "mentor-1",
			Name: "Dr. Alan Smith",
			Role: "mentor",
		},
	}
}

// Load reads configuration. ACADEME_DOTENV names the .env file (default
// ".env", skipped when missing); ACADEME_CONFIG_PATH names a YAML file.
func Load() (Config, error) {
	cfg := Default()

	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}

	if path := os.Getenv(envPrefix + "CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	checks := []struct {
		field string
		value any
		tag   string
	}{
		{"server.port", c.Server.Port, "min=0,max=65535"},
		{"store.driver", c.Store.Driver, "oneof=memory sqlite"},
		{"store.latency", int64(c.Store.Latency), "min=0"},
		{"log.level", c.Log.Level, "oneof=debug info warn error"},
		{"transport.mode", c.Transport.Mode, "oneof=http stdio"},
		{"report.mode", c.Report.Mode, "oneof=live static"},
	}
	for _, ch := range checks {
		if err := validate.Var(ch.field, ch.value, ch.tag); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}
	if c.Store.Driver == DriverSQLite && c.Store.Path == "" {
		return errors.New("invalid config: store.path is required for sqlite")
	}
	return nil
}

// loadDotEnv loads variables without overriding ones already set.
func loadDotEnv() error {
	path, explicit := os.LookupEnv(envPrefix + "DOTENV")
	if !explicit {
		path = ".env"
	}
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("read env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("parse env file: %w", err)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Host, "SERVER_HOST")
	if err := setInt(&cfg.Server.Port, "SERVER_PORT"); err != nil {
		return err
	}
	setString(&cfg.Store.Driver, "STORE_DRIVER")
	setString(&cfg.Store.Path, "STORE_PATH")
	if v := os.Getenv(envPrefix + "STORE_LATENCY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sSTORE_LATENCY: %w", envPrefix, err)
		}
		cfg.Store.Latency = d
	}
	if v := os.Getenv(envPrefix + "STORE_SEED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sSTORE_SEED: %w", envPrefix, err)
		}
		cfg.Store.Seed = b
	}
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Path, "LOG_PATH")
	setString(&cfg.Transport.Mode, "TRANSPORT_MODE")
	setString(&cfg.Report.Mode, "REPORT_MODE")
	setString(&cfg.Actor.ID, "ACTOR_ID")
	setString(&cfg.Actor.Name, "ACTOR_NAME")
	setString(&cfg.Actor.Role, "ACTOR_ROLE")
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(envPrefix + key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(envPrefix + key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s%s: %w", envPrefix, key, err)
	}
	*dst = n
	return nil
}
