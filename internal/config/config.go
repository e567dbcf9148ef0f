// Package config loads the server configuration from YAML, an optional .env
// file and RENTAL_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Contract ContractConfig `yaml:"contract"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port" validate:"min=1,max=65535"`
	StaticDir       string        `yaml:"static_dir"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" validate:"gt=0"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// ContractConfig controls how contracts are printed
type ContractConfig struct {
	Currency    string   `yaml:"currency" validate:"required"`
	Agency      string   `yaml:"agency"`
	ClausesFile string   `yaml:"clauses_file"`
	Theme       string   `yaml:"theme"`
	Variant     string   `yaml:"variant"`
	Downloads   []string `yaml:"downloads" validate:"min=1,dive,oneof=pdf html text"`
}

// CORSConfig lists the origins allowed to call the JSON API
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:            "",
			Port:            3000,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Contract: ContractConfig{
			Currency:  "€",
			Downloads: []string{"pdf", "html", "text"},
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://*", "https://*"},
		},
	}
}

// Load reads configuration from a YAML file over the defaults. An empty
// path keeps the defaults. Environment variables win over the file.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse file: %w", err)
		}
	}

	if err := cfg.overrideWithEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadEnvFiles loads .env files into the process environment without
// overriding variables already set. Missing files are skipped.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	return nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

var validate = validator.New()

// Validate checks field constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.New(strings.Join(messages, "; "))
}

type lookupFunc func(string) (string, bool)

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if val, ok := lookup(key); ok && val != "" {
			*dst = val
		}
	}
	list := func(key string, dst *[]string) {
		if val, ok := lookup(key); ok && val != "" {
			*dst = splitList(val)
		}
	}

	// Server
	str("RENTAL_HOST", &c.Server.Host)
	if val, ok := lookup("RENTAL_PORT"); ok && val != "" {
		port, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("config: RENTAL_PORT: %w", err)
		}
		c.Server.Port = port
	}
	str("RENTAL_STATIC_DIR", &c.Server.StaticDir)
	if val, ok := lookup("RENTAL_SHUTDOWN_TIMEOUT"); ok && val != "" {
		timeout, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("config: RENTAL_SHUTDOWN_TIMEOUT: %w", err)
		}
		c.Server.ShutdownTimeout = timeout
	}

	// Log
	str("RENTAL_LOG_LEVEL", &c.Log.Level)
	str("RENTAL_LOG_FORMAT", &c.Log.Format)

	// Contract
	str("RENTAL_CURRENCY", &c.Contract.Currency)
	str("RENTAL_AGENCY", &c.Contract.Agency)
	str("RENTAL_CLAUSES_FILE", &c.Contract.ClausesFile)
	str("RENTAL_THEME", &c.Contract.Theme)
	str("RENTAL_THEME_VARIANT", &c.Contract.Variant)
	list("RENTAL_DOWNLOADS", &c.Contract.Downloads)

	// CORS
	list("RENTAL_CORS_ORIGINS", &c.CORS.AllowedOrigins)
	return nil
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
