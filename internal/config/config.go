package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server  ServerConfig  `koanf:"server"`
	DB      DBConfig      `koanf:"db"`
	Retry   RetryConfig   `koanf:"retry"`
	CodeGen CodeGenConfig `koanf:"codegen"`
	Log     LogConfig     `koanf:"log"`
}

type ServerConfig struct {
	Port            string        `koanf:"port"`
	GinMode         string        `koanf:"gin_mode"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DBConfig struct {
	Driver       string `koanf:"driver"`
	Host         string `koanf:"host"`
	Port         string `koanf:"port"`
	User         string `koanf:"user"`
	Password     string `koanf:"password"`
	Name         string `koanf:"name"`
	DSN          string `koanf:"dsn"`
	Seed         bool   `koanf:"seed"`
	MaxOpenConns int    `koanf:"max_open_conns"`
}

// RetryConfig controls the execution strategy used for multi-step transactional writes.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
}

// CodeGenConfig selects and tunes the random code provider used for project codes.
type CodeGenConfig struct {
	Provider  string        `koanf:"provider"`
	URL       string        `koanf:"url"`
	Timeout   time.Duration `koanf:"timeout"`
	RateLimit float64       `koanf:"rate_limit"`
	Length    int           `koanf:"length"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	ProviderCodito = "codito"
	ProviderPlain  = "plain"
	ProviderLocal  = "local"
)

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			GinMode:         "debug",
			ShutdownTimeout: 10 * time.Second,
		},
		DB: DBConfig{
			Driver:       DriverMySQL,
			Host:         "localhost",
			Port:         "3306",
			User:         "workforce",
			Password:     "workforcepassword",
			Name:         "workforce",
			MaxOpenConns: 25,
		},
		Retry: RetryConfig{
			MaxAttempts:     6,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     30 * time.Second,
		},
		CodeGen: CodeGenConfig{
			Provider: ProviderCodito,
			URL:      "https://codito.io/free-random-code-generator/api/generate",
			Timeout:  10 * time.Second,
			Length:   8,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads .env (if present), an optional YAML file named by CONFIG_FILE and
// then environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(os.Getenv("CONFIG_FILE"))
}

// LoadFrom is Load without the .env step. An empty path skips the YAML file.
func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// DB_HOST -> db.host, CODEGEN_RATE_LIMIT -> codegen.rate_limit
	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var sections = map[string]bool{"server": true, "db": true, "retry": true, "codegen": true, "log": true}

// envKey splits on the first underscore only, so field names keep theirs.
// Variables outside the known sections are skipped.
func envKey(s string) string {
	parts := strings.SplitN(strings.ToLower(s), "_", 2)
	if len(parts) != 2 || !sections[parts[0]] {
		return ""
	}
	return parts[0] + "." + parts[1]
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported db driver %q", c.DB.Driver)
	}

	switch c.CodeGen.Provider {
	case ProviderCodito, ProviderPlain:
		if c.CodeGen.URL == "" {
			return fmt.Errorf("codegen url is required for provider %q", c.CodeGen.Provider)
		}
	case ProviderLocal:
		if c.CodeGen.Length <= 0 {
			return fmt.Errorf("codegen length must be positive")
		}
	default:
		return fmt.Errorf("unsupported codegen provider %q", c.CodeGen.Provider)
	}

	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max_attempts must be at least 1")
	}
	if c.CodeGen.RateLimit < 0 {
		return fmt.Errorf("codegen rate_limit cannot be negative")
	}
	return nil
}

// ConnectionString builds the driver-specific connection string unless one was configured explicitly.
func (c DBConfig) ConnectionString() string {
	if c.DSN != "" {
		return c.DSN
	}

	switch c.Driver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			c.Host, c.Port, c.User, c.Password, c.Name)
	case DriverSQLite:
		return c.Name + ".db?_foreign_keys=on"
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.User, c.Password, c.Host, c.Port, c.Name)
	}
}
