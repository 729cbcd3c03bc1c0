package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Server  Server  `yaml:"server"`
	Storage Storage `yaml:"storage"`
	Limits  Limits  `yaml:"limits"`
	Session Session `yaml:"session"`
	Logging Logging `yaml:"logging"`
}

type Server struct {
	Port string `yaml:"port"`
	Env  string `yaml:"env"` // development | production
}

func (s Server) SecureCookies() bool {
	return s.Env != "development"
}

type Storage struct {
	Driver string `yaml:"driver"` // sqlite | postgres
	Dsn    string `yaml:"dsn"`
	Pool   Pool   `yaml:"pool"`
	Retry  Retry  `yaml:"retry"`
}

// Pool knobs mirror the classic queue-pool shape: a baseline of open
// connections, extra overflow capacity, and periodic recycling.
// Durations are seconds.
type Pool struct {
	Size           int `yaml:"size"`
	MaxOverflow    int `yaml:"max_overflow"`
	AcquireTimeout int `yaml:"acquire_timeout"`
	Recycle        int `yaml:"recycle"`
}

// Retry delays are milliseconds.
type Retry struct {
	RequestAttempts int `yaml:"request_attempts"`
	StartupAttempts int `yaml:"startup_attempts"`
	BaseDelay       int `yaml:"base_delay"`
	MaxDelay        int `yaml:"max_delay"`
}

// Limits are requests per minute per client IP.
type Limits struct {
	CreateThread float64 `yaml:"create_thread"`
	CreatePost   float64 `yaml:"create_post"`
	CreateReply  float64 `yaml:"create_reply"`
}

// Session TTL is minutes.
type Session struct {
	TTL int `yaml:"ttl"`
}

type Logging struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configPath string) *Config {
	cfg := Default()
	mustLoadPath(configPath, cfg)
	cfg.ApplyEnv()
	return cfg
}

// Default returns the development defaults, used when no config file is given.
func Default() *Config {
	return &Config{
		Server: Server{Port: "3000", Env: "development"},
		Storage: Storage{
			Driver: DriverSQLite,
			Dsn:    "board.db",
			Pool:   Pool{Size: 5, MaxOverflow: 10, AcquireTimeout: 30, Recycle: 1800},
			Retry:  Retry{RequestAttempts: 3, StartupAttempts: 5, BaseDelay: 1000, MaxDelay: 30000},
		},
		Limits:  Limits{CreateThread: 5, CreatePost: 20, CreateReply: 10},
		Session: Session{TTL: 30},
		Logging: Logging{Level: "info"},
	}
}

// ApplyEnv overrides file values with process environment so PaaS-style
// deployments (DATABASE_URL, PORT) work without a config file.
func (c *Config) ApplyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		c.Server.Env = env
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		c.Storage.Driver, c.Storage.Dsn = ParseDatabaseURL(url)
	}
}

// ParseDatabaseURL maps a deployment-style database URL onto (driver, dsn).
// Heroku-era postgres:// URLs are normalized to postgresql:// and forced to
// sslmode=require; anything else is treated as a SQLite path.
func ParseDatabaseURL(url string) (driver, dsn string) {
	switch {
	case strings.HasPrefix(url, "postgres://"):
		url = "postgresql://" + strings.TrimPrefix(url, "postgres://")
		fallthrough
	case strings.HasPrefix(url, "postgresql://"):
		if !strings.Contains(url, "sslmode=") {
			sep := "?"
			if strings.Contains(url, "?") {
				sep = "&"
			}
			url += sep + "sslmode=require"
		}
		return DriverPostgres, url
	case strings.HasPrefix(url, "sqlite://"):
		return DriverSQLite, strings.TrimPrefix(url, "sqlite://")
	default:
		return DriverSQLite, url
	}
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Retry.RequestAttempts < 1 || c.Storage.Retry.StartupAttempts < 1 {
		return fmt.Errorf("retry attempts must be >= 1")
	}
	return nil
}
