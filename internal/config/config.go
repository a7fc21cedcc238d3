package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env       string   `yaml:"env" env:"ENV" env-default:"local"`
	PublicURL string   `yaml:"public_url" env:"PUBLIC_URL" env-default:"http://localhost:8080"`
	Postgres  Postgres `yaml:"postgres"`
	Server    Server   `yaml:"server"`
	Auth      Auth     `yaml:"auth"`
	Mail      Mail     `yaml:"mail"`
	Storage   Storage  `yaml:"storage"`
}

type Postgres struct {
	Username        string        `yaml:"username" env:"POSTGRES_USER" env-required:"true"`
	Password        string        `yaml:"password" env:"POSTGRES_PASSWORD" env-required:"true"`
	Host            string        `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port            string        `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	Database        string        `yaml:"database" env:"POSTGRES_DB" env-required:"true"`
	SSLMode         string        `yaml:"sslmode" env:"POSTGRES_SSLMODE" env-default:"disable"`
	MaxOpenConns    int           `yaml:"max_open_conns" env-default:"50"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env-default:"10"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env-default:"1m"`
}

// DSN returns a lib/pq connection URL with the credentials escaped.
func (p Postgres) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.Username, p.Password),
		Host:     net.JoinHostPort(p.Host, p.Port),
		Path:     "/" + p.Database,
		RawQuery: url.Values{"sslmode": {p.SSLMode}}.Encode(),
	}

	return u.String()
}

type Server struct {
	Host    string        `yaml:"host" env:"SERVER_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

type Auth struct {
	JWTSecret    string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"JWT_TTL" env-default:"24h"`
	CookieName   string        `yaml:"cookie_name" env-default:"journal_session"`
	CookieSecure bool          `yaml:"cookie_secure" env:"COOKIE_SECURE" env-default:"false"`
}

// Mail is optional. With an empty Host the mailer only logs outgoing messages.
type Mail struct {
	Host          string `yaml:"host" env:"SMTP_HOST"`
	Port          int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username      string `yaml:"username" env:"SMTP_USER"`
	Password      string `yaml:"password" env:"SMTP_PASS"`
	From          string `yaml:"from" env:"SMTP_FROM" env-default:"Journal <no-reply@journal.local>"`
	SkipTLSVerify bool   `yaml:"skip_tls_verify" env:"SMTP_SKIP_TLS_VERIFY" env-default:"false"`
}

type Storage struct {
	Driver    string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"local"`
	LocalDir  string `yaml:"local_dir" env:"STORAGE_DIR" env-default:"./uploads"`
	BaseURL   string `yaml:"base_url" env:"STORAGE_BASE_URL"`
	GCSBucket string `yaml:"gcs_bucket" env:"GCS_BUCKET"`
}

const (
	StorageLocal = "local"
	StorageGCS   = "gcs"
)

func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		return nil, errors.New("CONFIG_PATH is not set")
	}

	return LoadFile(configPath)
}

func LoadFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file does not exist: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}

	return cfg
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageLocal:
	case StorageGCS:
		if c.Storage.GCSBucket == "" {
			return errors.New("storage.gcs_bucket is required for the gcs driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if len(c.Auth.JWTSecret) < 16 {
		return errors.New("auth.jwt_secret must be at least 16 characters")
	}

	return nil
}
