package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

type Config struct {
	Env          string `yaml:"env" validate:"oneof=dev stage prod"`
	ShortURLBase string `yaml:"short_url_base" validate:"required,http_url"`
	RecentLimit  int    `yaml:"recent_limit" validate:"min=1"`
	HTTPServer   `yaml:"http_server"`
	Backend      `yaml:"backend"`
	Session      `yaml:"session"`
	RateLimit    `yaml:"rate_limit"`
	Log          `yaml:"log"`
}

type HTTPServer struct {
	Port           int           `yaml:"port" validate:"min=1,max=65535"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	MaxHeaderBytes int           `yaml:"max_header_bytes"`
	CertFile       string        `yaml:"cert_file"`
	KeyFile        string        `yaml:"key_file"`
	// TrustProxy takes client IPs from X-Forwarded-For / X-Real-IP. Only
	// enable it when the server sits behind a proxy that sets them.
	TrustProxy bool `yaml:"trust_proxy"`
}

var defaultHTTPServer = HTTPServer{
	Port:           3000,
	ReadTimeout:    5 * time.Second,
	WriteTimeout:   10 * time.Second,
	IdleTimeout:    time.Minute,
	MaxHeaderBytes: 1 << 20,
}

func (s *HTTPServer) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// Backend locates the LilURL API. Timeout zero leaves the transport default.
type Backend struct {
	BaseURL string        `yaml:"base_url" validate:"required,http_url"`
	Timeout time.Duration `yaml:"timeout" validate:"min=0"`
}

var defaultBackend = Backend{
	BaseURL: "http://localhost:8080",
}

type Session struct {
	CookieName    string        `yaml:"cookie_name" validate:"required"`
	CookieSecure  bool          `yaml:"cookie_secure"`
	TTL           time.Duration `yaml:"ttl" validate:"gt=0"`
	SweepInterval time.Duration `yaml:"sweep_interval" validate:"gt=0"`
	MaxSessions   int           `yaml:"max_sessions" validate:"min=0"`
}

var defaultSession = Session{
	CookieName:    "lilurl_session",
	TTL:           30 * time.Minute,
	SweepInterval: time.Minute,
	MaxSessions:   10000,
}

// RateLimit throttles submissions per client IP.
type RateLimit struct {
	Enabled bool          `yaml:"enabled"`
	RPS     float64       `yaml:"rps" validate:"gt=0"`
	Burst   int           `yaml:"burst" validate:"min=1"`
	Idle    time.Duration `yaml:"idle" validate:"gt=0"`
}

var defaultRateLimit = RateLimit{
	Enabled: true,
	RPS:     2,
	Burst:   5,
	Idle:    10 * time.Minute,
}

type Log struct {
	Level   string `yaml:"level" validate:"oneof=debug info warn error"`
	Concise bool   `yaml:"concise"`
}

var defaultLog = Log{
	Level: "info",
}

// SlogLevel maps Level onto a slog.Level.
func (l *Log) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func Load(path string) (*Config, error) {
	const op = "config.Load"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open config file: %w", op, err)
	}
	defer f.Close()

	var cfg Config
	setDefaults(&cfg)

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to decode config file: %w", op, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%s: invalid config: %w", op, err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Env = EnvDev
	cfg.ShortURLBase = "http://localhost:3000"
	cfg.RecentLimit = 5
	cfg.HTTPServer = defaultHTTPServer
	cfg.Backend = defaultBackend
	cfg.Session = defaultSession
	cfg.RateLimit = defaultRateLimit
	cfg.Log = defaultLog
}
