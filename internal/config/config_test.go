package config

import (
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("non-existent config file", func(t *testing.T) {
		cfg, err := Load("invalid/path/to/config.yml")

		assert.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Nil(t, cfg)
	})

	t.Run("invalid config file", func(t *testing.T) {
		data := `http_server:
  port: not number
backend:
  base_url: http://backend:8080`

		f := createTempFile(t, []byte(data))
		cfg, err := Load(f.Name())

		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("invalid values", func(t *testing.T) {
		data := `env: qa
short_url_base: lil.example
backend:
  base_url: http://backend:8080`

		f := createTempFile(t, []byte(data))
		cfg, err := Load(f.Name())

		assert.Nil(t, cfg)

		var validationErrs validator.ValidationErrors
		if assert.ErrorAs(t, err, &validationErrs) {
			assert.Len(t, validationErrs, 2)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		f := createTempFile(t, []byte(`{}`))
		cfg, err := Load(f.Name())

		assert.NoError(t, err)

		var wantCfg Config
		setDefaults(&wantCfg)

		assert.Equal(t, wantCfg, *cfg)
	})

	t.Run("success", func(t *testing.T) {
		data := `env: prod
short_url_base: https://lil.example
recent_limit: 10
http_server:
  port: 8443
  cert_file: ./crts/example.pem
  key_file: ./crts/example-key.pem
  trust_proxy: true
backend:
  base_url: http://backend:8080
  timeout: 3s
session:
  ttl: 1h
  cookie_secure: true
  max_sessions: 500
rate_limit:
  enabled: false
log:
  level: debug`

		f := createTempFile(t, []byte(data))
		cfg, err := Load(f.Name())

		assert.NoError(t, err)
		assert.NotNil(t, cfg)

		var wantCfg Config
		setDefaults(&wantCfg)

		wantCfg.Env = EnvProd
		wantCfg.ShortURLBase = "https://lil.example"
		wantCfg.RecentLimit = 10
		wantCfg.HTTPServer.Port = 8443
		wantCfg.HTTPServer.CertFile = "./crts/example.pem"
		wantCfg.HTTPServer.KeyFile = "./crts/example-key.pem"
		wantCfg.HTTPServer.TrustProxy = true
		wantCfg.Backend.BaseURL = "http://backend:8080"
		wantCfg.Backend.Timeout = 3 * time.Second
		wantCfg.Session.TTL = time.Hour
		wantCfg.Session.CookieSecure = true
		wantCfg.Session.MaxSessions = 500
		wantCfg.RateLimit.Enabled = false
		wantCfg.Log.Level = "debug"

		assert.Equal(t, wantCfg, *cfg)
	})
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("../../config/local.yml")
	if !assert.NoError(t, err) {
		return
	}

	assert.Equal(t, fmt.Sprintf("http://localhost:%d", cfg.HTTPServer.Port), cfg.ShortURLBase,
		"short URLs resolve at the frontend itself")
	assert.NotEqual(t, cfg.Backend.BaseURL, cfg.ShortURLBase)
}

func createTempFile(t testing.TB, data []byte) *os.File {
	t.Helper()

	f, err := os.CreateTemp("", "config.yml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	t.Cleanup(func() {
		f.Close()
		os.Remove(f.Name())
	})

	if _, err := f.Write(data); err != nil {
		t.Fatalf("Failed to write to file: %v", err)
	}

	return f
}

func TestHTTPServer_Addr(t *testing.T) {
	s := HTTPServer{Port: 3000}

	assert.Equal(t, ":3000", s.Addr())
}

func TestLog_SlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Log{Level: "debug"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Log{Level: "warn"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Log{Level: "bogus"}).SlogLevel())
}
