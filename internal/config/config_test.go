package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.ServerAddress)
	assert.Empty(t, cfg.GRPCAddress)
	assert.Equal(t, "https://api-ssl.bitly.com/v4/shorten", cfg.ProviderURL)
	assert.Equal(t, "bit.ly", cfg.ProviderDomain)
	assert.Zero(t, cfg.ProviderTimeout)
	assert.False(t, cfg.EnableHTTPS)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_EnvAndFlags(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "0.0.0.0:9000")
	t.Setenv("PROVIDER_TIMEOUT", "3s")
	t.Setenv("PROVIDER_DOMAIN", "j.mp")

	cfg, err := Load([]string{"-a", "127.0.0.1:7000", "-g", ":9090"})
	require.NoError(t, err)

	// флаг главнее переменной окружения
	assert.Equal(t, "127.0.0.1:7000", cfg.ServerAddress)
	assert.Equal(t, ":9090", cfg.GRPCAddress)
	assert.Equal(t, 3*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, "j.mp", cfg.ProviderDomain)
}

func TestLoad_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.json")
	data := `{"server_address":"localhost:8181","provider_timeout":"1500ms","log_level":"debug"}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load([]string{"-c", path})
	require.NoError(t, err)

	assert.Equal(t, "localhost:8181", cfg.ServerAddress)
	assert.Equal(t, 1500*time.Millisecond, cfg.ProviderTimeout)
	// окружение перекрывает файл
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_MissingJSONFile(t *testing.T) {
	_, err := Load([]string{"-config", filepath.Join(t.TempDir(), "nope.json")})
	assert.Error(t, err)
}

func TestLoad_InvalidProviderURL(t *testing.T) {
	_, err := Load([]string{"-p", "not a url"})
	assert.Error(t, err)
}

func TestCredential_ReadAtCallTime(t *testing.T) {
	t.Setenv("BITLY_TOKEN", "")
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Credential())

	t.Setenv("BITLY_TOKEN", "late-token")
	assert.Equal(t, "late-token", cfg.Credential())
}

func TestValidate(t *testing.T) {
	valid := Config{
		ServerAddress:  "localhost:8080",
		ProviderURL:    "https://api-ssl.bitly.com/v4/shorten",
		ProviderDomain: "bit.ly",
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "empty address", mutate: func(c *Config) { c.ServerAddress = "" }, wantErr: true},
		{name: "ftp provider", mutate: func(c *Config) { c.ProviderURL = "ftp://x/y" }, wantErr: true},
		{name: "empty domain", mutate: func(c *Config) { c.ProviderDomain = "" }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.ProviderTimeout = -time.Second }, wantErr: true},
		{name: "https without cert", mutate: func(c *Config) { c.EnableHTTPS = true }, wantErr: true},
		{name: "https with cert", mutate: func(c *Config) {
			c.EnableHTTPS = true
			c.TLSCertPath = "cert.pem"
			c.TLSKeyPath = "key.pem"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
