package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("GIN_MODE", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "")
	t.Setenv("BCRYPT_COST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 10, cfg.Auth.BCryptCost)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "sql")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("STORE_SERIALIZE_WRITES", "true")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Store.SerializeWrites)
	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Contains(t, cfg.GetDatabaseDSN(), "host=db")
	assert.Contains(t, cfg.GetDatabaseDSN(), "password=pw")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:  ServerConfig{GinMode: "debug"},
			Store:   StoreConfig{Backend: "file"},
			Auth:    AuthConfig{JWTSecret: defaultJWTSecret, AccessTokenTTL: time.Minute, BCryptCost: 10},
			Session: SessionConfig{Store: "cookie"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown backend", mutate: func(c *Config) { c.Store.Backend = "s3" }, wantErr: "STORE_BACKEND"},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Backend = "sql"; c.Database.Driver = "oracle" }, wantErr: "DB_DRIVER"},
		{name: "unknown session store", mutate: func(c *Config) { c.Session.Store = "memcached" }, wantErr: "SESSION_STORE"},
		{name: "bcrypt cost too low", mutate: func(c *Config) { c.Auth.BCryptCost = 1 }, wantErr: "BCRYPT_COST"},
		{name: "zero ttl", mutate: func(c *Config) { c.Auth.AccessTokenTTL = 0 }, wantErr: "ACCESS_TOKEN_EXPIRE_MINUTES"},
		{name: "default secret in release", mutate: func(c *Config) { c.Server.GinMode = "release" }, wantErr: "JWT secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
