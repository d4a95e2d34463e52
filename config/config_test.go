package config

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testJWTSecret = "test-secret-key-that-is-long-enough-123"

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8000",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			WorkOffline: true,
		},
		Auth: AuthConfig{
			JWTSecret:  testJWTSecret,
			BcryptCost: 10,
		},
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name     string
		appEnv   string
		ginMode  string
		expected bool
	}{
		{"development app env", "development", "release", true},
		{"debug gin mode", "production", "debug", true},
		{"production", "production", "release", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Server: ServerConfig{AppEnv: tt.appEnv, GinMode: tt.ginMode}}
			assert.Equal(t, tt.expected, cfg.IsDevelopment())
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	assert.True(t, (&Config{Server: ServerConfig{AppEnv: "production"}}).IsProduction())
	assert.False(t, (&Config{Server: ServerConfig{AppEnv: "development"}}).IsProduction())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Config)
		errorMsg string
	}{
		{
			name:   "valid offline config",
			mutate: func(c *Config) {},
		},
		{
			name: "valid online config",
			mutate: func(c *Config) {
				c.Database.WorkOffline = false
				c.Database.URL = "postgres://localhost/mentoapp"
			},
		},
		{
			name:     "missing database url",
			mutate:   func(c *Config) { c.Database.WorkOffline = false },
			errorMsg: "DATABASE_URL is required",
		},
		{
			name:     "missing jwt secret",
			mutate:   func(c *Config) { c.Auth.JWTSecret = "" },
			errorMsg: "JWT_SECRET is required",
		},
		{
			name:     "short jwt secret",
			mutate:   func(c *Config) { c.Auth.JWTSecret = "short" },
			errorMsg: "at least 32 bytes",
		},
		{
			name:     "bcrypt cost out of range",
			mutate:   func(c *Config) { c.Auth.BcryptCost = 2 },
			errorMsg: "BCRYPT_COST",
		},
		{
			name:     "bootstrap admin without password",
			mutate:   func(c *Config) { c.Auth.BootstrapAdminEmail = "admin@example.com" },
			errorMsg: "must be set together",
		},
		{
			name:     "no cors origins",
			mutate:   func(c *Config) { c.Server.AllowedOrigins = nil },
			errorMsg: "ALLOWED_CORS_ORIGINS",
		},
		{
			name:     "profiling without endpoint",
			mutate:   func(c *Config) { c.Profiling.Enabled = true },
			errorMsg: "O11Y_PROFILING_ENDPOINT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errorMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	os.Clearenv()

	t.Setenv("DB_WORK_OFFLINE", "true")
	t.Setenv("JWT_SECRET", testJWTSecret)

	cfg, err := Load()

	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, "production", cfg.Server.AppEnv)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "/app/logs", cfg.Logging.Dir)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "mentoapp-api", cfg.Auth.JWTIssuer)
	assert.False(t, cfg.Auth.AllowAdminRegistration)
	assert.False(t, cfg.Workflow.BookingRequiresAcceptedRequest)
	assert.Equal(t, 300, cfg.Cache.MentorTTLSeconds)
	assert.Equal(t, int32(20), cfg.Database.MaxConns)
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	t.Chdir(t.TempDir())
	os.Clearenv()

	t.Setenv("PORT", "9000")
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("APP_ENV", "development")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://db.internal/mentoapp")
	t.Setenv("DB_MAX_CONNS", "5")
	t.Setenv("JWT_SECRET", testJWTSecret)
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("AUTH_ALLOW_ADMIN_REGISTRATION", "true")
	t.Setenv("BOOTSTRAP_ADMIN_EMAIL", " admin@example.com ")
	t.Setenv("BOOTSTRAP_ADMIN_PASSWORD", "admin-password")
	t.Setenv("BOOKING_REQUIRES_ACCEPTED_REQUEST", "true")
	t.Setenv("ALLOWED_CORS_ORIGINS", "https://mentoapp.example, http://localhost:3000,")
	t.Setenv("MENTOR_CACHE_TTL", "60")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "postgres://db.internal/mentoapp", cfg.Database.URL)
	assert.Equal(t, int32(5), cfg.Database.MaxConns)
	assert.False(t, cfg.Database.WorkOffline)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.True(t, cfg.Auth.AllowAdminRegistration)
	assert.Equal(t, "admin@example.com", cfg.Auth.BootstrapAdminEmail)
	assert.True(t, cfg.Workflow.BookingRequiresAcceptedRequest)
	assert.Equal(t, []string{"https://mentoapp.example", "http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 60, cfg.Cache.MentorTTLSeconds)
}

func TestLoad_ValidationFailure(t *testing.T) {
	t.Chdir(t.TempDir())
	os.Clearenv()

	t.Setenv("DB_WORK_OFFLINE", "true")
	t.Setenv("JWT_SECRET", strings.Repeat("x", MinJWTSecretLength-1))

	cfg, err := Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}
