package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "CORS_ALLOWED_ORIGINS", "UPLOADS_DIR", "SHUTDOWN_TIMEOUT", "APP_ENV",
		"DB_HOST", "DB_PORT", "DB_USERNAME", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "JWT_SECRET", "JWT_TTL",
		"AUTH_RATE_PER_SECOND", "AUTH_RATE_BURST",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	chdir(t, t.TempDir())

	cfg := LoadConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "uploads", cfg.Server.UploadsDir)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.Server.Development)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "postal_clerk", cfg.Database.DBName)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, DefaultJWTSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, float64(5), cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://clerk.example.com,")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("APP_ENV", "development")

	cfg := LoadConfig()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000", "https://clerk.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 90*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 5432, cfg.Database.Port, "invalid values fall back to the default")
	assert.True(t, cfg.Server.Development)
}

func TestLoadConfigReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("DB_NAME", "")
	os.Unsetenv("DB_NAME")
	t.Setenv("DB_HOST", "from-env")

	content := "DB_NAME=from_dotenv\nDB_HOST=from-dotenv\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
	t.Cleanup(func() { os.Unsetenv("DB_NAME") })

	cfg := LoadConfig()

	assert.Equal(t, "from_dotenv", cfg.Database.DBName)
	assert.Equal(t, "from-env", cfg.Database.Host, "existing environment wins over .env")
}

func TestGetDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5433, Username: "u", Password: "p", DBName: "n", SSLMode: "require"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=require", c.GetDSN())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		secret      string
		development bool
		wantErr     string
	}{
		{"default secret in production", DefaultJWTSecret, false, "JWT_SECRET must be changed from the default outside development"},
		{"default secret in development", DefaultJWTSecret, true, ""},
		{"empty secret", "", true, "JWT_SECRET must be set"},
		{"custom secret in production", "0f9c2b7e-prod", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server: ServerConfig{Development: tt.development},
				Auth:   AuthConfig{JWTSecret: tt.secret},
			}
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestDefaultConfigDoesNotValidate(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{"JWT_SECRET", "APP_ENV"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	assert.Error(t, LoadConfig().Validate())
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
