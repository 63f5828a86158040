package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDevelopment(t *testing.T) {
	assert.True(t, (&Config{Environment: "development"}).IsDevelopment())
	assert.False(t, (&Config{Environment: "production"}).IsDevelopment())
	assert.True(t, (&Config{Environment: "production"}).IsProduction())
	assert.False(t, (&Config{Environment: "staging"}).IsDevelopment())
}

func TestLoadWithOptions(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/kitchen-test.db")
	t.Setenv("DB_HOST", "testhost")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("VISITOR_SESSION_TTL", "10m")
	t.Setenv("NOTIFY_EMAIL", "owner@example.com")
	t.Setenv("ENVIRONMENT", "staging")

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/kitchen-test.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "testhost", cfg.Storage.Database.Host)
	assert.Equal(t, "s3cret", cfg.Security.JWTSecret)
	assert.False(t, cfg.Security.DevSecret)
	assert.Equal(t, 2*time.Hour, cfg.Security.TokenTTL)
	assert.Equal(t, 10*time.Minute, cfg.Visitors.SessionTTL)
	assert.Equal(t, "owner@example.com", cfg.NotifyEmail)
	assert.Equal(t, "staging", cfg.Environment)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "kitchen", cfg.Storage.Database.DBName)
	assert.Equal(t, 24*time.Hour, cfg.Security.TokenTTL)
	assert.Equal(t, int64(5*1024*1024), cfg.Images.MaxBytes)
	assert.Equal(t, ImageStoreInline, cfg.Images.Store)
	assert.Equal(t, 50, cfg.Visitors.Window)
	assert.Equal(t, 30, cfg.Visitors.Days)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Empty(t, cfg.Server.TrustedProxies)
	assert.Equal(t, "Osei Serwaa Kitchen", cfg.RestaurantName)
	assert.Equal(t, "admin@oseiserwaa.com", cfg.Root.Email)
	assert.Empty(t, cfg.Root.Password)
	assert.False(t, cfg.SMTP.Enabled())
}

func TestJWTSecret(t *testing.T) {
	t.Run("required in production", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("ENVIRONMENT", "production")

		_, err := LoadWithOptions(LoadOptions{})
		require.Error(t, err)
		assert.Equal(t, "JWT_SECRET is required", err.Error())
	})

	t.Run("development fallback", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("ENVIRONMENT", "development")

		cfg, err := LoadWithOptions(LoadOptions{})
		require.NoError(t, err)
		assert.True(t, cfg.Security.DevSecret)
		assert.NotEmpty(t, cfg.Security.JWTSecret)
		assert.Equal(t, "admin123", cfg.Root.Password)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Storage:  StorageConfig{Driver: DriverPostgres},
			Images:   ImageConfig{Store: ImageStoreInline, MaxBytes: 1024},
			Security: SecurityConfig{TokenTTL: time.Hour},
		}
	}

	assert.NoError(t, valid().Validate())

	c := valid()
	c.Storage.Driver = "mysql"
	assert.ErrorContains(t, c.Validate(), "unsupported STORAGE_DRIVER")

	c = valid()
	c.Images.Store = ImageStoreS3
	assert.ErrorContains(t, c.Validate(), "S3_BUCKET is required")

	c.Images.S3.Bucket = "kitchen-images"
	assert.NoError(t, c.Validate())

	c = valid()
	c.Images.Store = "ftp"
	assert.ErrorContains(t, c.Validate(), "unsupported IMAGE_STORE")

	c = valid()
	c.Security.TokenTTL = 0
	assert.ErrorContains(t, c.Validate(), "TOKEN_TTL")
}

func TestLoadFromEnvFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SERVER_PORT", "")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("JWT_SECRET=from-file\nSERVER_PORT=7070\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadWithOptions(LoadOptions{EnvFile: ".env.test"})
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Security.JWTSecret)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestTrustedProxies(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, ,127.0.0.1")

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.Server.TrustedProxies)
}
