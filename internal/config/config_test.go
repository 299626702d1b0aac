package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/blog")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, "minimalism-backend", cfg.JWTIssuer)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "disk", cfg.UploadDriver)
	assert.Equal(t, "uploads", cfg.UploadDir)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost:5432/blog")
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_TTLAndOrigins(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_TTL_MINUTES", "90")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_InvalidTTLFallsBack(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_TTL_MINUTES", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
}

func TestLoad_S3DriverValidation(t *testing.T) {
	setRequired(t)
	t.Setenv("UPLOAD_DRIVER", "s3")

	_, err := Load()
	assert.Error(t, err, "S3 driver without a bucket must fail")

	t.Setenv("S3_BUCKET", "avatars")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s3", cfg.UploadDriver)
	assert.Equal(t, "avatars", cfg.S3Bucket)
}

func TestLoad_UnknownDriver(t *testing.T) {
	setRequired(t)
	t.Setenv("UPLOAD_DRIVER", "ftp")

	_, err := Load()
	assert.Error(t, err)
}
