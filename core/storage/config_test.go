package storage_test

import (
	"testing"

	"filevault/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_ApplySettings(t *testing.T) {
	base := storage.Config{
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "files",
		Region:    "us-east-1",
	}

	t.Run("Empty", func(t *testing.T) {
		cfg := base
		require.NoError(t, cfg.ApplySettings("  "))
		assert.Equal(t, base, cfg)
	})

	t.Run("Overlay", func(t *testing.T) {
		cfg := base
		err := cfg.ApplySettings(`{"bucket":"uploads","region":"eu-west-1","accessKeyId":"AKIA","secretAccessKey":"s3cr3t","useSSL":true}`)
		require.NoError(t, err)

		assert.Equal(t, "uploads", cfg.Bucket)
		assert.Equal(t, "eu-west-1", cfg.Region)
		assert.Equal(t, "AKIA", cfg.AccessKey)
		assert.Equal(t, "s3cr3t", cfg.SecretKey)
		assert.True(t, cfg.UseSSL)
		assert.Equal(t, "localhost:9000", cfg.Endpoint)
	})

	t.Run("Malformed", func(t *testing.T) {
		cfg := base
		err := cfg.ApplySettings(`{"bucket":`)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse storage settings")
	})
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, storage.Config{Bucket: "files", Endpoint: "localhost:9000"}.Validate())

	err := storage.Config{Endpoint: "localhost:9000"}.Validate()
	assert.EqualError(t, err, "storage bucket is required")

	err = storage.Config{Bucket: "files"}.Validate()
	assert.EqualError(t, err, "storage endpoint is required")
}
