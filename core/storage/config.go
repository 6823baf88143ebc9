package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Config holds configuration for the storage provider.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket every facade call targets.
	Bucket string `mapstructure:"bucket" default:"files"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:"us-east-1"`
	// Settings is a JSON document overlaid on the fields above (STORAGE_CONFIG).
	Settings string `mapstructure:"config" default:""`

	// TimeoutSeconds is the connect and response-header timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxRetries is handed to the client, which owns all retry behaviour.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// MaxSockets caps concurrent connections to the endpoint.
	MaxSockets int `mapstructure:"max_sockets" default:"50"`
	// KeepAliveSeconds is the TCP keep-alive period for pooled connections.
	KeepAliveSeconds int `mapstructure:"keep_alive_seconds" default:"30"`

	// ContentType is used for uploads that do not name one.
	ContentType string `mapstructure:"content_type" default:"application/octet-stream"`
	// CacheControl is used for uploads that do not name one.
	CacheControl string `mapstructure:"cache_control" default:"max-age=31536000"`
	// StorageClass is used for uploads that do not name one.
	StorageClass string `mapstructure:"storage_class" default:"STANDARD"`
	// Encryption is the server-side encryption mode for uploads. AES256 requests
	// SSE-S3, which MinIO only accepts when a KMS is configured.
	Encryption string `mapstructure:"encryption" default:"none"`
}

// settingsDocument is the shape of the JSON-encoded STORAGE_CONFIG value.
type settingsDocument struct {
	Bucket          string `json:"bucket"`
	Region          string `json:"region"`
	Endpoint        string `json:"endpoint"`
	AccessKeyID     string `json:"accessKeyId"`
	SecretAccessKey string `json:"secretAccessKey"`
	UseSSL          *bool  `json:"useSSL"`
}

// ApplySettings overlays the JSON-encoded settings value onto c.
// Fields absent from the document keep their current values.
func (c *Config) ApplySettings(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var doc settingsDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return fmt.Errorf("failed to parse storage settings: %w", err)
	}

	if doc.Bucket != "" {
		c.Bucket = doc.Bucket
	}
	if doc.Region != "" {
		c.Region = doc.Region
	}
	if doc.Endpoint != "" {
		c.Endpoint = doc.Endpoint
	}
	if doc.AccessKeyID != "" {
		c.AccessKey = doc.AccessKeyID
	}
	if doc.SecretAccessKey != "" {
		c.SecretKey = doc.SecretAccessKey
	}
	if doc.UseSSL != nil {
		c.UseSSL = *doc.UseSSL
	}
	return nil
}

// Validate reports configuration that would make every facade call fail.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Bucket) == "" {
		return errors.New("storage bucket is required")
	}
	if strings.TrimSpace(c.Endpoint) == "" {
		return errors.New("storage endpoint is required")
	}
	return nil
}
