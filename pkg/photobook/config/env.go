package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// envConfig is the environment variable surface of the server
type envConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`

	// DATABASE_URL selects the metadata store:
	//   "" or "memory"       - in-memory store
	//   "postgres://..."     - Postgres via pgx
	DatabaseURL string `env:"DATABASE_URL" env-default:""`

	// STORAGE_URL selects the blob store:
	//   "" or "memory://"            - in-memory storage
	//   "file:///path/to/data"       - filesystem storage
	//   "s3://bucket?region=..."     - S3 storage
	StorageURL string `env:"STORAGE_URL" env-default:""`

	S3AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" env-default:""`
	S3SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" env-default:""`
	S3Region          string `env:"AWS_REGION" env-default:"us-east-1"`

	VisionEndpoint string `env:"VISION_ENDPOINT" env-default:""`
	VisionKey      string `env:"VISION_KEY" env-default:""`

	OTLPEndpoint string `env:"OTLP_ENDPOINT" env-default:""`
	OTLPInsecure bool   `env:"OTLP_INSECURE" env-default:"false"`
}

// WithEnv applies environment variable overrides.
func WithEnv() Option {
	return func(c *ServerConfig) error {
		var env envConfig
		if err := cleanenv.ReadEnv(&env); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}

		c.Port = env.Port
		c.Environment = env.Environment
		c.VisionEndpoint = env.VisionEndpoint
		c.VisionKey = env.VisionKey
		c.OTLPEndpoint = env.OTLPEndpoint
		c.OTLPInsecure = env.OTLPInsecure

		if err := applyDatabaseEnv(env, c); err != nil {
			return err
		}
		return applyStorageEnv(env, c)
	}
}

func applyDatabaseEnv(env envConfig, c *ServerConfig) error {
	switch {
	case env.DatabaseURL == "" || env.DatabaseURL == "memory":
		c.DatabaseType = "memory"
		c.DatabaseURL = ""
	case strings.HasPrefix(env.DatabaseURL, "postgres://"),
		strings.HasPrefix(env.DatabaseURL, "postgresql://"):
		c.DatabaseType = "postgres"
		c.DatabaseURL = env.DatabaseURL
	default:
		return fmt.Errorf("unsupported DATABASE_URL format: %s (use 'memory' or 'postgres://...')", env.DatabaseURL)
	}
	return nil
}

func applyStorageEnv(env envConfig, c *ServerConfig) error {
	switch {
	case env.StorageURL == "" || env.StorageURL == "memory" || env.StorageURL == "memory://":
		c.StorageType = "memory"
		return nil

	case strings.HasPrefix(env.StorageURL, "file://"):
		path := strings.TrimPrefix(env.StorageURL, "file://")
		if path == "" {
			return fmt.Errorf("filesystem path cannot be empty in STORAGE_URL")
		}
		c.StorageType = "fs"
		c.FSBaseDir = path
		return nil

	case strings.HasPrefix(env.StorageURL, "s3://"):
		return applyS3Env(env, c)

	default:
		return fmt.Errorf("unsupported STORAGE_URL format: %s (use 'memory://', 'file://...', or 's3://...')", env.StorageURL)
	}
}

// applyS3Env configures S3 storage from a URL of the form
// s3://bucket?region=us-east-1&endpoint=http://localhost:9000
func applyS3Env(env envConfig, c *ServerConfig) error {
	parsed, err := url.Parse(env.StorageURL)
	if err != nil {
		return fmt.Errorf("invalid STORAGE_URL: %w", err)
	}
	if parsed.Host == "" {
		return fmt.Errorf("s3 bucket name cannot be empty in STORAGE_URL")
	}

	c.StorageType = "s3"
	c.S3 = S3Config{
		Bucket:          parsed.Host,
		Region:          env.S3Region,
		AccessKeyID:     env.S3AccessKeyID,
		SecretAccessKey: env.S3SecretAccessKey,
	}

	query := parsed.Query()
	if region := query.Get("region"); region != "" {
		c.S3.Region = region
	}
	if endpoint := query.Get("endpoint"); endpoint != "" {
		c.S3.Endpoint = endpoint
		c.S3.UsePathStyle = true
	}
	if query.Get("create_bucket") == "true" {
		c.S3.CreateBucketIfNotExist = true
	}

	return nil
}
