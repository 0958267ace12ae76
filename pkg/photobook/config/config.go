// Package config loads server configuration and assembles the photobook
// service from it.
package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/photobook/photobook/pkg/photobook"
	memoryrepo "github.com/photobook/photobook/pkg/photobook/repo/memory"
	repopg "github.com/photobook/photobook/pkg/photobook/repo/postgres"
	fsstorage "github.com/photobook/photobook/pkg/photobook/storage/fs"
	memorystorage "github.com/photobook/photobook/pkg/photobook/storage/memory"
	s3storage "github.com/photobook/photobook/pkg/photobook/storage/s3"
	"github.com/photobook/photobook/pkg/photobook/vision"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of
// library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:         "8080",
		Environment:  "development",
		DatabaseType: "memory",
		StorageType:  "memory",
	}
}

// ServerConfig represents server configuration for the photobook service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Database configuration
	DatabaseURL  string
	DatabaseType string // "memory", "postgres"

	// Storage configuration
	StorageType string // "memory", "fs", "s3"
	FSBaseDir   string
	S3          S3Config

	// Content analysis configuration; captioning is disabled when the
	// endpoint or key is empty
	VisionEndpoint string
	VisionKey      string

	// Telemetry configuration; export is disabled when the endpoint is
	// empty
	OTLPEndpoint string
	OTLPInsecure bool
}

// S3Config represents configuration for the S3 storage backend
type S3Config struct {
	Region                 string
	Bucket                 string
	AccessKeyID            string
	SecretAccessKey        string
	Endpoint               string
	UsePathStyle           bool
	CreateBucketIfNotExist bool
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}
	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	switch c.StorageType {
	case "memory":
	case "fs":
		if c.FSBaseDir == "" {
			return errors.New("fs base dir is required when using fs storage")
		}
	case "s3":
		if c.S3.Bucket == "" {
			return errors.New("s3 bucket is required when using s3 storage")
		}
	default:
		return errors.New("storage_type must be 'memory', 'fs' or 's3'")
	}

	if (c.VisionEndpoint == "") != (c.VisionKey == "") {
		return errors.New("vision endpoint and key must be set together")
	}

	return nil
}

// VisionEnabled reports whether a content analysis client is configured
func (c *ServerConfig) VisionEnabled() bool {
	return c.VisionEndpoint != "" && c.VisionKey != ""
}

// BuildService creates a Service instance from the server configuration.
// The sink receives analysis usage signals and may be nil.
func (c *ServerConfig) BuildService(sink photobook.UsageSink) (photobook.Service, error) {
	repo, err := c.buildRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}

	store, err := c.buildBlobStore()
	if err != nil {
		return nil, fmt.Errorf("failed to build blob store: %w", err)
	}

	options := []photobook.Option{
		photobook.WithRepository(repo),
		photobook.WithBlobStore(store),
	}

	if c.VisionEnabled() {
		describer, err := vision.New(vision.Config{
			Endpoint:  c.VisionEndpoint,
			Key:       c.VisionKey,
			UsageSink: sink,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build vision client: %w", err)
		}
		options = append(options, photobook.WithDescriber(describer))
	}

	return photobook.New(options...)
}

// buildRepository creates a Repository based on the configuration
func (c *ServerConfig) buildRepository() (photobook.Repository, error) {
	switch c.DatabaseType {
	case "memory":
		return memoryrepo.New(), nil
	case "postgres":
		pool, err := pgxpool.New(context.Background(), c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		return repopg.NewWithPool(pool), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

// buildBlobStore creates a BlobStore based on the configuration
func (c *ServerConfig) buildBlobStore() (photobook.BlobStore, error) {
	switch c.StorageType {
	case "memory":
		return memorystorage.New(), nil

	case "fs":
		return fsstorage.New(fsstorage.Config{BaseDir: c.FSBaseDir})

	case "s3":
		return s3storage.New(s3storage.Config{
			Region:                 c.S3.Region,
			Bucket:                 c.S3.Bucket,
			AccessKeyID:            c.S3.AccessKeyID,
			SecretAccessKey:        c.S3.SecretAccessKey,
			Endpoint:               c.S3.Endpoint,
			UsePathStyle:           c.S3.UsePathStyle,
			CreateBucketIfNotExist: c.S3.CreateBucketIfNotExist,
		})

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", c.StorageType)
	}
}
