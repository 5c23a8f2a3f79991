// Package config loads client settings from the environment or a config file
// and builds a wired gokaru.Client from them.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"golang.org/x/exp/slices"

	"github.com/tendant/gokaru-go/pkg/gokaru"
	"github.com/tendant/gokaru-go/pkg/gokaru/signature"
	"github.com/tendant/gokaru-go/pkg/gokaru/transport/httptransport"
	"github.com/tendant/gokaru-go/pkg/gokaru/transport/memory"
	"github.com/tendant/gokaru-go/pkg/gokaru/transport/s3"
)

// Transport names accepted by Config.Transport.
const (
	TransportHTTP   = "http"
	TransportS3     = "s3"
	TransportMemory = "memory"
)

var transports = []string{TransportHTTP, TransportS3, TransportMemory}

type Config struct {
	URL       string `yaml:"url" env:"GOKARU_URL" env-description:"Origin base URL of the storage service"`
	Salt      string `yaml:"salt" env:"GOKARU_SALT" env-description:"Shared thumbnail signing secret"`
	Signature string `yaml:"signature" env:"GOKARU_SIGNATURE" env-default:"murmur" env-description:"Signature algorithm: murmur or md5"`

	PublicImageURL string `yaml:"public_image_url" env:"GOKARU_PUBLIC_IMAGE_URL" env-description:"Public base URL for image thumbnails"`
	PublicFileURL  string `yaml:"public_file_url" env:"GOKARU_PUBLIC_FILE_URL" env-description:"Public base URL for file thumbnails"`

	Transport   string        `yaml:"transport" env:"GOKARU_TRANSPORT" env-default:"http" env-description:"Upload transport: http, s3 or memory"`
	HTTPTimeout time.Duration `yaml:"http_timeout" env:"GOKARU_HTTP_TIMEOUT" env-default:"30m"`

	S3 S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket" env:"GOKARU_S3_BUCKET"`
	Region          string `yaml:"region" env:"GOKARU_S3_REGION" env-default:"us-east-1"`
	Endpoint        string `yaml:"endpoint" env:"GOKARU_S3_ENDPOINT"`
	AccessKeyID     string `yaml:"access_key_id" env:"GOKARU_S3_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"GOKARU_S3_SECRET_ACCESS_KEY"`
	UsePathStyle    bool   `yaml:"use_path_style" env:"GOKARU_S3_USE_PATH_STYLE" env-default:"false"`
	KeyPrefix       string `yaml:"key_prefix" env:"GOKARU_S3_KEY_PREFIX"`
}

// FromEnv reads the configuration from GOKARU_* environment variables.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return &cfg, cfg.Validate()
}

// Load reads a YAML, JSON, TOML or .env file. Environment variables override
// values from the file.
func Load(path string) (*Config, error) {
	if path == "" {
		return FromEnv()
	}
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return &cfg, cfg.Validate()
}

// Validate checks the settings needed to build a client.
func (c *Config) Validate() error {
	if c.URL == "" {
		return errors.New("GOKARU_URL is required")
	}
	if _, err := signature.New(signature.Algorithm(c.Signature), c.Salt); err != nil {
		return err
	}
	transport := strings.ToLower(c.Transport)
	if transport != "" && !slices.Contains(transports, transport) {
		return fmt.Errorf("unsupported transport %q (use %s)", c.Transport, strings.Join(transports, ", "))
	}
	if transport == TransportS3 && c.S3.Bucket == "" {
		return errors.New("GOKARU_S3_BUCKET is required for the s3 transport")
	}
	if c.HTTPTimeout < 0 {
		return errors.New("GOKARU_HTTP_TIMEOUT should not be negative")
	}
	return nil
}

// Usage describes the supported environment variables.
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return err.Error()
	}
	return text
}

// Generator returns the configured signature generator.
func (c *Config) Generator() (signature.Generator, error) {
	return signature.New(signature.Algorithm(c.Signature), c.Salt)
}

// NewTransport builds the configured upload transport.
func (c *Config) NewTransport(ctx context.Context) (gokaru.Transport, error) {
	switch strings.ToLower(c.Transport) {
	case "", TransportHTTP:
		var opts []httptransport.Option
		if c.HTTPTimeout > 0 {
			opts = append(opts, httptransport.WithTimeout(c.HTTPTimeout))
		}
		return httptransport.New(opts...), nil
	case TransportMemory:
		t := memory.New()
		t.IgnoreMissing = true
		return t, nil
	case TransportS3:
		t, err := s3.New(ctx, s3.Config{
			Region:          c.S3.Region,
			Bucket:          c.S3.Bucket,
			AccessKeyID:     c.S3.AccessKeyID,
			SecretAccessKey: c.S3.SecretAccessKey,
			Endpoint:        c.S3.Endpoint,
			UsePathStyle:    c.S3.UsePathStyle,
			OriginURL:       c.URL,
			KeyPrefix:       c.S3.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("create s3 transport: %w", err)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unsupported transport %q", c.Transport)
	}
}

// NewClient builds a client with the configured generator, transport and
// public URL overrides. opts are applied after the configured ones.
func (c *Config) NewClient(ctx context.Context, opts ...gokaru.Option) (*gokaru.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	gen, err := c.Generator()
	if err != nil {
		return nil, err
	}
	transport, err := c.NewTransport(ctx)
	if err != nil {
		return nil, err
	}

	base := []gokaru.Option{gokaru.WithTransport(transport)}
	if c.PublicImageURL != "" {
		base = append(base, gokaru.WithPublicURL(gokaru.SourceTypeImage, c.PublicImageURL))
	}
	if c.PublicFileURL != "" {
		base = append(base, gokaru.WithPublicURL(gokaru.SourceTypeFile, c.PublicFileURL))
	}
	return gokaru.New(c.URL, gen, append(base, opts...)...)
}
