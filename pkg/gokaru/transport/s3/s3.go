// Package s3 stores origin files directly in an S3-compatible bucket, for
// deployments where the storage service reads its originals from object
// storage.
//
// Origin URLs produced by the client are mapped to object keys by stripping
// the origin base URL and decoding each path segment:
//
//	http://gokaru.local/image/avatars/picture%2B1  ->  {KeyPrefix}image/avatars/picture+1
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// Config options for the S3 transport
type Config struct {
	Region          string // AWS region
	Bucket          string // S3 bucket name
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing

	OriginURL string // Origin base URL stripped from request URLs
	KeyPrefix string // Prepended to every object key
}

// Transport implements Put and Delete against a bucket.
type Transport struct {
	client     *s3.Client
	uploader   *manager.Uploader
	bucket     string
	originPath string
	keyPrefix  string
}

// New creates an S3 transport.
func New(ctx context.Context, config Config) (*Transport, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}
	if config.Region == "" {
		config.Region = "us-east-1"
	}

	originPath := ""
	if config.OriginURL != "" {
		u, err := url.Parse(config.OriginURL)
		if err != nil {
			return nil, fmt.Errorf("invalid origin url: %w", err)
		}
		originPath = strings.TrimRight(u.EscapedPath(), "/")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(config.Region),
	}
	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.AccessKeyID, config.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}
	client := s3.NewFromConfig(awsCfg, s3Options...)

	return &Transport{
		client:     client,
		uploader:   manager.NewUploader(client),
		bucket:     config.Bucket,
		originPath: originPath,
		keyPrefix:  config.KeyPrefix,
	}, nil
}

// ObjectKey maps an origin URL to its object key.
func (t *Transport) ObjectKey(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	path := u.EscapedPath()
	if t.originPath != "" {
		if !strings.HasPrefix(path, t.originPath+"/") {
			return "", fmt.Errorf("url %s is outside origin path %s", rawURL, t.originPath)
		}
		path = strings.TrimPrefix(path, t.originPath)
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		decoded, err := url.QueryUnescape(s)
		if err != nil {
			return "", fmt.Errorf("invalid path segment %q: %w", s, err)
		}
		if decoded == "" {
			return "", fmt.Errorf("url %s has an empty path segment", rawURL)
		}
		segments[i] = decoded
	}
	return t.keyPrefix + strings.Join(segments, "/"), nil
}

// Put uploads body to the object key derived from rawURL.
func (t *Transport) Put(ctx context.Context, rawURL string, body io.Reader, size int64) error {
	key, err := t.ObjectKey(rawURL)
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(t.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := t.uploader.Upload(ctx, input); err != nil {
		return wrapError("put", key, err)
	}
	return nil
}

// Delete removes the object key derived from rawURL.
func (t *Transport) Delete(ctx context.Context, rawURL string) error {
	key, err := t.ObjectKey(rawURL)
	if err != nil {
		return err
	}

	_, err = t.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(t.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return wrapError("delete", key, err)
	}
	return nil
}

func wrapError(op, key string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("s3 %s %s: %s: %w", op, key, apiErr.ErrorCode(), err)
	}
	return fmt.Errorf("s3 %s %s: %w", op, key, err)
}
