// Package publish uploads finished package archives to S3-compatible
// object storage.
package publish

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const uploadTimeout = 5 * time.Minute

// Config locates the bucket packages are published to.
type Config struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Region    string `mapstructure:"region"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return errors.New("endpoint is required")
	}
	if strings.Contains(c.Endpoint, "://") {
		return fmt.Errorf("endpoint must not include scheme: %q", c.Endpoint)
	}
	if strings.TrimSpace(c.AccessKey) == "" {
		return errors.New("access key is required")
	}
	if strings.TrimSpace(c.SecretKey) == "" {
		return errors.New("secret key is required")
	}
	if strings.TrimSpace(c.Region) == "" {
		return errors.New("region is required")
	}
	if strings.TrimSpace(c.Bucket) == "" {
		return errors.New("bucket is required")
	}
	return nil
}

// ObjectKey is where the archive of name/version built from recipe
// revision rev is stored: <prefix>/<name>/<version>/r<rev>/<file>.
func (c Config) ObjectKey(name, version, rev, archive string) string {
	return path.Join(strings.Trim(c.Prefix, "/"), name, version, "r"+rev, filepath.Base(archive))
}

// Publisher writes archives into one bucket.
type Publisher struct {
	cfg    Config
	client *minio.Client
}

func New(cfg Config) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("publish config: %w", err)
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: newTransport(),
	})
	if err != nil {
		return nil, err
	}
	return &Publisher{cfg: cfg, client: client}, nil
}

// Upload stores the zip archive at file under key and returns the
// object's location as bucket/key.
func (p *Publisher) Upload(ctx context.Context, file, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	exists, err := p.client.BucketExists(ctx, p.cfg.Bucket)
	if err != nil {
		return "", fmt.Errorf("bucket exists: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("bucket missing: %s", p.cfg.Bucket)
	}
	if _, err := p.client.FPutObject(ctx, p.cfg.Bucket, key, file, minio.PutObjectOptions{ContentType: "application/zip"}); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return p.cfg.Bucket + "/" + key, nil
}

func newTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
