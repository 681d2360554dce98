package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// OSSConfig holds the Aliyun OSS credentials
type OSSConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	SecurityToken string
	Bucket        string
	Prefix        string // optional key prefix, e.g. "elearning"
}

// OSSStorage keeps files in an Aliyun OSS bucket
type OSSStorage struct {
	bucket *oss.Bucket
	prefix string
}

func NewOSSStorage(cfg OSSConfig) (*OSSStorage, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("missing OSS endpoint, access key, secret key or bucket")
	}

	var opts []oss.ClientOption
	if cfg.SecurityToken != "" {
		opts = append(opts, oss.SecurityToken(cfg.SecurityToken))
	}
	client, err := oss.New(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	return &OSSStorage{bucket: bucket, prefix: strings.Trim(cfg.Prefix, "/")}, nil
}

func (s *OSSStorage) Save(ctx context.Context, namespace Namespace, filename string, content io.Reader) (string, error) {
	key := NewKey(namespace, filename)

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
	}
	if err := s.bucket.PutObject(s.objectKey(key), content, opts...); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return key, nil
}

// Delete removes the object; OSS answers 204 for missing keys too
func (s *OSSStorage) Delete(ctx context.Context, p string) error {
	key, err := s.objectKeyFor(p)
	if err != nil {
		return err
	}
	if err := s.bucket.DeleteObject(key, oss.WithContext(ctx)); err != nil && !isNotFound(err) {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

func (s *OSSStorage) Exists(ctx context.Context, p string) (bool, error) {
	key, err := s.objectKeyFor(p)
	if err != nil {
		return false, err
	}
	ok, err := s.bucket.IsObjectExist(key, oss.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("check object: %w", err)
	}
	return ok, nil
}

func (s *OSSStorage) objectKeyFor(p string) (string, error) {
	clean := CleanPath(p)
	if clean == "" {
		return "", ErrInvalidPath
	}
	return s.objectKey(clean), nil
}

func (s *OSSStorage) objectKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + "/" + key
}

func isNotFound(err error) bool {
	if e, ok := err.(oss.ServiceError); ok {
		return e.StatusCode == 404
	}
	return false
}
