// Package storage publica mídia (avatares, fotos de serviço) num bucket
// compatível com S3, com chaves aleatórias por upload.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/studiotrim/agenda-api/internal/config"
)

type ObjectStore struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// New retorna nil quando não há S3 configurado; os handlers tratam a
// ausência como feature desligada.
func New(cfg *config.Config) *ObjectStore {
	if cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
		return nil
	}

	awsCfg := aws.Config{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			// gateways estilo MinIO/Supabase exigem path-style
			o.UsePathStyle = true
		}
	})

	publicURL := cfg.S3PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &ObjectStore{
		client:    client,
		bucket:    cfg.S3Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// Upload grava o objeto sob prefix (ex.: "avatars", "services") com uma
// chave nova a cada chamada e devolve a URL pública.
func (s *ObjectStore) Upload(ctx context.Context, prefix string, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("%s/%s.webp", prefix, uuid.NewString())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload para o bucket falhou: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}
