package client

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/cuongnguyenngoc/web3mail/internal/common"
	"github.com/cuongnguyenngoc/web3mail/internal/config"
)

// s3ClientImpl stores objects under their SHA-256 digest, which makes an S3
// or MinIO bucket behave as a content-addressed backend: the same bytes
// always land on the same key, and the key doubles as the handle.
type s3ClientImpl struct {
	s3     *s3.Client
	bucket string
}

func NewS3Client(ctx context.Context, storageCfg *config.Storage) (StorageBackend, error) {
	if storageCfg.S3Bucket == "" {
		return nil, fmt.Errorf("%w: S3 bucket is not set", common.ErrConfiguration)
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(storageCfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			storageCfg.S3AccessKey,
			storageCfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	svc := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if storageCfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(storageCfg.S3BaseEndpoint)
			o.UsePathStyle = true // MinIO
		}
	})

	return &s3ClientImpl{s3: svc, bucket: storageCfg.S3Bucket}, nil
}

func (c *s3ClientImpl) Add(ctx context.Context, data []byte) (string, error) {
	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:])

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("%w: s3 put %s: %v", common.ErrStorageUnavailable, key, err)
	}

	return key, nil
}

func (c *s3ClientImpl) Cat(ctx context.Context, cid string) ([]byte, error) {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(cid),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("%w: key %s", common.ErrNotFound, cid)
		}
		return nil, fmt.Errorf("%w: s3 get %s: %v", common.ErrStorageUnavailable, cid, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3 object body: %w", err)
	}

	return data, nil
}
