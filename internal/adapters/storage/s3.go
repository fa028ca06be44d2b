package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/klauspost/compress/gzip"
)

const defaultS3Timeout = 30 * time.Second

// PutObjectAPI is the subset of *s3.Client used by S3Sink.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink mirrors documents to a bucket as gzip-compressed objects.
type S3Sink struct {
	client  PutObjectAPI
	bucket  string
	prefix  string
	timeout time.Duration
}

// NewS3Client loads the default AWS credential chain for region. SDK retries
// are disabled; a failed upload is reported once.
func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.Retryer = aws.NopRetryer{}
	}), nil
}

// NewS3Sink creates a sink writing to bucket under prefix.
func NewS3Sink(client PutObjectAPI, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix, timeout: defaultS3Timeout}
}

// Name implements Sink.
func (s *S3Sink) Name() string { return "s3" }

// Key returns the object key used for name.
func (s *S3Sink) Key(name string) string {
	return s.prefix + name + ".gz"
}

// Write gzips data and uploads it in a single PutObject call.
func (s *S3Sink) Write(ctx context.Context, name string, data []byte) (string, error) {
	body, err := Gzip(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key := s.Key(name)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:          aws.String(s.bucket),
		Key:             aws.String(key),
		Body:            bytes.NewReader(body),
		ContentLength:   aws.Int64(int64(len(body))),
		ContentType:     aws.String("application/json"),
		ContentEncoding: aws.String("gzip"),
	})
	if err != nil {
		return "", fmt.Errorf("%w: s3://%s/%s: %v", ErrWrite, s.bucket, key, err)
	}
	return "s3://" + s.bucket + "/" + key, nil
}

// Gzip compresses data at best speed.
func Gzip(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gz, err := gzip.NewWriterLevel(&buf, gzip.BestSpeed)
	if err != nil {
		return nil, err
	}
	if _, err := gz.Write(data); err != nil {
		_ = gz.Close()
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
