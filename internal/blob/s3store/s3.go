// Package s3store writes visualization documents to an S3 bucket configured for
// static website hosting.
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"ynabviz/internal/blob"
)

// PutObjectAPI is the subset of the S3 client used by Store.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Store struct {
	api        PutObjectAPI
	bucket     string
	publicRead bool
}

var _ blob.ObjectWriter = (*Store)(nil)

// Option configures the store.
type Option func(*Store)

// WithPublicRead sets the public-read canned ACL on every object.
// Buckets with object ownership enforced reject ACLs; leave it off there.
func WithPublicRead(enabled bool) Option {
	return func(s *Store) {
		s.publicRead = enabled
	}
}

func New(api PutObjectAPI, bucket string, opts ...Option) *Store {
	s := &Store{api: api, bucket: bucket}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromEnv builds an S3 client from the default AWS credential chain
// (environment, shared config, Lambda execution role).
func NewFromEnv(ctx context.Context, region, bucket string, opts ...Option) (*Store, error) {
	if bucket == "" {
		return nil, errors.New("missing bucket name")
	}
	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	slog.InfoContext(ctx, "S3 client created", "bucket", bucket, "region", cfg.Region)
	return New(s3.NewFromConfig(cfg), bucket, opts...), nil
}

func (s *Store) Put(ctx context.Context, obj blob.Object) error {
	if s.api == nil {
		return errors.New("s3 client not initialized")
	}
	in := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(obj.Key),
		Body:        bytes.NewReader(obj.Body),
		ContentType: aws.String(obj.ContentType),
	}
	if s.publicRead {
		in.ACL = types.ObjectCannedACLPublicRead
	}
	if _, err := s.api.PutObject(ctx, in); err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", s.bucket, obj.Key, err)
	}
	return nil
}

// Bucket returns the target bucket name.
func (s *Store) Bucket() string {
	return s.bucket
}
