package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	apperrors "github.com/lucasbecker/upload-ai/errors"
)

// SpacesConfig targets any S3-compatible object store such as DigitalOcean
// Spaces.
type SpacesConfig struct {
	AccessKey string
	SecretKey string
	Region    string
	Endpoint  string
	Bucket    string
}

// SpacesStore keeps artifacts in an S3-compatible bucket. The location it
// returns is the object key.
type SpacesStore struct {
	client *s3.Client
	bucket string
}

func NewSpacesStore(cfg SpacesConfig) (*SpacesStore, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{URL: cfg.Endpoint}, nil
		})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}

	return &SpacesStore{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
	}, nil
}

func (s *SpacesStore) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	const op = "SpacesStore.Save"

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return "", apperrors.Storage(op, err, "failed to upload artifact to bucket")
	}

	return key, nil
}

func (s *SpacesStore) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	const op = "SpacesStore.Open"

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(location),
	})
	if err != nil {
		return nil, apperrors.Storage(op, err, "failed to fetch artifact from bucket")
	}

	return result.Body, nil
}

func (s *SpacesStore) Remove(ctx context.Context, location string) error {
	const op = "SpacesStore.Remove"

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(location),
	})
	if err != nil {
		return apperrors.Storage(op, err, "failed to delete artifact from bucket")
	}
	return nil
}
