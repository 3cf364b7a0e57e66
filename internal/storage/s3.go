package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/graphlens/lens/internal/util"
	"github.com/graphlens/lens/pkg/artifact"
)

// NewS3Client builds an S3 client from AWS_* environment variables.
// Returns nil when no endpoint or region is configured; the S3 artifact
// source is optional.
func NewS3Client(ctx context.Context) *s3.Client {
	region := util.GetEnv("AWS_REGION")
	endpoint := util.GetEnv("AWS_ENDPOINT")
	if region == "" && endpoint == "" {
		return nil
	}
	accessKey := util.GetEnv("AWS_ACCESS_KEY")
	secretKey := util.GetEnv("AWS_SECRET_KEY")

	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(region),
		config.WithBaseEndpoint(endpoint),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"",
		)),
	)
	if err != nil {
		return nil
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
}

// FetchArtifacts downloads every artifact file under the given key prefix.
// Objects that are not known artifact tables are skipped.
func FetchArtifacts(ctx context.Context, client *s3.Client, prefix string) ([]artifact.File, error) {
	bucket := util.GetEnv("AWS_BUCKET")

	var files []artifact.File
	paginator := s3.NewListObjectsV2Paginator(client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list artifacts under %q: %w", prefix, err)
		}
		for _, object := range page.Contents {
			key := aws.ToString(object.Key)
			if _, _, err := artifact.DetectType(key); err != nil {
				continue
			}
			data, err := GetFile(ctx, client, key)
			if err != nil {
				return nil, err
			}
			files = append(files, artifact.File{Name: path.Base(key), Data: data})
		}
	}
	return files, nil
}

// GetFile downloads one object from the configured bucket, retrying
// transient failures.
func GetFile(ctx context.Context, client *s3.Client, key string) ([]byte, error) {
	bucket := util.GetEnv("AWS_BUCKET")
	result, err := util.RetryWithContext(ctx, 3, func(ctx context.Context) (*s3.GetObjectOutput, error) {
		return client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get file from S3: %w", err)
	}
	defer result.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, result.Body); err != nil {
		return nil, fmt.Errorf("failed to read file contents: %w", err)
	}
	return buf.Bytes(), nil
}
