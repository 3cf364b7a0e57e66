package storage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/singleflight"

	"github.com/graphlens/lens/pkg/artifact"
)

// ArtifactFetcher deduplicates concurrent fetches of the same artifact
// prefix: overlapping reload requests share one in-flight S3 download.
type ArtifactFetcher struct {
	client *s3.Client
	group  singleflight.Group
}

// NewArtifactFetcher wraps an S3 client. The client may be nil when S3 is
// not configured; Fetch then returns no files.
func NewArtifactFetcher(client *s3.Client) *ArtifactFetcher {
	return &ArtifactFetcher{client: client}
}

// Configured reports whether an S3 client is available.
func (f *ArtifactFetcher) Configured() bool {
	return f != nil && f.client != nil
}

// Fetch downloads the artifact files under the given prefix, collapsing
// concurrent calls for the same prefix into a single download.
func (f *ArtifactFetcher) Fetch(ctx context.Context, prefix string) ([]artifact.File, error) {
	result, err, _ := f.group.Do(prefix, func() (any, error) {
		return FetchArtifacts(ctx, f.client, prefix)
	})
	if err != nil {
		return nil, err
	}
	return result.([]artifact.File), nil
}
