package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/graphlens/lens/pkg/artifact/csv"
	"github.com/graphlens/lens/pkg/artifact/parquet"
)

const maxParallelDecodes = 4

type decodedFile struct {
	artifactType Type
	records      []Record
}

// LoadSet decodes a named set of artifact files into typed rows. Files
// decode in parallel; a file that fails to decode yields a DecodeError and
// does not block its siblings. Assembly order is deterministic regardless
// of decode completion order.
func LoadSet(ctx context.Context, files []File) (*Set, []*DecodeError) {
	results := make([]*decodedFile, len(files))

	var mu sync.Mutex
	var decodeErrs []*DecodeError

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(maxParallelDecodes)

	for i, file := range files {
		i, file := i, file
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			artifactType, format, err := DetectType(file.Name)
			if err != nil {
				mu.Lock()
				decodeErrs = append(decodeErrs, &DecodeError{File: file.Name, Cause: err})
				mu.Unlock()
				return nil
			}

			var raw []map[string]any
			switch format {
			case FormatParquet:
				raw, err = parquet.Decode(file.Data)
			case FormatCSV:
				raw, err = csv.Decode(file.Data)
			}
			if err != nil {
				mu.Lock()
				decodeErrs = append(decodeErrs, &DecodeError{File: file.Name, Cause: err})
				mu.Unlock()
				return nil
			}

			records := make([]Record, len(raw))
			for j, row := range raw {
				records[j] = Record(row)
			}
			results[i] = &decodedFile{artifactType: artifactType, records: records}
			return nil
		})
	}

	// Decode failures are reported per file, never returned.
	_ = eg.Wait()

	set := &Set{}
	for _, artifactType := range Types {
		for _, result := range results {
			if result != nil && result.artifactType == artifactType {
				set.AddRecords(artifactType, result.records)
			}
		}
	}
	return set, decodeErrs
}

// ReadDir collects the artifact files of a pipeline output directory.
// Files that are not known artifact tables (pipeline stats, vector store
// directories) are ignored.
func ReadDir(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact directory: %w", err)
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, _, err := DetectType(entry.Name()); err != nil {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read artifact file %q: %w", entry.Name(), err)
		}
		files = append(files, File{Name: entry.Name(), Data: data})
	}
	return files, nil
}
