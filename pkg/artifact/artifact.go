package artifact

import (
	"fmt"
	"path"
	"strings"
)

// Type identifies one artifact table emitted by the GraphRAG pipeline.
type Type string

const (
	TypeDocuments        Type = "documents"
	TypeTextUnits        Type = "text_units"
	TypeEntities         Type = "entities"
	TypeRelationships    Type = "relationships"
	TypeCommunities      Type = "communities"
	TypeCommunityReports Type = "community_reports"
	TypeCovariates       Type = "covariates"
)

// Types lists all known artifact types in the order they are assembled
// into the graph.
var Types = []Type{
	TypeDocuments,
	TypeTextUnits,
	TypeCommunities,
	TypeCommunityReports,
	TypeCovariates,
	TypeEntities,
	TypeRelationships,
}

// File is one uploaded or fetched artifact file, held fully in memory.
// The pipeline output is small enough that streaming decode is not worth it.
type File struct {
	Name string
	Data []byte
}

// Format is the on-disk encoding of an artifact file.
type Format string

const (
	FormatParquet Format = "parquet"
	FormatCSV     Format = "csv"
)

// DecodeError reports a single artifact file that could not be decoded.
// It is non-fatal: sibling files still load.
type DecodeError struct {
	File  string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode artifact %q: %v", e.File, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// DetectType resolves an artifact file name to its table type and format.
// Names follow the pipeline convention: the base name (minus extension) is
// the table name, optionally prefixed with "create_final_" by older
// GraphRAG releases.
func DetectType(name string) (Type, Format, error) {
	base := path.Base(name)
	ext := strings.ToLower(path.Ext(base))

	var format Format
	switch ext {
	case ".parquet":
		format = FormatParquet
	case ".csv":
		format = FormatCSV
	default:
		return "", "", fmt.Errorf("unsupported artifact format %q", ext)
	}

	table := strings.TrimSuffix(base, ext)
	table = strings.TrimPrefix(table, "create_final_")

	for _, t := range Types {
		if table == string(t) {
			return t, format, nil
		}
	}
	return "", format, fmt.Errorf("unknown artifact table %q", table)
}
