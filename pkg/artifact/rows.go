package artifact

import "fmt"

// SchemaWarning reports a row that was skipped during typing because a
// required field was missing. Skipped rows are tallied, never fatal.
type SchemaWarning struct {
	Artifact Type   `json:"artifact"`
	Row      int    `json:"row"`
	Field    string `json:"field"`
}

func (w SchemaWarning) String() string {
	return fmt.Sprintf("%s row %d: missing required field %q", w.Artifact, w.Row, w.Field)
}

// Document is one row of the documents artifact.
type Document struct {
	ID     string
	Title  string
	Text   string
	Fields Record
}

// TextUnit is one row of the text_units artifact: a chunk of source text
// with references into its parent document and extracted entities/claims.
type TextUnit struct {
	ID           string
	Text         string
	DocumentIDs  []string
	EntityIDs    []string
	CovariateIDs []string
	Fields       Record
}

// Entity is one row of the entities artifact. Type varies by domain and
// becomes the node kind.
type Entity struct {
	ID           string
	Title        string
	Type         string
	Description  string
	CommunityIDs []string
	Fields       Record
}

// Relationship is one row of the relationships artifact. Source and Target
// reference entities, by id or by title depending on pipeline version.
type Relationship struct {
	ID          string
	Source      string
	Target      string
	Description string
	Weight      float64
	Fields      Record
}

// Community is one row of the communities artifact.
type Community struct {
	ID         string
	Title      string
	FindingIDs []string
	Fields     Record
}

// Finding is one row of the community_reports artifact: a summarized
// insight attached to a community.
type Finding struct {
	ID          string
	CommunityID string
	Title       string
	Summary     string
	Fields      Record
}

// Covariate is one row of the covariates artifact: an extracted claim
// associated with a text unit.
type Covariate struct {
	ID          string
	SubjectID   string
	Type        string
	Description string
	Fields      Record
}

// Set holds the typed rows of one decoded artifact set, plus the warnings
// for rows that failed required-field validation. Rows live only until the
// graph is built from them.
type Set struct {
	Documents     []Document
	TextUnits     []TextUnit
	Entities      []Entity
	Relationships []Relationship
	Communities   []Community
	Findings      []Finding
	Covariates    []Covariate

	Warnings []SchemaWarning
}

func (s *Set) skip(t Type, row int, field string) {
	s.Warnings = append(s.Warnings, SchemaWarning{Artifact: t, Row: row, Field: field})
}

// AddRecords types the raw records of one artifact table into the set.
// Rows missing their identifier (or, for relationships, an endpoint) are
// skipped with a warning.
func (s *Set) AddRecords(t Type, records []Record) {
	switch t {
	case TypeDocuments:
		for i, rec := range records {
			id, ok := rec.String("id")
			if !ok {
				s.skip(t, i, "id")
				continue
			}
			title, _ := rec.String("title", "name")
			text, _ := rec.String("text", "raw_content", "content")
			s.Documents = append(s.Documents, Document{ID: id, Title: title, Text: text, Fields: rec})
		}
	case TypeTextUnits:
		for i, rec := range records {
			id, ok := rec.String("id")
			if !ok {
				s.skip(t, i, "id")
				continue
			}
			text, _ := rec.String("text", "chunk")
			s.TextUnits = append(s.TextUnits, TextUnit{
				ID:           id,
				Text:         text,
				DocumentIDs:  rec.StringList("document_ids", "document_id"),
				EntityIDs:    rec.StringList("entity_ids"),
				CovariateIDs: rec.StringList("covariate_ids"),
				Fields:       rec,
			})
		}
	case TypeEntities:
		for i, rec := range records {
			id, ok := rec.String("id")
			if !ok {
				s.skip(t, i, "id")
				continue
			}
			title, _ := rec.String("title", "name")
			entityType, _ := rec.String("type")
			description, _ := rec.String("description")
			s.Entities = append(s.Entities, Entity{
				ID:           id,
				Title:        title,
				Type:         entityType,
				Description:  description,
				CommunityIDs: rec.StringList("community_ids", "community"),
				Fields:       rec,
			})
		}
	case TypeRelationships:
		for i, rec := range records {
			source, okSource := rec.String("source", "source_id")
			if !okSource {
				s.skip(t, i, "source")
				continue
			}
			target, okTarget := rec.String("target", "target_id")
			if !okTarget {
				s.skip(t, i, "target")
				continue
			}
			id, _ := rec.String("id")
			description, _ := rec.String("description")
			weight, _ := rec.Float("weight", "rank", "strength")
			s.Relationships = append(s.Relationships, Relationship{
				ID:          id,
				Source:      source,
				Target:      target,
				Description: description,
				Weight:      weight,
				Fields:      rec,
			})
		}
	case TypeCommunities:
		for i, rec := range records {
			id, ok := rec.String("id")
			if !ok {
				s.skip(t, i, "id")
				continue
			}
			title, _ := rec.String("title")
			s.Communities = append(s.Communities, Community{
				ID:         id,
				Title:      title,
				FindingIDs: rec.StringList("finding_ids"),
				Fields:     rec,
			})
		}
	case TypeCommunityReports:
		for i, rec := range records {
			id, ok := rec.String("id")
			if !ok {
				s.skip(t, i, "id")
				continue
			}
			communityID, _ := rec.String("community_id", "community")
			title, _ := rec.String("title")
			summary, _ := rec.String("summary")
			s.Findings = append(s.Findings, Finding{
				ID:          id,
				CommunityID: communityID,
				Title:       title,
				Summary:     summary,
				Fields:      rec,
			})
		}
	case TypeCovariates:
		for i, rec := range records {
			id, ok := rec.String("id")
			if !ok {
				s.skip(t, i, "id")
				continue
			}
			subjectID, _ := rec.String("subject_id")
			covariateType, _ := rec.String("covariate_type", "type")
			description, _ := rec.String("description")
			s.Covariates = append(s.Covariates, Covariate{
				ID:          id,
				SubjectID:   subjectID,
				Type:        covariateType,
				Description: description,
				Fields:      rec,
			})
		}
	}
}
