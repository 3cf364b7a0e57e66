package search

import (
	"reflect"
	"testing"

	"github.com/graphlens/lens/pkg/artifact"
	"github.com/graphlens/lens/pkg/graph"
)

func testIndex(t *testing.T) *Index {
	t.Helper()

	set := &artifact.Set{}
	set.AddRecords(artifact.TypeDocuments, []artifact.Record{
		{"id": "d1", "title": "Pasta Recipes", "text": "A collection of pasta dishes."},
	})
	set.AddRecords(artifact.TypeTextUnits, []artifact.Record{
		{"id": "t1", "text": "Heat the olive oil in a large pan."},
	})
	set.AddRecords(artifact.TypeEntities, []artifact.Record{
		{"id": "e1", "name": "olive oil", "type": "INGREDIENT", "description": "Cold pressed oil used for frying."},
		{"id": "e2", "name": "saffron", "type": "INGREDIENT", "description": "An expensive spice."},
	})

	g, _ := graph.Build(set)
	return NewIndex(g)
}

func ids(matches []Match) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.ID)
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"lowercases", "Olive OIL", []string{"olive", "oil"}},
		{"splits punctuation", "pasta, sauce; oil!", []string{"pasta", "sauce", "oil"}},
		{"keeps digits", "unit 42b", []string{"unit", "42b"}},
		{"empty", "   \t ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSearch_UniqueLabelToken(t *testing.T) {
	ix := testIndex(t)

	matches := ix.Search("saffron")
	if len(matches) != 1 {
		t.Fatalf("expected exactly 1 match, got %d: %v", len(matches), ids(matches))
	}
	if matches[0].ID != "e2" {
		t.Fatalf("expected e2, got %q", matches[0].ID)
	}
	if matches[0].Score != scoreExactLabel {
		t.Fatalf("expected exact label score %d, got %d", scoreExactLabel, matches[0].Score)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	ix := testIndex(t)

	for _, query := range []string{"", "   ", "\t\n", "?!"} {
		if matches := ix.Search(query); len(matches) != 0 {
			t.Fatalf("query %q: expected empty result, got %v", query, ids(matches))
		}
	}
}

func TestSearch_AllTokensMustMatch(t *testing.T) {
	ix := testIndex(t)

	matches := ix.Search("olive oil")
	for _, m := range matches {
		if m.ID == "e2" {
			t.Fatal("saffron must not match 'olive oil'")
		}
	}
	if len(matches) == 0 {
		t.Fatal("expected matches for 'olive oil'")
	}

	if matches := ix.Search("olive saffron"); len(matches) != 0 {
		t.Fatalf("no node carries both tokens, got %v", ids(matches))
	}
}

func TestSearch_Ranking(t *testing.T) {
	ix := testIndex(t)

	matches := ix.Search("olive oil")
	if len(matches) < 2 {
		t.Fatalf("expected at least 2 matches, got %d", len(matches))
	}
	// The entity labelled exactly "olive oil" outranks the chunk that only
	// mentions it.
	if matches[0].ID != "e1" {
		t.Fatalf("expected e1 first, got %q", matches[0].ID)
	}
	if matches[0].Score != scoreExactLabel {
		t.Fatalf("expected exact label score, got %d", matches[0].Score)
	}
	for _, m := range matches[1:] {
		if m.Score > matches[0].Score {
			t.Fatalf("ranking violated: %v", matches)
		}
	}
}

func TestSearch_MetadataOnlyMatch(t *testing.T) {
	ix := testIndex(t)

	matches := ix.Search("spice")
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d: %v", len(matches), ids(matches))
	}
	if matches[0].ID != "e2" {
		t.Fatalf("expected e2, got %q", matches[0].ID)
	}
	if matches[0].Score != scoreMetadata {
		t.Fatalf("expected metadata score %d, got %d", scoreMetadata, matches[0].Score)
	}
}

func TestSearch_PrefixMatch(t *testing.T) {
	ix := testIndex(t)

	matches := ix.Search("saff")
	if len(matches) != 1 || matches[0].ID != "e2" {
		t.Fatalf("expected prefix match on e2, got %v", ids(matches))
	}
}
