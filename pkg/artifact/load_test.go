package artifact

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const documentsCSV = "id,title,text\nd1,Pasta,A collection of pasta dishes.\n"

const textUnitsCSV = "id,text,document_ids,entity_ids\n" +
	"t1,Heat the olive oil.,\"[\"\"d1\"\"]\",\"[\"\"e1\"\"]\"\n"

const entitiesCSV = "id,title,type,description\ne1,olive oil,INGREDIENT,Cold pressed.\n"

func TestLoadSet_PartialSuccess(t *testing.T) {
	files := []File{
		{Name: "documents.csv", Data: []byte(documentsCSV)},
		{Name: "entities.parquet", Data: []byte("definitely not parquet")},
		{Name: "notes.txt", Data: []byte("irrelevant")},
	}

	set, decodeErrs := LoadSet(context.Background(), files)

	if len(set.Documents) != 1 {
		t.Fatalf("expected documents to decode despite sibling failures, got %d", len(set.Documents))
	}
	if len(decodeErrs) != 2 {
		t.Fatalf("expected 2 decode errors, got %d: %v", len(decodeErrs), decodeErrs)
	}
	for _, decodeErr := range decodeErrs {
		if decodeErr.File == "" || decodeErr.Cause == nil {
			t.Fatalf("decode error missing file name or cause: %+v", decodeErr)
		}
	}
}

func TestLoadSet_FullSet(t *testing.T) {
	files := []File{
		{Name: "entities.csv", Data: []byte(entitiesCSV)},
		{Name: "text_units.csv", Data: []byte(textUnitsCSV)},
		{Name: "documents.csv", Data: []byte(documentsCSV)},
	}

	set, decodeErrs := LoadSet(context.Background(), files)

	if len(decodeErrs) != 0 {
		t.Fatalf("expected no decode errors, got %v", decodeErrs)
	}
	if len(set.Documents) != 1 || len(set.TextUnits) != 1 || len(set.Entities) != 1 {
		t.Fatalf("unexpected set sizes: %d docs, %d units, %d entities",
			len(set.Documents), len(set.TextUnits), len(set.Entities))
	}

	unit := set.TextUnits[0]
	if len(unit.DocumentIDs) != 1 || unit.DocumentIDs[0] != "d1" {
		t.Fatalf("expected document_ids [d1], got %v", unit.DocumentIDs)
	}
	if len(unit.EntityIDs) != 1 || unit.EntityIDs[0] != "e1" {
		t.Fatalf("expected entity_ids [e1], got %v", unit.EntityIDs)
	}
}

func TestLoadSet_Deterministic(t *testing.T) {
	files := []File{
		{Name: "entities.csv", Data: []byte(entitiesCSV)},
		{Name: "documents.csv", Data: []byte(documentsCSV)},
	}

	first, _ := LoadSet(context.Background(), files)
	second, _ := LoadSet(context.Background(), files)

	if len(first.Documents) != len(second.Documents) || len(first.Entities) != len(second.Entities) {
		t.Fatal("repeated loads must produce identical sets")
	}
	if first.Documents[0].ID != second.Documents[0].ID {
		t.Fatal("row order differs between loads")
	}
}

func TestReadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "documents.csv", documentsCSV)
	writeFile(t, dir, "entities.csv", entitiesCSV)
	writeFile(t, dir, "stats.json", "{}")
	if err := os.Mkdir(filepath.Join(dir, "lancedb"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := ReadDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 artifact files, got %d", len(files))
	}
}

func TestReadDir_Missing(t *testing.T) {
	if _, err := ReadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
