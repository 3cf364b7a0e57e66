package parquet

import (
	"bytes"
	"testing"

	"github.com/parquet-go/parquet-go"
)

type unitRow struct {
	ID        string   `parquet:"id"`
	Text      string   `parquet:"text"`
	EntityIDs []string `parquet:"entity_ids,list"`
	Weight    float64  `parquet:"weight"`
}

func writeRows(t *testing.T, rows []unitRow) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := parquet.NewGenericWriter[unitRow](&buf)
	if _, err := writer.Write(rows); err != nil {
		t.Fatalf("failed to write parquet rows: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close parquet writer: %v", err)
	}
	return buf.Bytes()
}

func TestDecode_RoundTrip(t *testing.T) {
	data := writeRows(t, []unitRow{
		{ID: "t1", Text: "Heat the olive oil.", EntityIDs: []string{"e1", "e2"}, Weight: 2.5},
		{ID: "t2", Text: "Plain chunk."},
	})

	records, err := Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first["id"] != "t1" {
		t.Fatalf("expected id t1, got %v", first["id"])
	}
	if first["weight"] != 2.5 {
		t.Fatalf("expected weight 2.5, got %v", first["weight"])
	}
	list, ok := first["entity_ids"].([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("expected entity_ids list of 2, got %v", first["entity_ids"])
	}
	if list[0] != "e1" || list[1] != "e2" {
		t.Fatalf("list order lost: %v", list)
	}

	second := records[1]
	if second["id"] != "t2" {
		t.Fatalf("expected id t2, got %v", second["id"])
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := Decode([]byte("definitely not parquet")); err == nil {
		t.Fatal("expected error for invalid data")
	}
}
