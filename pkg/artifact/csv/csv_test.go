package csv

import "testing"

func TestDecode(t *testing.T) {
	data := []byte("id,title,text\n" +
		"d1,Pasta,\"A collection, of pasta dishes.\"\n" +
		"\n" +
		"d2,,Second document\n")

	records, err := Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	if records[0]["id"] != "d1" {
		t.Fatalf("expected id d1, got %v", records[0]["id"])
	}
	if records[0]["text"] != "A collection, of pasta dishes." {
		t.Fatalf("quoted cell mangled: %v", records[0]["text"])
	}
	if _, ok := records[1]["title"]; ok {
		t.Fatal("empty cell must not be present in the record")
	}
}

func TestDecode_Empty(t *testing.T) {
	if _, err := Decode(nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestDecode_RaggedRows(t *testing.T) {
	data := []byte("id,title\nd1,Pasta,extra cell\nd2\n")

	records, err := Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1]["id"] != "d2" {
		t.Fatalf("short row dropped: %v", records[1])
	}
}
