package session

import (
	"context"
	"testing"

	"github.com/graphlens/lens/pkg/artifact"
)

var pastaFiles = []artifact.File{
	{Name: "documents.csv", Data: []byte("id,title\nd1,Pasta\n")},
	{Name: "entities.csv", Data: []byte("id,title,type\ne1,olive oil,INGREDIENT\n")},
}

func TestStore_LoadPublishesSnapshot(t *testing.T) {
	store := NewStore()

	if store.Current() != nil {
		t.Fatal("expected nil snapshot before first load")
	}

	snapshot, err := store.Load(context.Background(), pastaFiles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot.ID == "" {
		t.Fatal("expected a load id")
	}
	if snapshot.Graph.NodeCount() != 2 {
		t.Fatalf("expected 2 nodes, got %d", snapshot.Graph.NodeCount())
	}
	if store.Current() != snapshot {
		t.Fatal("current snapshot must be the published one")
	}
}

func TestStore_ReplaceOnReload(t *testing.T) {
	store := NewStore()

	first, err := store.Load(context.Background(), pastaFiles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	smaller := []artifact.File{
		{Name: "documents.csv", Data: []byte("id,title\nd9,Bread\n")},
	}
	second, err := store.Load(context.Background(), smaller)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second.ID == first.ID {
		t.Fatal("reload must mint a new load id")
	}
	current := store.Current()
	if current != second {
		t.Fatal("later load must replace the earlier snapshot")
	}
	if current.Graph.NodeCount() != 1 {
		t.Fatalf("expected replaced graph with 1 node, got %d", current.Graph.NodeCount())
	}
	if _, ok := current.Graph.Node("d1"); ok {
		t.Fatal("old nodes must not leak into the new snapshot")
	}
}

func TestStore_LoadCarriesDiagnostics(t *testing.T) {
	store := NewStore()

	files := append([]artifact.File{
		{Name: "broken.parquet", Data: []byte("garbage")},
	}, pastaFiles...)

	snapshot, err := store.Load(context.Background(), files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats := snapshot.Stats()
	if stats.DecodeErrors != 1 {
		t.Fatalf("expected 1 decode error in stats, got %d", stats.DecodeErrors)
	}
	if stats.Nodes != 2 {
		t.Fatalf("expected sibling files to load, got %d nodes", stats.Nodes)
	}
}

func TestStore_LoadCanceledContext(t *testing.T) {
	store := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Load(ctx, pastaFiles); err == nil {
		t.Fatal("expected error for canceled context")
	}
	if store.Current() != nil {
		t.Fatal("canceled load must not publish a snapshot")
	}
}

func TestStore_Clear(t *testing.T) {
	store := NewStore()
	if _, err := store.Load(context.Background(), pastaFiles); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.Clear()
	if store.Current() != nil {
		t.Fatal("expected nil snapshot after clear")
	}
}
