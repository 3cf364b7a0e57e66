package graph

import (
	"fmt"

	"github.com/graphlens/lens/pkg/artifact"
)

// DanglingEdge reports an edge that was dropped because one of its
// endpoints does not exist in the node set. The offending endpoint keeps
// the raw reference from the source row.
type DanglingEdge struct {
	Kind   EdgeKind `json:"kind"`
	Source string   `json:"source"`
	Target string   `json:"target"`
}

func (w DanglingEdge) String() string {
	return fmt.Sprintf("dropped %s edge %s -> %s: missing endpoint", w.Kind, w.Source, w.Target)
}

// DuplicateNode reports a node id that appeared in more than one artifact
// row. The later row's attributes win.
type DuplicateNode struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

func (w DuplicateNode) String() string {
	return fmt.Sprintf("duplicate node id %q (%s): later row overwrote earlier", w.ID, w.Kind)
}

// Diagnostics accumulates everything the builder skipped or dropped.
// Nothing in here is fatal; the worst outcome is an empty graph that the
// diagnostics explain.
type Diagnostics struct {
	SkippedRows    []artifact.SchemaWarning `json:"skipped_rows,omitempty"`
	DanglingEdges  []DanglingEdge           `json:"dangling_edges,omitempty"`
	DuplicateNodes []DuplicateNode          `json:"duplicate_nodes,omitempty"`
}

// Empty reports whether the build produced no warnings at all.
func (d *Diagnostics) Empty() bool {
	return len(d.SkippedRows) == 0 && len(d.DanglingEdges) == 0 && len(d.DuplicateNodes) == 0
}
