package graph

// Kinds of non-entity nodes. Entity nodes carry their domain-specific type
// string as kind instead.
const (
	KindDocument  = "RAW_DOCUMENT"
	KindChunk     = "CHUNK"
	KindCommunity = "COMMUNITY"
	KindFinding   = "FINDING"
	KindCovariate = "COVARIATE"

	// KindEntity is the fallback for entity rows without a type field.
	KindEntity = "ENTITY"
)

// EdgeKind is the relationship type of a directed edge.
type EdgeKind string

const (
	EdgeRelated      EdgeKind = "RELATED"
	EdgePartOf       EdgeKind = "PART_OF"
	EdgeHasEntity    EdgeKind = "HAS_ENTITY"
	EdgeHasCovariate EdgeKind = "HAS_COVARIATE"
	EdgeHasFinding   EdgeKind = "HAS_FINDING"
	EdgeInCommunity  EdgeKind = "IN_COMMUNITY"
)

// Node is one vertex of the assembled graph.
type Node struct {
	ID       string         `json:"id"`
	Kind     string         `json:"kind"`
	Label    string         `json:"label"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Edge is a directed typed relationship between two node ids. Both
// endpoints are guaranteed to exist in the node set; edges that would
// dangle are dropped during the build.
type Edge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Kind   EdgeKind `json:"kind"`
	Weight float64  `json:"weight,omitempty"`
}

// Graph is the read-only result of one build. Node order follows the
// artifact assembly order, which makes repeated builds of the same set
// identical.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`

	byID     map[string]int
	incident map[string][]int
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	i, ok := g.byID[id]
	if !ok {
		return nil, false
	}
	return &g.Nodes[i], true
}

// Incident returns all edges touching the given node id, outgoing and
// incoming, in insertion order.
func (g *Graph) Incident(id string) []Edge {
	indices := g.incident[id]
	edges := make([]Edge, 0, len(indices))
	for _, i := range indices {
		edges = append(edges, g.Edges[i])
	}
	return edges
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.Edges)
}
