package graph

import (
	"strings"
	"unicode/utf8"

	"github.com/graphlens/lens/pkg/artifact"
)

const maxLabelLength = 80

type builder struct {
	graph   *Graph
	diags   *Diagnostics
	byTitle map[string]string
}

// Build assembles a typed graph from a decoded artifact set. It never
// aborts on a bad row: rows already failed validation are carried over as
// skipped-row diagnostics, edges with missing endpoints are dropped and
// tallied, duplicate node ids resolve last-write-wins with a warning.
func Build(set *artifact.Set) (*Graph, *Diagnostics) {
	b := &builder{
		graph: &Graph{
			Nodes:    make([]Node, 0),
			Edges:    make([]Edge, 0),
			byID:     make(map[string]int),
			incident: make(map[string][]int),
		},
		diags: &Diagnostics{
			SkippedRows: set.Warnings,
		},
		byTitle: make(map[string]string),
	}

	b.addNodes(set)
	b.addEdges(set)
	return b.graph, b.diags
}

func (b *builder) addNodes(set *artifact.Set) {
	for _, doc := range set.Documents {
		b.addNode(Node{
			ID:       doc.ID,
			Kind:     KindDocument,
			Label:    firstNonEmpty(doc.Title, doc.ID),
			Metadata: doc.Fields,
		})
	}
	for _, unit := range set.TextUnits {
		b.addNode(Node{
			ID:       unit.ID,
			Kind:     KindChunk,
			Label:    firstNonEmpty(truncateLabel(unit.Text), unit.ID),
			Metadata: unit.Fields,
		})
	}
	for _, community := range set.Communities {
		b.addNode(Node{
			ID:       community.ID,
			Kind:     KindCommunity,
			Label:    firstNonEmpty(community.Title, community.ID),
			Metadata: community.Fields,
		})
	}
	for _, finding := range set.Findings {
		b.addNode(Node{
			ID:       finding.ID,
			Kind:     KindFinding,
			Label:    firstNonEmpty(finding.Title, truncateLabel(finding.Summary), finding.ID),
			Metadata: finding.Fields,
		})
	}
	for _, covariate := range set.Covariates {
		b.addNode(Node{
			ID:       covariate.ID,
			Kind:     KindCovariate,
			Label:    firstNonEmpty(truncateLabel(covariate.Description), covariate.Type, covariate.ID),
			Metadata: covariate.Fields,
		})
	}
	for _, entity := range set.Entities {
		kind := strings.ToUpper(strings.TrimSpace(entity.Type))
		if kind == "" {
			kind = KindEntity
		}
		b.addNode(Node{
			ID:       entity.ID,
			Kind:     kind,
			Label:    firstNonEmpty(entity.Title, entity.ID),
			Metadata: entity.Fields,
		})
		if entity.Title != "" {
			b.byTitle[strings.ToUpper(entity.Title)] = entity.ID
		}
	}
}

func (b *builder) addEdges(set *artifact.Set) {
	for _, rel := range set.Relationships {
		source := b.resolveEntity(rel.Source)
		target := b.resolveEntity(rel.Target)
		b.addEdge(Edge{Source: source, Target: target, Kind: EdgeRelated, Weight: rel.Weight})
	}
	for _, unit := range set.TextUnits {
		for _, docID := range unit.DocumentIDs {
			b.addEdge(Edge{Source: unit.ID, Target: docID, Kind: EdgePartOf})
		}
		for _, entityID := range unit.EntityIDs {
			b.addEdge(Edge{Source: unit.ID, Target: entityID, Kind: EdgeHasEntity})
		}
		for _, covariateID := range unit.CovariateIDs {
			b.addEdge(Edge{Source: unit.ID, Target: covariateID, Kind: EdgeHasCovariate})
		}
	}
	for _, community := range set.Communities {
		for _, findingID := range community.FindingIDs {
			b.addEdge(Edge{Source: community.ID, Target: findingID, Kind: EdgeHasFinding})
		}
	}
	for _, entity := range set.Entities {
		for _, communityID := range entity.CommunityIDs {
			b.addEdge(Edge{Source: entity.ID, Target: communityID, Kind: EdgeInCommunity})
		}
	}
}

func (b *builder) addNode(node Node) {
	if i, ok := b.graph.byID[node.ID]; ok {
		b.graph.Nodes[i] = node
		b.diags.DuplicateNodes = append(b.diags.DuplicateNodes, DuplicateNode{ID: node.ID, Kind: node.Kind})
		return
	}
	b.graph.byID[node.ID] = len(b.graph.Nodes)
	b.graph.Nodes = append(b.graph.Nodes, node)
}

func (b *builder) addEdge(edge Edge) {
	_, sourceOK := b.graph.byID[edge.Source]
	_, targetOK := b.graph.byID[edge.Target]
	if !sourceOK || !targetOK {
		b.diags.DanglingEdges = append(b.diags.DanglingEdges, DanglingEdge{
			Kind:   edge.Kind,
			Source: edge.Source,
			Target: edge.Target,
		})
		return
	}
	index := len(b.graph.Edges)
	b.graph.Edges = append(b.graph.Edges, edge)
	b.graph.incident[edge.Source] = append(b.graph.incident[edge.Source], index)
	if edge.Target != edge.Source {
		b.graph.incident[edge.Target] = append(b.graph.incident[edge.Target], index)
	}
}

// resolveEntity maps a relationship endpoint to a node id. Newer pipelines
// reference entities by id, older ones by title.
func (b *builder) resolveEntity(ref string) string {
	if _, ok := b.graph.byID[ref]; ok {
		return ref
	}
	if id, ok := b.byTitle[strings.ToUpper(ref)]; ok {
		return id
	}
	return ref
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncateLabel(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= maxLabelLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLabelLength]) + "…"
}
