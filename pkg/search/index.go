package search

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/graphlens/lens/pkg/graph"
)

// Score buckets, highest first: exact label match beats a partial label
// match beats a metadata-only match.
const (
	scoreExactLabel   = 3
	scorePartialLabel = 2
	scoreMetadata     = 1
)

// Match is one ranked search hit.
type Match struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Kind  string `json:"kind"`
	Score int    `json:"score"`
}

type entry struct {
	id        string
	label     string
	kind      string
	normLabel string
	labelToks map[string]struct{}
}

// Index maps normalized tokens from node labels and metadata to node ids.
// It is built once per load and read-only afterwards.
type Index struct {
	labelTokens map[string]map[string]struct{}
	metaTokens  map[string]map[string]struct{}
	entries     map[string]*entry
	order       []string
}

// NewIndex tokenizes every node's label and metadata values and indexes
// the node id under each token.
func NewIndex(g *graph.Graph) *Index {
	ix := &Index{
		labelTokens: make(map[string]map[string]struct{}),
		metaTokens:  make(map[string]map[string]struct{}),
		entries:     make(map[string]*entry, g.NodeCount()),
		order:       make([]string, 0, g.NodeCount()),
	}

	for _, node := range g.Nodes {
		labelToks := Tokenize(node.Label)
		e := &entry{
			id:        node.ID,
			label:     node.Label,
			kind:      node.Kind,
			normLabel: strings.Join(labelToks, " "),
			labelToks: make(map[string]struct{}, len(labelToks)),
		}
		for _, tok := range labelToks {
			e.labelToks[tok] = struct{}{}
			insert(ix.labelTokens, tok, node.ID)
		}
		for _, value := range node.Metadata {
			for _, tok := range tokenizeValue(value) {
				insert(ix.metaTokens, tok, node.ID)
			}
		}
		ix.entries[node.ID] = e
		ix.order = append(ix.order, node.ID)
	}
	return ix
}

// Search returns the nodes matching every token of the query, ranked.
// An empty or whitespace-only query matches nothing.
func (ix *Index) Search(query string) []Match {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return nil
	}

	var surviving map[string]struct{}
	for _, tok := range tokens {
		candidates := make(map[string]struct{})
		ix.collect(ix.labelTokens, tok, candidates)
		ix.collect(ix.metaTokens, tok, candidates)
		if surviving == nil {
			surviving = candidates
			continue
		}
		for id := range surviving {
			if _, ok := candidates[id]; !ok {
				delete(surviving, id)
			}
		}
		if len(surviving) == 0 {
			return nil
		}
	}

	normQuery := strings.Join(tokens, " ")
	matches := make([]Match, 0, len(surviving))
	for _, id := range ix.order {
		if _, ok := surviving[id]; !ok {
			continue
		}
		e := ix.entries[id]
		matches = append(matches, Match{
			ID:    e.id,
			Label: e.label,
			Kind:  e.kind,
			Score: e.score(tokens, normQuery),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if matches[i].Label != matches[j].Label {
			return matches[i].Label < matches[j].Label
		}
		return matches[i].ID < matches[j].ID
	})
	return matches
}

func (e *entry) score(tokens []string, normQuery string) int {
	if e.normLabel != "" && e.normLabel == normQuery {
		return scoreExactLabel
	}
	for _, tok := range tokens {
		if _, ok := e.labelToks[tok]; ok {
			return scorePartialLabel
		}
		for labelTok := range e.labelToks {
			if strings.HasPrefix(labelTok, tok) {
				return scorePartialLabel
			}
		}
	}
	return scoreMetadata
}

// collect adds every node id indexed under the token, or under any token
// the query token is a prefix of. Prefix matching is what makes partial
// lookups from the search box work.
func (ix *Index) collect(index map[string]map[string]struct{}, tok string, out map[string]struct{}) {
	if ids, ok := index[tok]; ok {
		for id := range ids {
			out[id] = struct{}{}
		}
	}
	for indexed, ids := range index {
		if len(indexed) > len(tok) && strings.HasPrefix(indexed, tok) {
			for id := range ids {
				out[id] = struct{}{}
			}
		}
	}
}

func insert(index map[string]map[string]struct{}, tok, id string) {
	ids, ok := index[tok]
	if !ok {
		ids = make(map[string]struct{})
		index[tok] = ids
	}
	ids[id] = struct{}{}
}

// Tokenize lowercases the input and splits on anything that is not a
// letter or digit.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func tokenizeValue(value any) []string {
	switch v := value.(type) {
	case string:
		return Tokenize(v)
	case []string:
		var toks []string
		for _, s := range v {
			toks = append(toks, Tokenize(s)...)
		}
		return toks
	case []any:
		var toks []string
		for _, item := range v {
			toks = append(toks, tokenizeValue(item)...)
		}
		return toks
	case float64:
		return Tokenize(strconv.FormatFloat(v, 'f', -1, 64))
	case int64:
		return []string{strconv.FormatInt(v, 10)}
	case bool:
		return []string{strconv.FormatBool(v)}
	default:
		return nil
	}
}
