package generate

import (
	"maps"
	"slices"

	"github.com/ohler55/ojg/alt"
	"github.com/ohler55/ojg/jp"

	"github.com/getmockd/pactcore/pkg/contract"
	"github.com/getmockd/pactcore/pkg/metrics"
	"github.com/getmockd/pactcore/pkg/pathexp"
)

// JSONHandler applies generators to a decoded JSON document made of
// map[string]any, []any and scalar values.
type JSONHandler struct {
	Value  any
	engine *Engine
}

// NewJSONHandler returns a handler over value. A nil engine uses Default.
func NewJSONHandler(e *Engine, value any) *JSONHandler {
	if e == nil {
		e = Default()
	}
	return &JSONHandler{Value: value, engine: e}
}

// segment is one step of a resolved location: an object key or an array
// index.
type segment struct {
	key   string
	index int
	isIdx bool
}

// treeNode is an entry of the expansion arena. Nodes refer to their parent
// by position, the root sits at position 0.
type treeNode struct {
	seg      segment
	parent   int
	depth    int
	children int
}

type arena struct {
	nodes []treeNode
}

func newArena() *arena {
	return &arena{nodes: []treeNode{{parent: -1}}}
}

func (a *arena) add(parent int, seg segment) int {
	a.nodes[parent].children++
	a.nodes = append(a.nodes, treeNode{seg: seg, parent: parent, depth: a.nodes[parent].depth + 1})
	return len(a.nodes) - 1
}

// pointer returns the segments from the root to node i.
func (a *arena) pointer(i int) []segment {
	out := make([]segment, a.nodes[i].depth)
	for ; i > 0; i = a.nodes[i].parent {
		out[a.nodes[i].depth-1] = a.nodes[i].seg
	}
	return out
}

// expand walks value along tokens, adding a node per step. Wildcards branch
// into every child; a literal step that is absent ends its branch.
func expand(tokens []pathexp.Token, a *arena, at int, value any) {
	for i, tok := range tokens {
		switch tok.Kind {
		case pathexp.Root:
			continue
		case pathexp.Field:
			obj, ok := value.(map[string]any)
			if !ok {
				return
			}
			child, ok := obj[tok.Name]
			if !ok {
				return
			}
			at = a.add(at, segment{key: tok.Name})
			value = child
		case pathexp.Index:
			list, ok := value.([]any)
			if !ok || tok.Index < 0 || tok.Index >= len(list) {
				return
			}
			at = a.add(at, segment{index: tok.Index, isIdx: true})
			value = list[tok.Index]
		case pathexp.Star:
			obj, ok := value.(map[string]any)
			if !ok {
				return
			}
			for _, k := range slices.Sorted(maps.Keys(obj)) {
				expand(tokens[i+1:], a, a.add(at, segment{key: k}), obj[k])
			}
			return
		case pathexp.StarIndex:
			list, ok := value.([]any)
			if !ok {
				return
			}
			for idx, child := range list {
				expand(tokens[i+1:], a, a.add(at, segment{index: idx, isIdx: true}), child)
			}
			return
		}
	}
}

// Resolve returns the document locations path addresses, as ojg
// expressions, in document order.
func (h *JSONHandler) Resolve(path pathexp.Expression) []jp.Expr {
	tokens := path.Tokens()
	want := 0
	for _, tok := range tokens {
		if tok.Kind != pathexp.Root {
			want++
		}
	}
	a := newArena()
	expand(tokens, a, 0, h.Value)

	var out []jp.Expr
	for i := 1; i < len(a.nodes); i++ {
		n := a.nodes[i]
		if n.children > 0 || n.depth != want {
			continue
		}
		x := jp.R()
		for _, s := range a.pointer(i) {
			if s.isIdx {
				x = x.N(s.index)
			} else {
				x = x.C(s.key)
			}
		}
		out = append(out, x)
	}
	return out
}

// ApplyKey regenerates every leaf path resolves to. A generation error
// leaves that leaf unchanged. When nothing resolves, a single token
// expression applies the generator to the whole document and any other
// expression does nothing.
func (h *JSONHandler) ApplyKey(path pathexp.Expression, g contract.Generator, ctx Context, matcher contract.VariantMatcher) {
	pointers := h.Resolve(path)
	metrics.ObservePointers(len(pointers))

	if len(pointers) == 0 {
		if path.Len() <= 1 {
			if v, err := h.engine.JSON(g, h.Value, ctx, matcher); err == nil {
				h.Value = v
			}
		}
		return
	}
	for _, x := range pointers {
		current := x.First(h.Value)
		v, err := h.engine.JSON(g, current, ctx, matcher)
		if err != nil {
			continue
		}
		if err := x.SetOne(h.Value, v); err != nil {
			h.engine.log.Debug("could not write generated value", "path", x.String(), "error", err)
		}
	}
}

// ProcessBody applies every generator in gens, in path order.
func (h *JSONHandler) ProcessBody(gens []contract.PathGenerator, ctx Context, matcher contract.VariantMatcher) {
	for _, pg := range gens {
		h.ApplyKey(pg.Path, pg.Generator, ctx, matcher)
	}
}

// arrayContains regenerates the array elements that match one of the
// generator's variants, using that variant's own generators.
func (e *Engine) arrayContains(g contract.Generator, current any, ctx Context, matcher contract.VariantMatcher) (any, error) {
	list, ok := current.([]any)
	if !ok {
		return nil, ErrNotAList
	}
	if matcher == nil {
		matcher = contract.NoopVariantMatcher{}
	}
	out := make([]any, len(list))
	copy(out, list)
	for i, elem := range list {
		variant, found := matcher.FindMatchingVariant(elem, g.Variants)
		if !found {
			continue
		}
		e.log.Debug("generating values for array contains variant", "variant", variant.Index, "element", i)
		sub := NewJSONHandler(e, alt.Dup(elem))
		for _, path := range variant.GeneratorPaths() {
			sub.ApplyKey(path, variant.Generators[path.Key()], ctx, matcher)
		}
		out[i] = sub.Value
	}
	return out, nil
}
