package generate

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/getmockd/pactcore/pkg/contract"
	"github.com/getmockd/pactcore/pkg/metrics"
	"github.com/getmockd/pactcore/pkg/pathexp"
)

// XMLHandler applies generators to an XML document. The first field of an
// expression names the root element; later fields name child elements,
// "@name" an attribute and "#text" the element text. An expression that
// ends on an element regenerates its text.
type XMLHandler struct {
	Doc    *etree.Document
	engine *Engine
}

// NewXMLHandler returns a handler over doc. A nil engine uses Default.
func NewXMLHandler(e *Engine, doc *etree.Document) *XMLHandler {
	if e == nil {
		e = Default()
	}
	return &XMLHandler{Doc: doc, engine: e}
}

// XMLLeaf is a resolved location: the text of Element, or its attribute
// Attr when set.
type XMLLeaf struct {
	Element *etree.Element
	Attr    string
}

// Value returns the current text or attribute value.
func (l XMLLeaf) Value() string {
	if l.Attr == "" {
		return l.Element.Text()
	}
	return l.Element.SelectAttrValue(l.Attr, "")
}

// Set replaces the text or attribute value.
func (l XMLLeaf) Set(v string) {
	if l.Attr == "" {
		l.Element.SetText(v)
		return
	}
	l.Element.CreateAttr(l.Attr, v)
}

// Resolve returns the text and attribute locations path addresses.
func (h *XMLHandler) Resolve(path pathexp.Expression) []XMLLeaf {
	root := h.Doc.Root()
	if root == nil {
		return nil
	}
	var (
		groups  [][]*etree.Element
		started bool
	)
	for _, tok := range path.Tokens() {
		switch tok.Kind {
		case pathexp.Root:
			continue
		case pathexp.Field:
			if name, ok := strings.CutPrefix(tok.Name, "@"); ok {
				return attrLeaves(groups, name)
			}
			if tok.Name == "#text" {
				return textLeaves(groups)
			}
			if !started {
				started = true
				if root.Tag == tok.Name || root.FullTag() == tok.Name {
					groups = [][]*etree.Element{{root}}
				}
				continue
			}
			var next [][]*etree.Element
			for _, el := range flatten(groups) {
				if kids := el.SelectElements(tok.Name); len(kids) > 0 {
					next = append(next, kids)
				}
			}
			groups = next
		case pathexp.Index:
			var next [][]*etree.Element
			for _, g := range groups {
				if tok.Index >= 0 && tok.Index < len(g) {
					next = append(next, []*etree.Element{g[tok.Index]})
				}
			}
			groups = next
		case pathexp.StarIndex:
		case pathexp.Star:
			if !started {
				started = true
				groups = [][]*etree.Element{{root}}
				continue
			}
			var next [][]*etree.Element
			for _, el := range flatten(groups) {
				if kids := el.ChildElements(); len(kids) > 0 {
					next = append(next, kids)
				}
			}
			groups = next
		}
		if len(groups) == 0 {
			return nil
		}
	}
	return textLeaves(groups)
}

func flatten(groups [][]*etree.Element) []*etree.Element {
	var out []*etree.Element
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func attrLeaves(groups [][]*etree.Element, name string) []XMLLeaf {
	var out []XMLLeaf
	for _, el := range flatten(groups) {
		if el.SelectAttr(name) != nil {
			out = append(out, XMLLeaf{Element: el, Attr: name})
		}
	}
	return out
}

func textLeaves(groups [][]*etree.Element) []XMLLeaf {
	var out []XMLLeaf
	for _, el := range flatten(groups) {
		out = append(out, XMLLeaf{Element: el})
	}
	return out
}

// ApplyKey regenerates every location path resolves to, keeping the
// original value when generation fails.
func (h *XMLHandler) ApplyKey(path pathexp.Expression, g contract.Generator, ctx Context) {
	leaves := h.Resolve(path)
	metrics.ObservePointers(len(leaves))
	for _, leaf := range leaves {
		v, err := h.engine.String(g, leaf.Value(), ctx)
		if err != nil {
			continue
		}
		leaf.Set(v)
	}
}

// ProcessBody applies every generator in gens, in path order.
func (h *XMLHandler) ProcessBody(gens []contract.PathGenerator, ctx Context) {
	for _, pg := range gens {
		h.ApplyKey(pg.Path, pg.Generator, ctx)
	}
}
