package contract

import (
	"maps"
	"slices"

	"github.com/getmockd/pactcore/pkg/metrics"
	"github.com/getmockd/pactcore/pkg/pathexp"
)

// Generators holds the generators of an interaction, by category and then by
// canonical path expression. Single-valued categories (method, path, status)
// keep their generator under the empty expression.
type Generators struct {
	Categories map[GeneratorCategory]map[string]Generator
}

// NewGenerators returns an empty generator set.
func NewGenerators() *Generators {
	return &Generators{Categories: make(map[GeneratorCategory]map[string]Generator)}
}

// IsEmpty reports whether no category holds a generator.
func (g *Generators) IsEmpty() bool {
	for _, c := range g.Categories {
		if len(c) > 0 {
			return false
		}
	}
	return true
}

// AddGenerator sets the generator of a single-valued category.
func (g *Generators) AddGenerator(category GeneratorCategory, gen Generator) {
	g.AddGeneratorWithSubcategory(category, pathexp.New(), gen)
}

// AddGeneratorWithSubcategory sets the generator at path in category.
func (g *Generators) AddGeneratorWithSubcategory(category GeneratorCategory, path pathexp.Expression, gen Generator) {
	if g.Categories == nil {
		g.Categories = make(map[GeneratorCategory]map[string]Generator)
	}
	c, ok := g.Categories[category]
	if !ok {
		c = make(map[string]Generator)
		g.Categories[category] = c
	}
	c[path.Key()] = gen
}

// AddAll copies every generator of other into g, replacing existing entries.
func (g *Generators) AddAll(other *Generators) {
	for category, c := range other.Categories {
		for key, gen := range c {
			e, err := pathexp.Parse(key)
			if err != nil {
				continue
			}
			g.AddGeneratorWithSubcategory(category, e, gen)
		}
	}
}

// Get returns the generator at path in category.
func (g *Generators) Get(category GeneratorCategory, path pathexp.Expression) (Generator, bool) {
	gen, ok := g.Categories[category][path.Key()]
	return gen, ok
}

// PathGenerator is a generator bound to a path expression.
type PathGenerator struct {
	Path      pathexp.Expression
	Generator Generator
}

// ApplicableTo returns the generators of category that run in mode, in key
// order. A nil set has no generators.
func (g *Generators) ApplicableTo(category GeneratorCategory, mode TestMode) []PathGenerator {
	if g == nil {
		return nil
	}
	c := g.Categories[category]
	keys := slices.Sorted(maps.Keys(c))
	out := make([]PathGenerator, 0, len(keys))
	for _, key := range keys {
		gen := c[key]
		if !gen.CorrespondsToMode(mode) {
			continue
		}
		e, err := pathexp.Parse(key)
		if err != nil {
			continue
		}
		out = append(out, PathGenerator{Path: e, Generator: gen})
	}
	return out
}

// Equal compares every non-empty category.
func (g *Generators) Equal(other *Generators) bool {
	strip := func(in map[GeneratorCategory]map[string]Generator) map[GeneratorCategory]map[string]Generator {
		out := make(map[GeneratorCategory]map[string]Generator, len(in))
		for k, v := range in {
			if len(v) > 0 {
				out[k] = v
			}
		}
		return out
	}
	return maps.EqualFunc(strip(g.Categories), strip(other.Categories), generatorMapsEqual)
}

// LoadGenerators parses the generators section of an interaction. Entries
// with an unknown category, a missing type or a bad shape are logged and
// skipped. A value that is not an object yields an empty set.
func LoadGenerators(v any) (*Generators, error) {
	gens := NewGenerators()
	obj, ok := asObject(v)
	if !ok {
		return gens, nil
	}
	for _, key := range slices.Sorted(maps.Keys(obj)) {
		section, ok := asObject(obj[key])
		if !ok {
			logger().Warn("ignoring invalid generator JSON", "key", key)
			metrics.ObserveDocumentError("generators")
			continue
		}
		category, err := ParseGeneratorCategory(key)
		if err != nil {
			logger().Warn("ignoring generator with invalid category", "category", key, "error", err)
			metrics.ObserveDocumentError("generators")
			continue
		}
		if category.singleValued() {
			gens.parseGenerator(category, section, pathexp.New())
			continue
		}
		for _, sub := range slices.Sorted(maps.Keys(section)) {
			gm, ok := asObject(section[sub])
			if !ok {
				logger().Warn("ignoring invalid generator JSON", "category", key, "path", sub)
				metrics.ObserveDocumentError("generators")
				continue
			}
			path, err := pathexp.Parse(sub)
			if err != nil {
				logger().Warn("ignoring generator with invalid path", "category", key, "path", sub, "error", err)
				metrics.ObserveDocumentError("generators")
				continue
			}
			gens.parseGenerator(category, gm, path)
		}
	}
	return gens, nil
}

func (g *Generators) parseGenerator(category GeneratorCategory, obj map[string]any, path pathexp.Expression) {
	gen, err := GeneratorFromJSON(obj)
	if err != nil {
		logger().Warn("ignoring invalid generator", "category", category, "path", path.String(), "error", err)
		metrics.ObserveDocumentError("generators")
		return
	}
	g.AddGeneratorWithSubcategory(category, path, gen)
}

// ToJSON returns the document form consumed by LoadGenerators.
func (g *Generators) ToJSON() map[string]any {
	out := map[string]any{}
	for category, c := range g.Categories {
		if category.singleValued() {
			gen, ok := c[""]
			if !ok {
				gen, ok = c["$"]
			}
			if ok {
				out[string(category)] = gen.ToJSON()
			}
			continue
		}
		section := make(map[string]any, len(c))
		for key, gen := range c {
			if category == GenCategoryHeader || category == GenCategoryQuery {
				if e, err := pathexp.Parse(key); err == nil {
					key = parameterName(e, key)
				}
			}
			section[key] = gen.ToJSON()
		}
		out[string(category)] = section
	}
	return out
}
