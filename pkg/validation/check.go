package validation

import (
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/getmockd/pactcore/pkg/contract"
	"github.com/getmockd/pactcore/pkg/javatime"
	"github.com/getmockd/pactcore/pkg/pathexp"
)

// checker runs the checks the schema cannot express: path expressions,
// regular expressions and date patterns.
type checker struct {
	result *Result
}

func (c *checker) checkRules(rules map[string]any) {
	for _, key := range slices.Sorted(maps.Keys(rules)) {
		section, _ := rules[key].(map[string]any)
		if strings.HasPrefix(key, "$") {
			c.checkPath(LocationMatchingRules, key, key)
			c.checkRule(key, section)
			continue
		}
		category, err := contract.ParseCategory(key)
		if err != nil {
			c.result.AddError(&FieldError{Field: key, Location: LocationMatchingRules, Code: ErrCodeCategory, Message: err.Error()})
			continue
		}
		c.checkRuleCategory(string(category), section)
	}
}

// checkRuleCategory accepts both a single rule list and a map of path to
// rule list.
func (c *checker) checkRuleCategory(field string, section map[string]any) {
	if _, ok := section["matchers"]; ok {
		c.checkRuleList(field, section)
		return
	}
	for _, path := range slices.Sorted(maps.Keys(section)) {
		f := field + "." + path
		c.checkPath(LocationMatchingRules, f, path)
		list, _ := section[path].(map[string]any)
		c.checkRuleList(f, list)
	}
}

func (c *checker) checkRuleList(field string, list map[string]any) {
	matchers, _ := list["matchers"].([]any)
	for i, m := range matchers {
		rule, _ := m.(map[string]any)
		c.checkRule(field+".matchers."+strconv.Itoa(i), rule)
	}
}

func (c *checker) checkRule(field string, rule map[string]any) {
	if s, ok := rule["regex"].(string); ok {
		c.checkRegex(LocationMatchingRules, field+".regex", s)
	}
	for _, attr := range []string{"format", "timestamp", "date", "time"} {
		if s, ok := rule[attr].(string); ok && s != "" {
			c.checkFormat(LocationMatchingRules, field+"."+attr, s)
		}
	}
	c.checkVariants(field, rule["variants"])
}

func (c *checker) checkVariants(field string, raw any) {
	variants, _ := raw.([]any)
	for i, v := range variants {
		variant, _ := v.(map[string]any)
		f := field + ".variants." + strconv.Itoa(i)
		if rules, ok := variant["rules"].(map[string]any); ok {
			c.checkRuleCategory(f+".rules", rules)
		}
		gens, _ := variant["generators"].(map[string]any)
		for _, path := range slices.Sorted(maps.Keys(gens)) {
			gf := f + ".generators." + path
			c.checkPath(LocationMatchingRules, gf, path)
			gen, _ := gens[path].(map[string]any)
			c.checkGenerator(LocationMatchingRules, gf, gen)
		}
	}
}

func (c *checker) checkGenerators(gens map[string]any) {
	for _, key := range slices.Sorted(maps.Keys(gens)) {
		section, _ := gens[key].(map[string]any)
		category, err := contract.ParseGeneratorCategory(key)
		if err != nil {
			c.result.AddError(&FieldError{Field: key, Location: LocationGenerators, Code: ErrCodeCategory, Message: err.Error()})
			continue
		}
		switch category {
		case contract.GenCategoryMethod, contract.GenCategoryPath, contract.GenCategoryStatus:
			c.checkGenerator(LocationGenerators, key, section)
			continue
		}
		for _, path := range slices.Sorted(maps.Keys(section)) {
			f := key + "." + path
			c.checkPath(LocationGenerators, f, path)
			gen, _ := section[path].(map[string]any)
			c.checkGenerator(LocationGenerators, f, gen)
		}
	}
}

func (c *checker) checkGenerator(location, field string, gen map[string]any) {
	switch gen["type"] {
	case "Regex", "MockServerURL":
		if s, ok := gen["regex"].(string); ok {
			c.checkRegex(location, field+".regex", s)
		}
	case "Date", "Time", "DateTime":
		if s, ok := gen["format"].(string); ok && s != "" {
			c.checkFormat(location, field+".format", s)
		}
	case "ArrayContains":
		c.checkVariants(field, gen["variants"])
	}
}

func (c *checker) checkPath(location, field, path string) {
	if _, err := pathexp.Parse(path); err != nil {
		c.result.AddError(NewPathError(field, location, path, err))
	}
}

func (c *checker) checkRegex(location, field, pattern string) {
	if _, err := regexp.Compile(pattern); err != nil {
		c.result.AddError(NewPatternError(field, location, pattern, err))
	}
}

func (c *checker) checkFormat(location, field, format string) {
	if _, err := javatime.Layout(format); err != nil {
		c.result.AddError(NewFormatError(field, location, format, err))
	}
}
