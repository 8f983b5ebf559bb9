package config

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/getmockd/pactcore/pkg/contract"
	"github.com/getmockd/pactcore/pkg/validation"
)

// LoadError represents an error loading a specific file.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadResult holds the merged rules and generators of every loaded file.
type LoadResult struct {
	Rules      *contract.MatchingRules
	Generators *contract.Generators

	// Files lists the files loaded without error, in load order.
	Files []string

	// Errors are per-file failures; the other files are still merged.
	Errors []LoadError
}

// ExpandGlobs resolves patterns relative to baseDir and returns the sorted,
// de-duplicated list of matching files. "**" matches any number of
// directories.
func ExpandGlobs(baseDir string, patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(baseDir, pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding glob pattern %q: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// DocumentLoader loads the documents a Config points at.
type DocumentLoader struct {
	validator *validation.Validator
}

// NewDocumentLoader creates a loader. A nil validator gets a fresh one.
func NewDocumentLoader(v *validation.Validator) *DocumentLoader {
	if v == nil {
		v = validation.NewValidator()
	}
	return &DocumentLoader{validator: v}
}

// Load expands the Rules, Generators and Documents globs of cfg and merges
// every file into one rule set and one generator set. Later files replace
// earlier generators at the same path; rule lists at the same path are
// concatenated. A file that fails validation is reported in Errors and
// skipped.
func (l *DocumentLoader) Load(cfg *Config) (*LoadResult, error) {
	result := &LoadResult{
		Rules:      contract.NewMatchingRules(),
		Generators: contract.NewGenerators(),
	}

	groups := []struct {
		patterns []string
		kind     validation.Kind
	}{
		{cfg.Rules, validation.KindRules},
		{cfg.Generators, validation.KindGenerators},
		{cfg.Documents, validation.KindAuto},
	}
	for _, g := range groups {
		files, err := ExpandGlobs(cfg.BaseDir(), g.patterns)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			if err := l.loadFile(file, g.kind, result); err != nil {
				result.Errors = append(result.Errors, LoadError{Path: file, Message: "failed to load", Err: err})
				continue
			}
			result.Files = append(result.Files, file)
		}
	}
	return result, nil
}

// LoadFile loads a single document of the given kind.
func (l *DocumentLoader) LoadFile(path string, kind validation.Kind) (*contract.MatchingRules, *contract.Generators, error) {
	format, err := validation.FormatFromPath(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := readFile(path)
	if err != nil {
		return nil, nil, err
	}
	doc, err := validation.DecodeDocument(data, format)
	if err != nil {
		return nil, nil, err
	}
	return l.validator.LoadDocument(doc, kind)
}

func (l *DocumentLoader) loadFile(path string, kind validation.Kind, result *LoadResult) error {
	rules, gens, err := l.LoadFile(path, kind)
	if err != nil {
		return err
	}
	for name, category := range rules.Categories {
		result.Rules.AddRules(name, category)
	}
	result.Generators.AddAll(gens)
	return nil
}
