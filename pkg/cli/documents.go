package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/pactcore/pkg/config"
	"github.com/getmockd/pactcore/pkg/contract"
	"github.com/getmockd/pactcore/pkg/validation"
)

// loadDocuments loads rules and generators from file, or from the documents
// listed in the configuration when file is empty. Configured files that fail
// to load are logged and skipped.
func (o *rootOptions) loadDocuments(file string, kind validation.Kind) (*contract.MatchingRules, *contract.Generators, error) {
	loader := config.NewDocumentLoader(nil)
	if file != "" {
		return loader.LoadFile(file, kind)
	}
	result, err := loader.Load(o.cfg)
	if err != nil {
		return nil, nil, err
	}
	for _, e := range result.Errors {
		o.log.Warn("skipping document", "path", e.Path, "error", e.Err)
	}
	o.log.Debug("documents loaded", "files", len(result.Files))
	return result.Rules, result.Generators, nil
}

// readInput reads a file, or standard input when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// decodeInput reads and decodes a JSON or YAML value. Standard input and
// unknown extensions are read as JSON.
func decodeInput(cmd *cobra.Command, path string) (any, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	format, err := validation.FormatFromPath(path)
	if err != nil {
		format = validation.FormatJSON
	}
	v, err := validation.DecodeDocument(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// generatorContext merges the configured context with key=value pairs.
// Values that parse as JSON keep their JSON type; anything else is a string.
func (o *rootOptions) generatorContext(pairs []string) (map[string]any, error) {
	ctx := make(map[string]any, len(o.cfg.Context)+len(pairs))
	maps.Copy(ctx, o.cfg.Context)
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidContext, pair)
		}
		var v any
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			v = value
		}
		ctx[key] = v
	}
	return ctx, nil
}

// segments splits a dotted concrete path into the segment form used for
// rule selection. A leading "$" is added when missing.
func segments(path string) []string {
	if path == "" || path == "$" {
		return []string{"$"}
	}
	parts := strings.Split(path, ".")
	if parts[0] != "$" {
		parts = append([]string{"$"}, parts...)
	}
	return parts
}
