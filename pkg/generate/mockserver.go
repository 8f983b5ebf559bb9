package generate

import (
	"fmt"
	"regexp"

	"github.com/getmockd/pactcore/pkg/contract"
)

// mockServerURL rewrites the example URL of g so it points at the mock
// server in ctx. The first match of the regex is replaced with the server
// URL followed by the first capture group.
func mockServerURL(g contract.Generator, ctx Context) (string, error) {
	details, ok := ctx["mockServer"]
	if !ok {
		return "", ErrNoMockServer
	}
	server, ok := details.(map[string]any)
	if !ok {
		return "", ErrMockServerNotObject
	}
	base, ok := server["url"].(string)
	if !ok {
		if base, ok = server["href"].(string); !ok {
			return "", ErrNoMockServerURL
		}
	}
	re, err := regexp.Compile(g.Regex)
	if err != nil {
		return "", fmt.Errorf("MockServerURL: Failed to generate value: %w", err)
	}
	loc := re.FindStringSubmatchIndex(g.Example)
	if loc == nil {
		return "", fmt.Errorf("%w: '%s' does not match '%s'", ErrExampleMismatch, g.Example, g.Regex)
	}
	var group string
	if len(loc) >= 4 && loc[2] >= 0 {
		group = g.Example[loc[2]:loc[3]]
	}
	return g.Example[:loc[0]] + base + group + g.Example[loc[1]:], nil
}
