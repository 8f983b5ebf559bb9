package matching

import (
	"bytes"
	"encoding/json"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/getmockd/pactcore/pkg/javatime"
	"github.com/getmockd/pactcore/pkg/contract"
)

// Patterns used when a date, time or timestamp rule has no format.
const (
	defaultDateFormat = "yyyy-MM-dd"
	defaultTimeFormat = "HH:mm:ss"
)

func matchDateTime(rule contract.MatchingRule, value string) error {
	var what string
	switch rule.Kind {
	case contract.RuleDate:
		what = "date"
	case contract.RuleTime:
		what = "time"
	default:
		what = "timestamp"
	}

	format := rule.Format
	if format == "" {
		switch rule.Kind {
		case contract.RuleDate:
			format = defaultDateFormat
		case contract.RuleTime:
			format = defaultTimeFormat
		default:
			if _, err := time.Parse(time.RFC3339Nano, value); err != nil {
				return mismatchf("Expected '%s' to match a %s format of 'ISO-8601': %v", value, what, err)
			}
			return nil
		}
	}
	if _, err := javatime.Parse(value, format); err != nil {
		return mismatchf("Expected '%s' to match a %s format of '%s': %v", value, what, format, err)
	}
	return nil
}

// detectContentType sniffs data. JSON and XML documents are recognised
// before falling back to http.DetectContentType.
func detectContentType(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') && json.Valid(trimmed) {
		return "application/json"
	}
	if len(trimmed) > 0 && trimmed[0] == '<' {
		if err := etree.NewDocument().ReadFromBytes(trimmed); err == nil {
			return "application/xml"
		}
	}
	return http.DetectContentType(data)
}

func baseMediaType(s string) string {
	if mt, _, err := mime.ParseMediaType(s); err == nil {
		return mt
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// matchContentType checks the sniffed type of data against expected. The
// sniffed type only has to start with the expected base type, so "text/"
// accepts any text and text/xml satisfies application/xml.
func matchContentType(expected string, data []byte) error {
	want := baseMediaType(expected)
	got := baseMediaType(detectContentType(data))
	if got == "text/xml" {
		got = "application/xml"
	}
	if want == "text/xml" {
		want = "application/xml"
	}
	if strings.HasPrefix(got, want) {
		return nil
	}
	return mismatchf("Expected data to have a content type of '%s' but was %s", expected, got)
}
