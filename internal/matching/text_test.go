package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/getmockd/pactcore/pkg/contract"
)

func TestMatchString(t *testing.T) {
	tests := []struct {
		name     string
		rule     contract.MatchingRule
		expected string
		actual   string
		ok       bool
	}{
		{"equality", contract.EqualityRule(), "a", "a", true},
		{"equality mismatch", contract.EqualityRule(), "a", "b", false},
		{"regex", contract.RegexRule(`^\d{3}$`), "", "123", true},
		{"regex mismatch", contract.RegexRule(`^\d{3}$`), "", "12", false},
		{"type", contract.TypeRule(), "a", "anything", true},
		{"include", contract.IncludeRule("json"), "", "application/json", true},
		{"number", contract.NumberRule(), "", "-1.5", true},
		{"number mismatch", contract.NumberRule(), "", "one", false},
		{"integer", contract.IntegerRule(), "", "12", true},
		{"integer negative", contract.IntegerRule(), "", "-12", false},
		{"boolean", contract.BooleanRule(), "", "true", true},
		{"boolean mismatch", contract.BooleanRule(), "", "TRUE", false},
		{"date", contract.DateRule("dd/MM/yyyy"), "", "31/12/2024", true},
		{"status", contract.StatusCodeRule(contract.HTTPStatus{Class: contract.StatusClientError}), "", "404", true},
		{"status not numeric", contract.StatusCodeRule(contract.HTTPStatus{Class: contract.StatusClientError}), "", "four", false},
		{"null unsupported", contract.NullRule(), "", "null", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MatchString(tt.rule, tt.expected, tt.actual)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrMismatch)
		})
	}
}
