package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func find(samples []Sample, key string) (float64, bool) {
	for _, s := range samples {
		if s.Key() == key {
			return s.Value, true
		}
	}
	return 0, false
}

func TestObserveWithoutInit(t *testing.T) {
	Reset()
	assert.NotPanics(t, func() {
		ObserveGeneration("Uuid", nil)
		ObserveSelection("body", SelectionExact)
		ObserveDocumentError("rules")
		ObservePointers(3)
	})
	assert.Nil(t, DefaultRegistry())
}

func TestSnapshot(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	r := Init()
	require.NotNil(t, r)
	assert.Same(t, r, Init())

	ObserveGeneration("Uuid", nil)
	ObserveGeneration("Uuid", nil)
	ObserveGeneration("Regex", errors.New("bad pattern"))
	ObserveSelection("body", SelectionCascaded)
	ObserveDocumentError("generators")
	ObservePointers(2)

	samples, err := r.Snapshot()
	require.NoError(t, err)

	tests := []struct {
		key  string
		want float64
	}{
		{`pactcore_generations_total{generator="Uuid",outcome="ok"}`, 2},
		{`pactcore_generations_total{generator="Regex",outcome="error"}`, 1},
		{`pactcore_selections_total{category="body",result="cascaded"}`, 1},
		{`pactcore_document_errors_total{document="generators"}`, 1},
		{`pactcore_mutation_pointers_count`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := find(samples, tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandler(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	r := Init()
	ObserveSelection("header", SelectionNone)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `pactcore_selections_total{category="header",result="none"} 1`))
}

func TestSampleKey(t *testing.T) {
	s := Sample{Name: "x", Labels: map[string]string{"b": "2", "a": "1"}}
	assert.Equal(t, `x{a="1",b="2"}`, s.Key())
	assert.Equal(t, "y", Sample{Name: "y"}.Key())
}
