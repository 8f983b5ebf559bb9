package generate

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/pactcore/pkg/contract"
	"github.com/getmockd/pactcore/pkg/pathexp"
)

const orderXML = `<order id="1" status="new"><item sku="a">first</item><item sku="b">second</item><note>n</note></order>`

func orderDoc(t *testing.T) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(orderXML))
	return doc
}

func TestXMLHandler_Resolve(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"$.order.item", []string{"first", "second"}},
		{"$.order.item[1]", []string{"second"}},
		{"$.order.item[*]", []string{"first", "second"}},
		{"$.order.item['#text']", []string{"first", "second"}},
		{"$.order['@id']", []string{"1"}},
		{"$.order.item['@sku']", []string{"a", "b"}},
		{"$.order.item[0]['@sku']", []string{"a"}},
		{"$.order['@missing']", nil},
		{"$.*.note", []string{"n"}},
		{"$.order.*", []string{"first", "second", "n"}},
		{"$.invoice.item", nil},
		{"$.order.item[4]", nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			h := NewXMLHandler(nil, orderDoc(t))
			var got []string
			for _, leaf := range h.Resolve(pathexp.MustParse(tt.path)) {
				got = append(got, leaf.Value())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestXMLHandler_ApplyKey(t *testing.T) {
	doc := orderDoc(t)
	h := NewXMLHandler(nil, doc)

	h.ApplyKey(pathexp.MustParse("$.order['@id']"), contract.RandomIntGenerator(42, 42), nil)
	h.ApplyKey(pathexp.MustParse("$.order.item[1]"), contract.RegexGenerator("changed"), nil)
	h.ApplyKey(pathexp.MustParse("$.order.note"), contract.ProviderStateGenerator("missing", contract.DataTypeRaw), Context{})

	out, err := doc.WriteToString()
	require.NoError(t, err)
	assert.Equal(t, `<order id="42" status="new"><item sku="a">first</item><item sku="b">changed</item><note>n</note></order>`, out)
}

func TestXMLHandler_EmptyDocument(t *testing.T) {
	h := NewXMLHandler(nil, etree.NewDocument())
	assert.Nil(t, h.Resolve(pathexp.MustParse("$.a")))
}
