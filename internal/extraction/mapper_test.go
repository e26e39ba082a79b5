package extraction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gzmilgar/JumboOCR/internal/domain"
)

func TestMapFields(t *testing.T) {
	tests := []struct {
		name     string
		fields   []domain.Field
		expected domain.Record
	}{
		{
			name: "renames and passthrough",
			fields: []domain.Field{
				{Name: "purchaseOrder", Value: "PO-1"},
				{Name: "vendorNo", Value: "V-1"},
				{Name: "vendorAdress", Value: "Somewhere 1"},
				{Name: "deliveryAdress", Value: "Somewhere 2"},
				{Name: "currencyCode", Value: "AED"},
			},
			expected: domain.Record{
				"documentNumber": "PO-1",
				"senderId":       "V-1",
				"vendorAddress":  "Somewhere 1",
				"shipToAddress":  "Somewhere 2",
				"currencyCode":   "AED",
			},
		},
		{
			name: "numeric coercion",
			fields: []domain.Field{
				{Name: "netAmount", Value: "12.5"},
				{Name: "grossAmount", Value: 100.0},
				{Name: "quantity", Value: "3"},
			},
			expected: domain.Record{
				"netAmount":   12.5,
				"grossAmount": 100.0,
				"quantity":    3.0,
			},
		},
		{
			name: "unparsable numeric maps to zero",
			fields: []domain.Field{
				{Name: "netAmount", Value: "12.5x"},
			},
			expected: domain.Record{"netAmount": 0.0},
		},
		{
			name: "empty and nil values skipped",
			fields: []domain.Field{
				{Name: "documentNumber", Value: ""},
				{Name: "currencyCode", Value: nil},
				{Name: "receiverId", Value: "C-1"},
			},
			expected: domain.Record{"receiverId": "C-1"},
		},
		{
			name: "duplicate names last write wins",
			fields: []domain.Field{
				{Name: "receiverId", Value: "C-1"},
				{Name: "receiverId", Value: "C-2"},
			},
			expected: domain.Record{"receiverId": "C-2"},
		},
		{
			name:     "nil input yields empty record",
			fields:   nil,
			expected: domain.Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapFields(tt.fields))
		})
	}
}

func TestMapLineItems_DropsEmptyLines(t *testing.T) {
	lines := [][]domain.Field{
		{{Name: "materialNumber", Value: "M-1"}, {Name: "quantity", Value: "2"}},
		{},
		{{Name: "materialNumber", Value: ""}, {Name: "description", Value: nil}},
		{{Name: "materialNumber", Value: "M-2"}, {Name: "quantity", Value: "1"}},
	}

	mapped := MapLineItems(lines)

	require.Len(t, mapped, 2)
	assert.Equal(t, "M-1", mapped[0].String("materialNumber"))
	assert.Equal(t, 2.0, mapped[0].Float("quantity"))
	assert.Equal(t, "M-2", mapped[1].String("materialNumber"))
}

func TestMapDocument_Deterministic(t *testing.T) {
	raw := `{
		"extraction": {
			"headerFields": [
				{"name": "purchaseOrder", "value": "PO-77"},
				{"name": "vendorNo", "value": "V-9"},
				{"name": "netAmount", "value": "150.25"}
			],
			"lineItems": [
				[{"name": "materialNumber", "value": "M-1"}, {"name": "quantity", "value": 2}]
			],
			"confidence": 0.93
		}
	}`

	var doc domain.ExtractionDocument
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	header1, lines1 := MapDocument(&doc)
	header2, lines2 := MapDocument(&doc)

	assert.Equal(t, header1, header2)
	assert.Equal(t, lines1, lines2)
	assert.Equal(t, "PO-77", header1.String("documentNumber"))
	assert.Equal(t, 150.25, header1.Float("netAmount"))
	assert.Equal(t, 2.0, lines1[0].Float("quantity"))
}

func TestExtractionDocument_UnmarshalStringEncoded(t *testing.T) {
	// Some clients double-encode the extraction payload as a string.
	inner := `{"extraction":{"headerFields":[{"name":"purchaseOrder","value":"PO-1"}],"lineItems":[],"confidence":0.8}}`
	outer, err := json.Marshal(inner)
	require.NoError(t, err)

	var doc domain.ExtractionDocument
	require.NoError(t, json.Unmarshal(outer, &doc))

	assert.Equal(t, "PO-1", doc.Extraction.HeaderFields[0].Value)
	assert.InDelta(t, 0.8, doc.Extraction.Confidence, 1e-9)
}
