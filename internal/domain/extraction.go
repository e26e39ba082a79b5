// Package domain contains core business entities and rules.
package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Field is a single {name, value} pair produced by the upstream
// document extraction. Value is nil when the field was not extracted;
// otherwise it is a string or a JSON number.
type Field struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Extraction is the OCR output for one document: header fields plus
// one field array per detected line item.
type Extraction struct {
	HeaderFields []Field   `json:"headerFields"`
	LineItems    [][]Field `json:"lineItems"`
	Confidence   float64   `json:"confidence"`
}

// ExtractionDocument is the inbound envelope around an Extraction.
type ExtractionDocument struct {
	Extraction Extraction `json:"extraction"`
}

// UnmarshalJSON accepts either a JSON object or a string containing
// the JSON-encoded object. The upstream extraction service sends both
// encodings depending on which client submits the document.
func (d *ExtractionDocument) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var nested string
		if err := json.Unmarshal(data, &nested); err != nil {
			return err
		}
		data = []byte(nested)
	}

	type alias ExtractionDocument
	var doc alias
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	*d = ExtractionDocument(doc)

	return nil
}

// Record is a keyed view of extraction fields after mapping.
// Duplicate field names collapse last-write-wins.
type Record map[string]any

// Has reports whether key is present with a non-empty value.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return false
	}

	if s, isString := v.(string); isString {
		return s != ""
	}

	return true
}

// String returns the value for key rendered as a string.
// Numeric values are formatted without an exponent; absent keys
// return the empty string.
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return ""
	}
}

// Float returns the value for key as a float64, or 0 when the key is
// absent or not numeric.
func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// ValidationResult is the structured outcome of a validation-only
// action. Errors is empty when Valid is true.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}
