// Package extraction translates raw document-extraction fields into
// keyed records and validates them against the adapter's business
// rules. All transforms here are pure.
package extraction

import (
	"strconv"

	"github.com/gzmilgar/JumboOCR/internal/domain"
)

// numericFields are field names whose values are coerced to float64
// during mapping. An unparsable value maps to 0, never to an error.
var numericFields = map[string]struct{}{
	"netAmount":   {},
	"grossAmount": {},
	"discount":    {},
	"totalVAT":    {},
	"DiscValue":   {},
	"VATValue":    {},
	"quantity":    {},
	"unitPrice":   {},
}

// renamedFields maps extraction-schema names to the adapter's field
// vocabulary. The misspelled source keys are intentional: they appear
// verbatim in the extraction schema and must be accepted as-is.
var renamedFields = map[string]string{
	"purchaseOrder":  "documentNumber",
	"vendorNo":       "senderId",
	"vendorAdress":   "vendorAddress",
	"deliveryAdress": "shipToAddress",
}

// MapFields flattens a field array into a keyed record, applying the
// per-field coercion and rename tables. Fields with nil or empty
// values are skipped; duplicate names collapse last-write-wins.
func MapFields(fields []domain.Field) domain.Record {
	record := make(domain.Record, len(fields))

	for _, field := range fields {
		if field.Name == "" || isEmptyValue(field.Value) {
			continue
		}

		name := field.Name
		if renamed, ok := renamedFields[name]; ok {
			name = renamed
		}

		if _, numeric := numericFields[field.Name]; numeric {
			record[name] = coerceFloat(field.Value)
			continue
		}

		record[name] = field.Value
	}

	return record
}

// MapLineItems maps each line's field array into a record. Lines that
// map to zero populated fields are dropped.
func MapLineItems(lines [][]domain.Field) []domain.Record {
	mapped := make([]domain.Record, 0, len(lines))

	for _, line := range lines {
		record := MapFields(line)
		if len(record) == 0 {
			continue
		}

		mapped = append(mapped, record)
	}

	return mapped
}

// MapDocument maps a full extraction document into a header record and
// line records in one pass.
func MapDocument(doc *domain.ExtractionDocument) (domain.Record, []domain.Record) {
	return MapFields(doc.Extraction.HeaderFields), MapLineItems(doc.Extraction.LineItems)
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}

	if s, ok := v.(string); ok {
		return s == ""
	}

	return false
}

// coerceFloat parses a monetary or quantity value. Numbers pass
// through; strings are parsed; anything unparsable becomes 0.
func coerceFloat(v any) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case int:
		return float64(value)
	case string:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
