package extraction

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gzmilgar/JumboOCR/internal/domain"
)

func validHeader() domain.Record {
	return domain.Record{
		"receiverId":     "C-1",
		"documentNumber": "PO-1",
		"currencyCode":   "AED",
	}
}

func validLine() domain.Record {
	return domain.Record{"materialNumber": "M-1", "quantity": 2.0}
}

func TestCheck_Valid(t *testing.T) {
	result := Check(validHeader(), []domain.Record{validLine()}, RequiredHeaderFields)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestCheck_MissingHeaderFieldNamesField(t *testing.T) {
	for _, field := range RequiredHeaderFields {
		t.Run(field, func(t *testing.T) {
			header := validHeader()
			delete(header, field)

			result := Check(header, []domain.Record{validLine()}, RequiredHeaderFields)

			require.False(t, result.Valid)
			require.Len(t, result.Errors, 1)
			assert.Contains(t, result.Errors[0], field)
		})
	}
}

func TestCheck_CollectsAllViolations(t *testing.T) {
	header := domain.Record{"currencyCode": "AED"}
	lines := []domain.Record{
		{"description": "no material", "quantity": 1.0},
		{"materialNumber": "M-2", "quantity": 0.0},
	}

	result := Check(header, lines, RequiredHeaderFields)

	require.False(t, result.Valid)
	assert.Equal(t, []string{
		"missing required header field: receiverId",
		"missing required header field: documentNumber",
		"line 1: missing material identifier",
		"line 2: quantity must be greater than zero",
	}, result.Errors)
}

func TestCheck_CustomerMaterialSatisfiesLine(t *testing.T) {
	lines := []domain.Record{{"customerMaterialNumber": "CM-1", "quantity": 5.0}}

	result := Check(validHeader(), lines, RequiredHeaderFields)

	assert.True(t, result.Valid)
}

func TestRequire_FailFastStopsAtFirstViolation(t *testing.T) {
	header := domain.Record{"currencyCode": "AED"}
	lines := []domain.Record{{"quantity": 0.0}}

	err := Require(header, lines, RequiredHeaderFields)

	require.Error(t, err)
	require.True(t, domain.IsValidation(err))

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "receiverId", verr.Field)
}

func TestRequire_LineRulesAfterHeader(t *testing.T) {
	lines := []domain.Record{
		validLine(),
		{"materialNumber": "M-2", "quantity": -1.0},
	}

	err := Require(validHeader(), lines, RequiredHeaderFields)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "quantity")
}

func TestRequire_Valid(t *testing.T) {
	assert.NoError(t, Require(validHeader(), []domain.Record{validLine()}, RequiredHeaderFields))
}
