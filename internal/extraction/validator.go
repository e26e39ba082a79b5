package extraction

import (
	"fmt"

	"github.com/gzmilgar/JumboOCR/internal/domain"
)

// RequiredHeaderFields is the canonical required set for the
// extraction-to-ERP pipeline: the customer, the PO number, and the
// currency must all have been extracted.
var RequiredHeaderFields = []string{"receiverId", "documentNumber", "currencyCode"}

// materialFields are the identifiers a line may carry; at least one
// must be present.
var materialFields = []string{"materialNumber", "customerMaterialNumber"}

// Violations evaluates the full rule set against a mapped header and
// its lines and returns every violated rule as a human-readable
// string. The order is deterministic: required header fields first, in
// declaration order, then per-line rules in line order.
func Violations(header domain.Record, lines []domain.Record, required []string) []string {
	var violations []string

	for _, field := range required {
		if !header.Has(field) {
			violations = append(violations, "missing required header field: "+field)
		}
	}

	for i, line := range lines {
		if !hasMaterial(line) {
			violations = append(violations, fmt.Sprintf("line %d: missing material identifier", i+1))
		}

		if line.Float("quantity") <= 0 {
			violations = append(violations, fmt.Sprintf("line %d: quantity must be greater than zero", i+1))
		}
	}

	return violations
}

// Check runs the collect-all policy: it evaluates every rule and
// returns the batch of violations so a caller sees all problems at
// once. Used by the validate-only action.
func Check(header domain.Record, lines []domain.Record, required []string) *domain.ValidationResult {
	violations := Violations(header, lines, required)

	return &domain.ValidationResult{
		Valid:  len(violations) == 0,
		Errors: violations,
	}
}

// Require runs the fail-fast policy: it stops at the first violated
// rule and returns it as a validation error. Used as the gate before
// create-style actions.
func Require(header domain.Record, lines []domain.Record, required []string) error {
	for _, field := range required {
		if !header.Has(field) {
			return domain.NewValidationError(field, "missing required header field")
		}
	}

	for i, line := range lines {
		if !hasMaterial(line) {
			return domain.NewValidationError(
				fmt.Sprintf("line %d", i+1), "missing material identifier")
		}

		if line.Float("quantity") <= 0 {
			return domain.NewValidationError(
				fmt.Sprintf("line %d", i+1), "quantity must be greater than zero")
		}
	}

	return nil
}

func hasMaterial(line domain.Record) bool {
	for _, field := range materialFields {
		if line.Has(field) {
			return true
		}
	}

	return false
}
