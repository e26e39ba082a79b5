package s4

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		transportErr error
		expected     string
	}{
		{
			name:     "message value preferred",
			body:     `{"error":{"message":{"lang":"en","value":"Sold-to party not maintained"}}}`,
			expected: "Sold-to party not maintained",
		},
		{
			name:     "message as bare string",
			body:     `{"error":{"message":"backend unavailable"}}`,
			expected: "backend unavailable",
		},
		{
			name:     "inner error details joined",
			body:     `{"error":{"innererror":{"errordetails":[{"message":"A"},{"message":"B"}]}}}`,
			expected: "A; B",
		},
		{
			name:     "message value wins over details",
			body:     `{"error":{"message":{"value":"top"},"innererror":{"errordetails":[{"message":"detail"}]}}}`,
			expected: "top",
		},
		{
			name:         "transport error when body unusable",
			body:         `not json at all`,
			transportErr: errors.New("dial tcp: connection refused"),
			expected:     "dial tcp: connection refused",
		},
		{
			name:         "transport error when body empty",
			transportErr: errors.New("context deadline exceeded"),
			expected:     "context deadline exceeded",
		},
		{
			name:     "unknown error fallback",
			body:     `{"unexpected":"shape"}`,
			expected: "Unknown error",
		},
		{
			name:     "empty everything",
			expected: "Unknown error",
		},
		{
			name:     "empty detail messages skipped",
			body:     `{"error":{"innererror":{"errordetails":[{"message":""},{"message":"only"}]}}}`,
			expected: "only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize([]byte(tt.body), tt.transportErr))
		})
	}
}

func TestNormalize_NeverEmpty(t *testing.T) {
	bodies := [][]byte{nil, {}, []byte(`{}`), []byte(`[]`), []byte(`"string"`), []byte(`{"error":{}}`)}

	for _, body := range bodies {
		assert.NotEmpty(t, Normalize(body, nil))
	}
}
