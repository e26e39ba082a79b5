package s4

import (
	"bytes"
	"encoding/json"
	"strings"
)

// unknownError is the last-resort message when nothing usable can be
// extracted from a failure.
const unknownError = "Unknown error"

// errorEnvelope covers the OData v2 error shapes the ERP returns. The
// message node appears both as an object with a value field and as a
// bare string depending on which layer produced the error.
type errorEnvelope struct {
	Error struct {
		Message    messageNode `json:"message"`
		InnerError struct {
			ErrorDetails []struct {
				Message string `json:"message"`
			} `json:"errordetails"`
		} `json:"innererror"`
	} `json:"error"`
}

type messageNode struct {
	Value string `json:"value"`
}

func (m *messageNode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &m.Value)
	}

	type alias messageNode
	var node alias
	if err := json.Unmarshal(data, &node); err != nil {
		// An unrecognized message shape is not itself an error;
		// normalization falls through to the next source.
		return nil
	}

	*m = messageNode(node)

	return nil
}

// Normalize reduces a failed call to one human-readable message. It is
// total: it never fails and always returns a non-empty string.
//
// Priority: the envelope's error.message.value, then the joined inner
// error details, then the transport error, then "Unknown error".
func Normalize(body []byte, transportErr error) string {
	if msg := fromEnvelope(body); msg != "" {
		return msg
	}

	if transportErr != nil {
		if msg := strings.TrimSpace(transportErr.Error()); msg != "" {
			return msg
		}
	}

	return unknownError
}

func fromEnvelope(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}

	if msg := strings.TrimSpace(envelope.Error.Message.Value); msg != "" {
		return msg
	}

	var details []string
	for _, detail := range envelope.Error.InnerError.ErrorDetails {
		if msg := strings.TrimSpace(detail.Message); msg != "" {
			details = append(details, msg)
		}
	}

	return strings.Join(details, "; ")
}
