package tracing

import (
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

var blockedAttributeKeys = map[attribute.Key]struct{}{
	"document_number": {},
	"email":           {},
	"phone":           {},
	"password":        {},
	"secret_key":      {},
}

const maxAttributeLength = 256

// SafeAttributes drops personal data keys and truncates long string values.
func SafeAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, blocked := blockedAttributeKeys[attr.Key]; blocked {
			continue
		}
		if attr.Value.Type() == attribute.STRING {
			if v := attr.Value.AsString(); len(v) > maxAttributeLength {
				attr = attribute.String(string(attr.Key), v[:maxAttributeLength])
			}
		}
		out = append(out, attr)
	}
	return out
}

// SafeError returns an error carrying only the first line of err's message.
func SafeError(err error) error {
	if err == nil {
		return nil
	}
	msg, _, _ := strings.Cut(err.Error(), "\n")
	msg = strings.TrimSpace(msg)
	if len(msg) > maxAttributeLength {
		msg = msg[:maxAttributeLength]
	}
	if msg == "" {
		msg = "error"
	}
	return errors.New(msg)
}
