package scoring

import (
	"strings"

	"resilient-route-service/internal/domain"
)

// The worker marks the start of its result payload with this delimiter on a
// line of its own. Older workers print diagnostics followed by the bare JSON
// payload, so a backward line scan remains as fallback.
const payloadDelimiter = "===RESULT==="

// maxTailBytes bounds how much raw output is attached to extraction errors.
const maxTailBytes = 2048

// ExtractPayload isolates the JSON result from combined worker output that
// may be preceded by arbitrary diagnostic lines.
func ExtractPayload(output string) (string, error) {
	if idx := strings.LastIndex(output, payloadDelimiter); idx >= 0 {
		payload := strings.TrimSpace(output[idx+len(payloadDelimiter):])
		if payload == "" {
			return "", &domain.OutputFormatError{
				Reason: "empty payload after delimiter",
				Tail:   tail(output),
			}
		}
		return payload, nil
	}

	// No delimiter: scan backward for the last line that starts a JSON value.
	lines := strings.Split(output, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			return strings.TrimSpace(strings.Join(lines[i:], "\n")), nil
		}
	}

	return "", &domain.OutputFormatError{
		Reason: "no JSON payload found in worker output",
		Tail:   tail(output),
	}
}

func tail(s string) string {
	if len(s) <= maxTailBytes {
		return s
	}
	return s[len(s)-maxTailBytes:]
}
