package scoring

import (
	"errors"
	"strings"
	"testing"

	"resilient-route-service/internal/domain"
)

func TestExtractPayloadWithDelimiter(t *testing.T) {
	output := strings.Join([]string{
		"loading model weights",
		"scoring 3 routes",
		payloadDelimiter,
		`{"routes": [], "resilienceScores": {"routes": []}}`,
	}, "\n")

	payload, err := ExtractPayload(output)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(payload, "{") {
		t.Fatalf("payload = %q", payload)
	}
}

func TestExtractPayloadBackwardScan(t *testing.T) {
	// Five diagnostic lines, then a three-line JSON payload and no delimiter.
	output := strings.Join([]string{
		"init",
		"fetching weather",
		"fetching road data",
		"WARN slow response",
		"scoring",
		"{",
		`  "routes": []`,
		"}",
	}, "\n")

	payload, err := ExtractPayload(output)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "{\n  \"routes\": []\n}"
	if payload != want {
		t.Fatalf("payload = %q, want %q", payload, want)
	}
}

func TestExtractPayloadArrayStart(t *testing.T) {
	payload, err := ExtractPayload("diag\n[1, 2, 3]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload != "[1, 2, 3]" {
		t.Fatalf("payload = %q", payload)
	}
}

func TestExtractPayloadNoPayload(t *testing.T) {
	output := "only diagnostics here\nno json at all\n"

	_, err := ExtractPayload(output)
	var formatErr *domain.OutputFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected OutputFormatError, got %v", err)
	}
	if !strings.Contains(formatErr.Tail, "no json at all") {
		t.Fatalf("tail missing diagnostics: %q", formatErr.Tail)
	}
}

func TestExtractPayloadTailIsBounded(t *testing.T) {
	output := strings.Repeat("x", maxTailBytes*3) + "\n"

	_, err := ExtractPayload(output)
	var formatErr *domain.OutputFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected OutputFormatError, got %v", err)
	}
	if len(formatErr.Tail) > maxTailBytes {
		t.Fatalf("tail length %d exceeds bound %d", len(formatErr.Tail), maxTailBytes)
	}
}

func TestExtractPayloadEmptyAfterDelimiter(t *testing.T) {
	_, err := ExtractPayload("diag\n" + payloadDelimiter + "\n\n")
	var formatErr *domain.OutputFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected OutputFormatError, got %v", err)
	}
}

func TestExtractPayloadPrefersDelimiterOverScan(t *testing.T) {
	// A JSON-looking diagnostic line before the delimiter must not win.
	output := strings.Join([]string{
		`{"debug": "not the payload"}`,
		payloadDelimiter,
		`{"routes": []}`,
	}, "\n")

	payload, err := ExtractPayload(output)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload != `{"routes": []}` {
		t.Fatalf("payload = %q", payload)
	}
}
