package domain

import "fmt"

// Error kinds for the analysis pipeline. Every terminal kind aborts the
// request; handlers map them to HTTP statuses with errors.As.

// InputError reports a missing or empty required input. Raised before any
// external call is made.
type InputError struct {
	Field string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("missing required input: %s", e.Field)
}

// GeocodeSide identifies which endpoint of the request failed to resolve.
type GeocodeSide string

const (
	GeocodeOrigin      GeocodeSide = "origin"
	GeocodeDestination GeocodeSide = "destination"
)

// GeocodeError reports that a place name could not be resolved to
// coordinates. Err is nil when the provider answered with no matches.
type GeocodeError struct {
	Side  GeocodeSide
	Place string
	Err   error
}

func (e *GeocodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geocode %s %q: %v", e.Side, e.Place, e.Err)
	}
	return fmt.Sprintf("geocode %s %q: no match", e.Side, e.Place)
}

func (e *GeocodeError) Unwrap() error { return e.Err }

// FetchError reports that both route providers failed to return candidates.
type FetchError struct {
	PrimaryErr   error
	SecondaryErr error
}

func (e *FetchError) Error() string {
	if e.PrimaryErr == nil && e.SecondaryErr == nil {
		return "fetch route candidates: no routes available"
	}
	return fmt.Sprintf("fetch route candidates: primary: %v; secondary: %v", e.PrimaryErr, e.SecondaryErr)
}

// WorkerError reports a scoring worker process that exited non-zero.
// Diagnostics carries a bounded tail of the captured output stream.
type WorkerError struct {
	ExitCode    int
	Diagnostics string
	Err         error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("scoring worker exited with code %d: %v", e.ExitCode, e.Err)
}

func (e *WorkerError) Unwrap() error { return e.Err }

// OutputFormatError reports that no structured payload could be recovered
// from the worker's output, or that the recovered payload did not parse.
// The two cases carry distinct reasons; Tail is a bounded slice of the raw
// output for diagnosis.
type OutputFormatError struct {
	Reason string
	Tail   string
}

func (e *OutputFormatError) Error() string {
	return fmt.Sprintf("worker output: %s", e.Reason)
}

// CacheMissError reports a rescore request for a key with no prior
// successful full analysis.
type CacheMissError struct {
	Key string
}

func (e *CacheMissError) Error() string {
	return fmt.Sprintf("no cached analysis for %q", e.Key)
}

// ScoreMatchWarning records a candidate whose score record was located by
// position or replaced by defaults rather than matched by name. Non-fatal:
// it is logged and processing continues.
type ScoreMatchWarning struct {
	CandidateName string
	RecordName    string // empty when defaults were substituted
	Positional    bool
}

func (w *ScoreMatchWarning) Error() string {
	if w.Positional {
		return fmt.Sprintf("score record for candidate %q matched by position only (record name %q)", w.CandidateName, w.RecordName)
	}
	return fmt.Sprintf("no score record for candidate %q; default sub-scores substituted", w.CandidateName)
}
