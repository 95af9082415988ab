package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"sync"

	"resilient-route-service/internal/domain"
	"resilient-route-service/internal/ports"
)

// Wire payload submitted to the worker on stdin.
type scoringRequest struct {
	Mode         string                  `json:"mode"`
	Candidates   []domain.RouteCandidate `json:"candidates"`
	OriginCoords *domain.Coordinates     `json:"originCoords,omitempty"`
	DestCoords   *domain.Coordinates     `json:"destCoords,omitempty"`
	OriginName   string                  `json:"originName,omitempty"`
	DestName     string                  `json:"destName,omitempty"`
	Priorities   *domain.PriorityWeights `json:"priorities,omitempty"`
}

// ProcessScorer runs the scoring worker as a child process per request. The
// request payload goes to stdin exactly once, then stdin is closed; stdout
// and stderr are captured into one buffer in arrival order and mirrored to
// the service log as they arrive.
type ProcessScorer struct {
	command string
	args    []string
}

// NewProcessScorer builds a scorer from a command line, e.g.
// "python3 worker/score.py". The command is split on whitespace; no shell
// interpretation is applied.
func NewProcessScorer(command string) (*ProcessScorer, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("process scorer: empty command")
	}
	return &ProcessScorer{command: fields[0], args: fields[1:]}, nil
}

func (s *ProcessScorer) ScoreFull(ctx context.Context, req ports.FullScoreRequest) (*ports.ScoringResult, error) {
	origin := req.OriginCoords
	dest := req.DestCoords
	payload := scoringRequest{
		Mode:         "full",
		Candidates:   req.Candidates,
		OriginCoords: &origin,
		DestCoords:   &dest,
		OriginName:   req.OriginName,
		DestName:     req.DestName,
	}
	if !req.Priorities.IsZero() {
		p := req.Priorities
		payload.Priorities = &p
	}
	return s.run(ctx, payload)
}

func (s *ProcessScorer) Rescore(ctx context.Context, req ports.RescoreRequest) (*ports.ScoringResult, error) {
	payload := scoringRequest{
		Mode:       "rescore",
		Candidates: req.Candidates,
	}
	if !req.Priorities.IsZero() {
		p := req.Priorities
		payload.Priorities = &p
	}
	return s.run(ctx, payload)
}

func (s *ProcessScorer) run(ctx context.Context, payload scoringRequest) (*ports.ScoringResult, error) {
	input, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("worker: marshal payload: %w", err)
	}

	cmd := exec.CommandContext(ctx, s.command, s.args...)
	capture := newCaptureWriter()
	cmd.Stdout = capture
	cmd.Stderr = capture

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("worker: open stdin: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, &domain.WorkerError{ExitCode: -1, Err: fmt.Errorf("start worker: %w", err)}
	}

	// Write the payload once, then close so the worker sees EOF.
	if _, err := stdin.Write(input); err != nil {
		stdin.Close()
		cmd.Wait()
		return nil, &domain.WorkerError{ExitCode: -1, Diagnostics: capture.Tail(), Err: fmt.Errorf("write payload: %w", err)}
	}
	if err := stdin.Close(); err != nil {
		cmd.Wait()
		return nil, &domain.WorkerError{ExitCode: -1, Diagnostics: capture.Tail(), Err: fmt.Errorf("close stdin: %w", err)}
	}

	waitErr := make(chan error, 1)
	go func() { waitErr <- cmd.Wait() }()

	select {
	case err := <-waitErr:
		if err != nil {
			exitCode := -1
			if ee, ok := err.(*exec.ExitError); ok {
				exitCode = ee.ExitCode()
			}
			return nil, &domain.WorkerError{ExitCode: exitCode, Diagnostics: capture.Tail(), Err: err}
		}
	case <-ctx.Done():
		// CommandContext kills the process; collect the Wait result so the
		// goroutine does not leak.
		<-waitErr
		return nil, ctx.Err()
	}

	raw, err := ExtractPayload(capture.String())
	if err != nil {
		return nil, err
	}

	var result ports.ScoringResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, &domain.OutputFormatError{
			Reason: fmt.Sprintf("malformed JSON payload: %v", err),
			Tail:   capture.Tail(),
		}
	}
	return &result, nil
}

// captureWriter accumulates worker output in arrival order and mirrors
// complete lines to the service log. Stdout and stderr share one instance,
// so the mutex also serializes their interleaving.
type captureWriter struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	pending []byte
}

func newCaptureWriter() *captureWriter {
	return &captureWriter{}
}

func (w *captureWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf.Write(p)

	w.pending = append(w.pending, p...)
	for {
		idx := bytes.IndexByte(w.pending, '\n')
		if idx < 0 {
			break
		}
		line := strings.TrimRight(string(w.pending[:idx]), "\r")
		if line != "" {
			log.Printf("[worker] %s", line)
		}
		w.pending = w.pending[idx+1:]
	}
	return len(p), nil
}

func (w *captureWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

// Tail returns the last portion of captured output for error diagnostics.
func (w *captureWriter) Tail() string {
	return tail(w.String())
}
