package scoring

import (
	"context"
	"sync"

	"resilient-route-service/internal/ports"
)

// MockScorer is a fixture-backed scorer for tests.
type MockScorer struct {
	mu           sync.Mutex
	FullResult   *ports.ScoringResult
	RescoreFn    func(req ports.RescoreRequest) (*ports.ScoringResult, error)
	Err          error
	fullCalls    int
	rescoreCalls int
	LastFull     ports.FullScoreRequest
	LastRescore  ports.RescoreRequest
}

func (m *MockScorer) ScoreFull(_ context.Context, req ports.FullScoreRequest) (*ports.ScoringResult, error) {
	m.mu.Lock()
	m.fullCalls++
	m.LastFull = req
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.FullResult, nil
}

func (m *MockScorer) Rescore(_ context.Context, req ports.RescoreRequest) (*ports.ScoringResult, error) {
	m.mu.Lock()
	m.rescoreCalls++
	m.LastRescore = req
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.RescoreFn != nil {
		return m.RescoreFn(req)
	}
	return m.FullResult, nil
}

func (m *MockScorer) FullCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fullCalls
}

func (m *MockScorer) RescoreCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rescoreCalls
}
