package routing

import (
	"context"
	"sync"

	"resilient-route-service/internal/domain"
)

// MockRouteProvider is a fixture-backed provider for tests.
type MockRouteProvider struct {
	mu     sync.Mutex
	Routes []domain.RouteCandidate
	Err    error
	calls  int
}

func (m *MockRouteProvider) FetchRoutes(_ context.Context, _, _ domain.Coordinates, maxAlternatives int) ([]domain.RouteCandidate, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if maxAlternatives > 0 && len(m.Routes) > maxAlternatives {
		return m.Routes[:maxAlternatives], nil
	}
	return m.Routes, nil
}

func (m *MockRouteProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
