package repositories

import (
	"context"
	"sync"

	"resilient-route-service/internal/domain"
)

// In-memory repositories for tests.

type MockRouteRepository struct {
	mu     sync.Mutex
	Saved  []domain.RecommendedRoute
	SaveFn func(route domain.RecommendedRoute) error
}

func (m *MockRouteRepository) SaveRecommendedRoute(_ context.Context, route domain.RecommendedRoute) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveFn != nil {
		if err := m.SaveFn(route); err != nil {
			return err
		}
	}
	m.Saved = append(m.Saved, route)
	return nil
}

func (m *MockRouteRepository) SavedRoutes() []domain.RecommendedRoute {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.RecommendedRoute, len(m.Saved))
	copy(out, m.Saved)
	return out
}

type MockTraceRepository struct {
	mu     sync.Mutex
	Points []domain.CoveredPoint
	Err    error
}

func (m *MockTraceRepository) AppendCoveredPoint(_ context.Context, point domain.CoveredPoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Points = append(m.Points, point)
	return nil
}

func (m *MockTraceRepository) AppendedPoints() []domain.CoveredPoint {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.CoveredPoint, len(m.Points))
	copy(out, m.Points)
	return out
}
