package geocode

import (
	"context"
	"strings"
	"sync"

	"resilient-route-service/internal/ports"
)

// MockGeocoder is a fixture-backed geocoder for tests.
type MockGeocoder struct {
	mu      sync.Mutex
	Places  map[string]ports.GeocodeResult
	Err     error
	CallLog []string
}

func NewMockGeocoder() *MockGeocoder {
	return &MockGeocoder{Places: make(map[string]ports.GeocodeResult)}
}

func (m *MockGeocoder) Resolve(_ context.Context, place string) (ports.GeocodeResult, bool, error) {
	m.mu.Lock()
	m.CallLog = append(m.CallLog, place)
	m.mu.Unlock()
	if m.Err != nil {
		return ports.GeocodeResult{}, false, m.Err
	}
	result, ok := m.Places[strings.ToLower(place)]
	return result, ok, nil
}

// Calls returns how many lookups were made.
func (m *MockGeocoder) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.CallLog)
}
