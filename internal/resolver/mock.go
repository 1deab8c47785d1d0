package resolver

import (
	"context"
	"sync"
)

// Mock is a test double for Extractor and Resolver.
// It is safe for use from resolution goroutines.
type Mock struct {
	mu      sync.Mutex
	tracks  map[string]Track
	err     error
	queries []string
}

// NewMock creates a mock that resolves every URL to a generic track
// unless a specific track is registered with Set.
func NewMock() *Mock {
	return &Mock{tracks: make(map[string]Track)}
}

// Set registers the track returned for url.
func (m *Mock) Set(url string, t Track) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tracks[url] = t
}

// SetError makes every call fail with err.
func (m *Mock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Queries returns the URLs or queries received so far.
func (m *Mock) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.queries))
	copy(out, m.queries)
	return out
}

// Name implements Extractor.
func (m *Mock) Name() string { return "mock" }

// Extract implements Extractor.
func (m *Mock) Extract(_ context.Context, url string) (Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, url)
	if m.err != nil {
		return Track{}, m.err
	}
	if t, ok := m.tracks[url]; ok {
		return t, nil
	}
	return Track{Title: url, Channel: "mock", StreamURL: "https://stream.invalid/" + url}, nil
}

// Resolve implements Resolver without normalization.
func (m *Mock) Resolve(ctx context.Context, query string) (Track, error) {
	return m.Extract(ctx, query)
}
