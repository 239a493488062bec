package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MockResponse scripts one MockProvider reply. When Err is set it is
// returned as is and Content is ignored.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider serves scripted replies in order. Content still goes through
// schema validation, so tests see the same errors a live model would cause.
// It backs the "mock" provider used for offline runs.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	served int

	// Calls records every request in arrival order.
	Calls []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if m.served >= len(m.script) {
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("mock model has no reply scripted for call %d", len(m.Calls))}
	}
	reply := m.script[m.served]
	m.served++

	if reply.Err != nil {
		return nil, reply.Err
	}
	return finish(req, reply.Content, m.ModelID(), StopEnd, reply.Usage)
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse scripts another reply after the existing ones.
func (m *MockProvider) AddResponse(r MockResponse) {
	m.mu.Lock()
	m.script = append(m.script, r)
	m.mu.Unlock()
}

// CallCount is len(Calls), safe to read while requests are running.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Pending returns how many scripted replies have not been served.
func (m *MockProvider) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.script) - m.served
}
