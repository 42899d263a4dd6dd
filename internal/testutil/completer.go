// Package testutil provides deterministic test doubles shared across
// packages.
package testutil

import (
	"context"
	"strings"
	"sync"
	"time"
)

type completerRule struct {
	pattern  string // substring match in the prompt, lowercase
	response string
}

// MockCompleter provides deterministic model responses for testing.
// It matches prompts against registered patterns and returns the
// corresponding response; patterns are checked in registration order
// and the first match wins.
//
// Thread-safe for concurrent use.
type MockCompleter struct {
	mu       sync.Mutex
	rules    []completerRule
	fallback string
	err      error
	delay    time.Duration
	prompts  []string
}

// NewMockCompleter creates a mock with the given fallback response,
// returned when no pattern matches.
func NewMockCompleter(fallback string) *MockCompleter {
	return &MockCompleter{fallback: fallback}
}

// AddResponse registers a pattern-response pair. Matching is
// case-insensitive substring containment.
func (m *MockCompleter) AddResponse(pattern, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, completerRule{pattern: strings.ToLower(pattern), response: response})
}

// SetError makes every subsequent call fail with err.
func (m *MockCompleter) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetDelay makes every subsequent call wait d before responding,
// honoring context cancellation. Use to force timeouts.
func (m *MockCompleter) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// Prompts returns a copy of all prompts received so far.
func (m *MockCompleter) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]string, len(m.prompts))
	copy(cp, m.prompts)
	return cp
}

// Complete implements the completer capability.
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	err := m.err
	delay := m.delay
	rules := m.rules
	fallback := m.fallback
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}
	if err != nil {
		return "", err
	}

	lower := strings.ToLower(prompt)
	for _, r := range rules {
		if strings.Contains(lower, r.pattern) {
			return r.response, nil
		}
	}
	return fallback, nil
}
