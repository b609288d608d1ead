package publisher

import (
	"context"
	"sync"
)

// Memory keeps outcomes in process. It backs tests and the CLI.
type Memory struct {
	mu       sync.Mutex
	outcomes []Outcome
	err      error
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Publish(_ context.Context, outcome Outcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.outcomes = append(m.outcomes, outcome)
	return nil
}

// FailWith makes every later Publish return err. Pass nil to recover.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Outcomes returns a copy of everything published so far.
func (m *Memory) Outcomes() []Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Outcome, len(m.outcomes))
	copy(out, m.outcomes)
	return out
}

func (m *Memory) Close() error {
	return nil
}
