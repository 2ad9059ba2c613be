package ledger

import (
	"context"
	"sync"
)

// Memory is an in-process ledger. The server uses it when no Postgres DSN is
// configured, and tests use it as a deterministic double. Unknown players are
// seeded with the configured starting balance on first touch.
type Memory struct {
	mu       sync.Mutex
	initial  int64
	balances map[string]int64
	sessions []Session
}

func NewMemory(initial int64) *Memory {
	return &Memory{initial: initial, balances: map[string]int64{}}
}

func (m *Memory) EnsureAccount(_ context.Context, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balance(playerID)
	return nil
}

func (m *Memory) Balance(_ context.Context, playerID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balance(playerID), nil
}

func (m *Memory) ApplyNetDelta(_ context.Context, playerID string, delta int64, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[playerID] = m.balance(playerID) + delta
	return nil
}

func (m *Memory) RecordSession(_ context.Context, sess Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, sess)
	return nil
}

// SetBalance pins a player's balance, mostly for tests.
func (m *Memory) SetBalance(playerID string, balance int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[playerID] = balance
}

// Sessions returns a copy of every recorded session.
func (m *Memory) Sessions() []Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Session(nil), m.sessions...)
}

func (m *Memory) balance(playerID string) int64 {
	if b, ok := m.balances[playerID]; ok {
		return b
	}
	m.balances[playerID] = m.initial
	return m.initial
}
