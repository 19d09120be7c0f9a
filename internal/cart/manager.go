package cart

import "sync"

// Manager owns the per-session carts. Carts are created on first use and
// live in memory only; a restart starts every session empty again.
type Manager struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewManager creates an empty cart manager.
func NewManager() *Manager {
	return &Manager{carts: make(map[string]*Cart)}
}

// Cart returns the cart for the session, creating it if needed.
func (m *Manager) Cart(sessionID string) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.carts[sessionID]
	if !ok {
		c = New()
		m.carts[sessionID] = c
	}
	return c
}

// Drop forgets the cart for the session.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
}

// Len reports how many session carts are live.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.carts)
}
