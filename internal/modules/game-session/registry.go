package gamesession

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Registry tracks the coordinators of every running session.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Coordinator
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[uuid.UUID]*Coordinator)}
}

// Start registers c and runs it until it stops, after which it is removed.
func (r *Registry) Start(ctx context.Context, c *Coordinator) {
	id := c.ID()

	r.mu.Lock()
	r.sessions[id] = c
	r.mu.Unlock()

	c.OnClose(func() {
		r.mu.Lock()
		delete(r.sessions, id)
		r.mu.Unlock()
	})

	go c.Run(ctx)
}

func (r *Registry) Get(id uuid.UUID) (*Coordinator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	return c, nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
