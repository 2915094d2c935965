package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/syssam/javagen/dialect/inspect"
	sqldialect "github.com/syssam/javagen/dialect/sql"
)

// Conn is one registered database connection.
type Conn struct {
	ID        string
	Dialect   string
	Driver    *sqldialect.Driver
	Inspector *inspect.Inspector
}

// Registry tracks the open connections of one server session, keyed by the
// opaque ids handed back to the client. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*Conn
}

// NewRegistry creates an empty connection registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*Conn)}
}

// Open dials the database, verifies the connection and registers it.
func (r *Registry) Open(ctx context.Context, dialect, dsn string) (*Conn, error) {
	drv, err := sqldialect.Open(dialect, dsn)
	if err != nil {
		return nil, err
	}
	if err := drv.DB().PingContext(ctx); err != nil {
		drv.Close()
		return nil, fmt.Errorf("javagen: ping %s: %w", dialect, err)
	}
	conn := &Conn{
		ID:        uuid.NewString(),
		Dialect:   drv.Dialect(),
		Driver:    drv,
		Inspector: inspect.New(drv),
	}
	r.mu.Lock()
	r.conns[conn.ID] = conn
	r.mu.Unlock()
	return conn, nil
}

// Get looks up a connection by id.
func (r *Registry) Get(id string) (*Conn, error) {
	r.mu.RLock()
	conn, ok := r.conns[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("javagen: unknown connection id %q", id)
	}
	return conn, nil
}

// Close closes and removes one connection.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	conn, ok := r.conns[id]
	delete(r.conns, id)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("javagen: unknown connection id %q", id)
	}
	return conn.Driver.Close()
}

// CloseAll closes every registered connection. The first error wins.
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	conns := r.conns
	r.conns = make(map[string]*Conn)
	r.mu.Unlock()
	var first error
	for _, conn := range conns {
		if err := conn.Driver.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
