package service

import (
	"fmt"
	"sync"

	"github.com/gaurav-prasanna/finpipe/sources"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultWorkers = 4

// WrongTypeError reports a source whose parser lacks the requested methods.
type WrongTypeError struct {
	Source sources.ID
	Got    sources.Parser
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("source %q is served by %T, which does not support this operation", string(e.Source), e.Got)
}

// Manager creates parsers on first use and keeps one per source for its
// lifetime. It is safe for concurrent use.
type Manager struct {
	registry *Registry
	tk       sources.Toolkit
	workers  int
	log      *zap.Logger

	mu      sync.RWMutex
	parsers map[sources.ID]sources.Parser
	group   singleflight.Group
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithWorkers bounds the goroutines of one batch call. Values below one are
// ignored.
func WithWorkers(n int) ManagerOption {
	return func(m *Manager) {
		if n >= 1 {
			m.workers = n
		}
	}
}

// WithLogger sets the manager's logger.
func WithLogger(l *zap.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// NewManager creates a Manager over registry. Parsers receive tk.
func NewManager(registry *Registry, tk sources.Toolkit, opts ...ManagerOption) *Manager {
	m := &Manager{
		registry: registry,
		tk:       tk,
		workers:  defaultWorkers,
		log:      zap.NewNop(),
		parsers:  make(map[sources.ID]sources.Parser),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Sources returns the identifiers the manager can serve.
func (m *Manager) Sources() []sources.ID { return m.registry.IDs() }

// Parser returns the parser for id, constructing it on first use.
// Concurrent first calls for the same id share one construction.
func (m *Manager) Parser(id sources.ID) (sources.Parser, error) {
	if p, ok := m.cached(id); ok {
		return p, nil
	}
	v, err, _ := m.group.Do(string(id), func() (any, error) {
		if p, ok := m.cached(id); ok {
			return p, nil
		}
		p, err := m.registry.Create(id, m.tk)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.parsers[id] = p
		m.mu.Unlock()
		m.log.Debug("parser constructed", zap.String("source", string(id)))
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(sources.Parser), nil
}

func (m *Manager) cached(id sources.ID) (sources.Parser, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.parsers[id]
	return p, ok
}

// parserAs resolves id and asserts the parser to T.
func parserAs[T any](m *Manager, id sources.ID) (T, error) {
	var zero T
	p, err := m.Parser(id)
	if err != nil {
		return zero, err
	}
	t, ok := p.(T)
	if !ok {
		return zero, &WrongTypeError{Source: id, Got: p}
	}
	return t, nil
}
