// Package service owns parser construction and the flat call surface the CLI
// and other collaborators use.
package service

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gaurav-prasanna/finpipe/sources"
	"github.com/gaurav-prasanna/finpipe/sources/crypto"
	"github.com/gaurav-prasanna/finpipe/sources/exchange"
	"github.com/gaurav-prasanna/finpipe/sources/fnguide"
	"github.com/gaurav-prasanna/finpipe/sources/interest"
	"github.com/gaurav-prasanna/finpipe/sources/market"
	"github.com/gaurav-prasanna/finpipe/sources/marketwatch"
	"github.com/gaurav-prasanna/finpipe/sources/materials"
	"github.com/gaurav-prasanna/finpipe/sources/quote"
	"github.com/gaurav-prasanna/finpipe/sources/ticker"
	"github.com/gaurav-prasanna/finpipe/sources/yahoo"
	"go.uber.org/zap"
)

// ErrUnknownSource is matched by every UnknownSourceError.
var ErrUnknownSource = errors.New("unknown source")

// UnknownSourceError reports a source that was never registered.
type UnknownSourceError struct {
	Source sources.ID
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("unknown source %q", string(e.Source))
}

// Is makes errors.Is(err, ErrUnknownSource) hold.
func (e *UnknownSourceError) Is(target error) bool { return target == ErrUnknownSource }

// Constructor builds one parser from the shared toolkit.
type Constructor func(tk sources.Toolkit) (sources.Parser, error)

// builtins wires every source identifier to its parser.
var builtins = map[sources.ID]Constructor{
	sources.Ticker:      func(tk sources.Toolkit) (sources.Parser, error) { return ticker.New(tk), nil },
	sources.FnGuide:     func(tk sources.Toolkit) (sources.Parser, error) { return fnguide.New(tk), nil },
	sources.Market:      func(tk sources.Toolkit) (sources.Parser, error) { return market.New(tk), nil },
	sources.Interest:    func(tk sources.Toolkit) (sources.Parser, error) { return interest.New(tk), nil },
	sources.Exchange:    func(tk sources.Toolkit) (sources.Parser, error) { return exchange.New(tk), nil },
	sources.Materials:   func(tk sources.Toolkit) (sources.Parser, error) { return materials.New(tk), nil },
	sources.Crypto:      func(tk sources.Toolkit) (sources.Parser, error) { return crypto.New(tk), nil },
	sources.Quote:       func(tk sources.Toolkit) (sources.Parser, error) { return quote.New(tk), nil },
	sources.Yahoo:       func(tk sources.Toolkit) (sources.Parser, error) { return yahoo.New(tk), nil },
	sources.MarketWatch: func(tk sources.Toolkit) (sources.Parser, error) { return marketwatch.New(tk), nil },
}

// Registry maps source identifiers to constructors. Registration is expected
// to finish before the first Create.
type Registry struct {
	mu    sync.RWMutex
	ctors map[sources.ID]Constructor
	log   *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{ctors: make(map[sources.ID]Constructor), log: log}
}

// DefaultRegistry returns a registry holding every built-in source.
func DefaultRegistry(log *zap.Logger) *Registry {
	r := NewRegistry(log)
	for _, id := range sources.All() {
		r.Register(id, builtins[id])
	}
	return r
}

// Register binds id to ctor. Registering an id twice replaces the first
// constructor and is logged as a configuration error.
func (r *Registry) Register(id sources.ID, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.ctors[id]; dup {
		r.log.Error("source registered twice, replacing constructor", zap.String("source", string(id)))
	}
	r.ctors[id] = ctor
}

// Create builds a new parser for id.
func (r *Registry) Create(id sources.ID, tk sources.Toolkit) (sources.Parser, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[id]
	r.mu.RUnlock()
	if !ok || ctor == nil {
		return nil, &UnknownSourceError{Source: id}
	}
	p, err := ctor(tk)
	if err != nil {
		return nil, fmt.Errorf("constructing %s parser: %w", id, err)
	}
	return p, nil
}

// IDs returns the registered identifiers sorted by name.
func (r *Registry) IDs() []sources.ID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]sources.ID, 0, len(r.ctors))
	for id := range r.ctors {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
