// Package registry maps save-type tags to persistence strategies.
//
// Adding a new medium means registering one new tag with one new strategy;
// nothing already registered changes.
package registry

import (
	"errors"
	"sort"
	"sync"

	"github.com/aalvaropc/factura/internal/domain"
	"github.com/aalvaropc/factura/internal/ports"
)

type Registry struct {
	mu         sync.RWMutex
	strategies map[domain.SaveType]ports.InvoicePersister
}

func New() *Registry {
	return &Registry{
		strategies: map[domain.SaveType]ports.InvoicePersister{},
	}
}

// Register binds tag to a strategy. Duplicate tags are rejected so a later
// registration can never silently shadow an earlier one.
func (r *Registry) Register(tag domain.SaveType, p ports.InvoicePersister) error {
	if tag == "" {
		return &domain.OpError{
			Op:   "registry.register",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("empty save type tag"),
		}
	}
	if p == nil {
		return &domain.OpError{
			Op:   "registry.register",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("nil strategy for tag " + tag.String()),
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.strategies[tag]; exists {
		return &domain.OpError{
			Op:   "registry.register",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("save type already registered: " + tag.String()),
		}
	}
	r.strategies[tag] = p
	return nil
}

// Resolve is a pure lookup: the same tag always yields the same strategy,
// and an unregistered tag always fails. There is no default strategy.
func (r *Registry) Resolve(tag domain.SaveType) (ports.InvoicePersister, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.strategies[tag]
	if !ok {
		return nil, &domain.OpError{
			Op:   "registry.resolve",
			Kind: domain.KindUnknownSaveType,
			Path: tag.String(),
			Err:  domain.ErrUnknownSaveType,
		}
	}
	return p, nil
}

// Types lists registered tags, sorted for stable output.
func (r *Registry) Types() []domain.SaveType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.SaveType, 0, len(r.strategies))
	for tag := range r.strategies {
		out = append(out, tag)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var _ ports.StrategyResolver = (*Registry)(nil)
