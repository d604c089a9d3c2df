// Package gateway provides the payment-gateway facade adapters: a
// registry resolving facades by payment-method code, and the HTTP bridge
// client that fronts the external gateway library.
package gateway

import (
	"fmt"
	"sync"

	"github.com/shopkit/shopkit-payments/internal/core/domain"
	"github.com/shopkit/shopkit-payments/internal/core/ports"
)

// Constructor builds a gateway facade. Construction may fail - a
// misconfigured facade is reported once, at activation time, through the
// availability check.
type Constructor func() (ports.GatewayFacade, error)

// Registry maps payment-method codes to facade constructors.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewRegistry creates an empty facade registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// Register registers a facade constructor under a payment-method code.
func (r *Registry) Register(code string, build Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[code] = build
}

// Resolve builds the facade registered under code. Each call constructs a
// fresh instance; facades carry per-request credential state.
func (r *Registry) Resolve(code string) (ports.GatewayFacade, error) {
	r.mu.RLock()
	build, ok := r.constructors[code]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.NewServiceError(domain.ErrGatewayUnavailable,
			fmt.Sprintf("no gateway registered for %q", code), "GATEWAY_UNAVAILABLE")
	}
	facade, err := build()
	if err != nil {
		return nil, domain.NewServiceError(domain.ErrGatewayUnavailable,
			fmt.Sprintf("building gateway for %q: %v", code, err), "GATEWAY_UNAVAILABLE")
	}
	return facade, nil
}
