package payment

import (
	"sync"

	"github.com/shashiranjanraj/vendika/app/errs"
)

// Registry maps provider names to their Gateway. Populated once at bootstrap.
type Registry struct {
	mu       sync.RWMutex
	gateways map[string]Gateway
}

func NewRegistry() *Registry {
	return &Registry{gateways: make(map[string]Gateway)}
}

func (r *Registry) Register(g Gateway) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gateways[g.Provider()] = g
}

// Gateway returns the provider's implementation, or ErrIntegrationUnavailable
// for providers this deployment does not carry.
func (r *Registry) Gateway(provider string) (Gateway, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.gateways[provider]
	if !ok {
		return nil, errs.ErrIntegrationUnavailable
	}
	return g, nil
}

// Providers lists the registered provider names.
func (r *Registry) Providers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.gateways))
	for name := range r.gateways {
		names = append(names, name)
	}
	return names
}
