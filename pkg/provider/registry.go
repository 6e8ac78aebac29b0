package provider

import (
	"fmt"
	"strings"
	"sync"

	"github.com/amirasaad/currency-proxy/pkg/domain"
)

// Registry maps provider names to adapter instances. Name matching is
// case-insensitive and resolution fails closed on unknown names.
type Registry struct {
	providers map[string]CurrencyProvider
	mu        sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]CurrencyProvider),
	}
}

// Register adds or replaces a provider under the given name.
func (r *Registry) Register(name string, p CurrencyProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[strings.ToLower(name)] = p
}

// Resolve returns the provider registered under name, ignoring case.
func (r *Registry) Resolve(name string) (CurrencyProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, exists := r.providers[strings.ToLower(name)]; exists {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedProvider, name)
}

// Names returns the registered provider names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
