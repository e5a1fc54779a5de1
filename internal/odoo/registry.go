package odoo

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bmya/odoo-gateway/internal/domain/errors"
)

// Registry owns one client per configured tenant. It is constructed once at
// startup from the tenant configuration and passed to call sites; clients
// are built lazily on first use and cached for the registry's lifetime.
type Registry struct {
	mu      sync.Mutex
	tenants map[string]ClientConfig
	clients map[string]*Client
}

// NewRegistry creates a registry over the given tenant configurations,
// keyed by tenant label.
func NewRegistry(tenants map[string]ClientConfig) *Registry {
	return &Registry{
		tenants: tenants,
		clients: make(map[string]*Client),
	}
}

// Client returns the cached client for the tenant, creating it on first
// use. Unknown tenants yield a configuration error naming the available
// tenants.
func (r *Registry) Client(tenant string) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if client, ok := r.clients[tenant]; ok {
		return client, nil
	}

	cfg, ok := r.tenants[tenant]
	if !ok {
		return nil, errors.NewConfigurationError(fmt.Sprintf(
			"company %q not found, available companies: %s",
			tenant, strings.Join(r.tenantNames(), ", "),
		))
	}

	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	r.clients[tenant] = client
	return client, nil
}

// Tenants returns the configured tenant labels in sorted order.
func (r *Registry) Tenants() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tenantNames()
}

func (r *Registry) tenantNames() []string {
	names := make([]string, 0, len(r.tenants))
	for name := range r.tenants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
