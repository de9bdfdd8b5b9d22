package wallet

import (
	"fmt"
	"sync"

	"github.com/lil-gargs/portal/ports"
)

// Registry holds the known wallet adapters and tracks which one is active.
// It is the single shared select/connect surface the mobile bridge and the
// signature flow operate against.
type Registry struct {
	mu      sync.RWMutex
	wallets []ports.Wallet
	active  ports.Wallet
}

// NewRegistry creates a registry over the given adapters, preserving order
func NewRegistry(wallets ...ports.Wallet) *Registry {
	return &Registry{wallets: wallets}
}

// Wallets lists the known adapters in registration order
func (r *Registry) Wallets() []ports.Wallet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ports.Wallet, len(r.wallets))
	copy(out, r.wallets)
	return out
}

// Select makes the named adapter the active wallet
func (r *Registry) Select(name string) (ports.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, w := range r.wallets {
		if w.Name() == name {
			r.active = w
			return w, nil
		}
	}
	return nil, fmt.Errorf("unknown wallet %q", name)
}

// Active returns the currently selected wallet, or nil
func (r *Registry) Active() ports.Wallet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.active
}
