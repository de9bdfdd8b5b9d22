package wallet

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"sync"

	"github.com/mr-tron/base58"

	"github.com/lil-gargs/portal/core"
	"github.com/lil-gargs/portal/ports"
)

// Keypair is a wallet adapter backed by a local ed25519 keypair. It signs
// immediately without user interaction, which makes it suitable for the
// headless portal agent and for tests.
type Keypair struct {
	name string
	icon string
	priv ed25519.PrivateKey

	mu        sync.Mutex
	connected bool
}

// NewKeypair creates a wallet adapter around an existing private key
func NewKeypair(name string, priv ed25519.PrivateKey) *Keypair {
	return &Keypair{name: name, priv: priv}
}

// GenerateKeypair creates a wallet adapter with a freshly generated key
func GenerateKeypair(name string) (*Keypair, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate keypair: %w", err)
	}
	return NewKeypair(name, priv), nil
}

// Name returns the adapter name
func (k *Keypair) Name() string { return k.name }

// Icon returns the adapter icon URL
func (k *Keypair) Icon() string { return k.icon }

// ReadyState reports the adapter as installed; the key is always on hand.
func (k *Keypair) ReadyState() ports.ReadyState { return ports.ReadyStateInstalled }

// Connect marks the wallet as connected
func (k *Keypair) Connect(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.connected = true
	return nil
}

// Disconnect marks the wallet as disconnected
func (k *Keypair) Disconnect(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.connected = false
	return nil
}

// Connected reports whether the wallet is connected
func (k *Keypair) Connected() bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	return k.connected
}

// PublicKey returns the base58 public key, or empty when not connected
func (k *Keypair) PublicKey() string {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.connected {
		return ""
	}
	return base58.Encode(k.priv.Public().(ed25519.PublicKey))
}

// SignMessage signs the exact byte sequence with the wallet's key
func (k *Keypair) SignMessage(ctx context.Context, message []byte) ([]byte, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.connected {
		return nil, core.ErrNotConnected
	}
	return ed25519.Sign(k.priv, message), nil
}
