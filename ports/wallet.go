package ports

import "context"

// ReadyState describes whether a wallet provider is usable in the current
// browser or device context.
type ReadyState string

const (
	ReadyStateInstalled   ReadyState = "installed"
	ReadyStateLoadable    ReadyState = "loadable"
	ReadyStateNotDetected ReadyState = "not-detected"
	ReadyStateUnsupported ReadyState = "unsupported"
)

// Wallet is the capability contract over one concrete wallet provider.
// Consumers depend only on this interface, never on a concrete adapter.
type Wallet interface {
	Name() string
	Icon() string
	ReadyState() ReadyState

	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Connected() bool

	// PublicKey returns the connected account's base58 public key,
	// or the empty string when not connected.
	PublicKey() string

	// SignMessage signs the exact byte sequence with the wallet's key.
	// A user decline surfaces as an error wrapping core.ErrWalletRejected.
	SignMessage(ctx context.Context, message []byte) ([]byte, error)
}

// WalletDirectory is the shared select/connect surface over the known wallet
// adapters. Only one connect attempt may be pending against it at a time.
type WalletDirectory interface {
	// Wallets lists the known adapters in registration order.
	Wallets() []Wallet

	// Select makes the named adapter the active wallet.
	Select(name string) (Wallet, error)

	// Active returns the currently selected wallet, or nil.
	Active() Wallet
}
