package service

import (
	"context"
	"net/url"
	"regexp"
	"sync"

	"github.com/lil-gargs/portal/core"
	"github.com/lil-gargs/portal/internal/log"
	"github.com/lil-gargs/portal/ports"
)

var mobileUserAgent = regexp.MustCompile(`(?i)(Android|iPhone|iPad|iPod|IEMobile|BlackBerry|Opera Mini)`)

// IsMobileUserAgent reports whether the user agent belongs to a mobile browser.
func IsMobileUserAgent(ua string) bool {
	return mobileUserAgent.MatchString(ua)
}

// DeepLinkWallet is a catalogue entry for a wallet that does not participate
// in the in-page capability list: selecting one hands the whole session off to
// the wallet app's in-app browser via a deep link.
type DeepLinkWallet struct {
	Name        string
	Description string
	Accent      string

	// browseBase is the provider's browse endpoint up to and including the
	// query parameter, e.g. "https://phantom.app/ul/v1/browse?url=".
	browseBase string
}

// BuildLink returns the deep link for reopening the portal URL inside the
// wallet app. The portal URL is percent-encoded exactly as given, unmodified.
func (w DeepLinkWallet) BuildLink(portalURL string) string {
	return w.browseBase + url.QueryEscape(portalURL)
}

var fallbackWallets = []DeepLinkWallet{
	{
		Name:        "Phantom",
		Description: "Open this portal in the Phantom in-app browser.",
		Accent:      "from-[#5340FF] to-[#8E64FF]",
		browseBase:  "https://phantom.app/ul/v1/browse?url=",
	},
	{
		Name:        "Solflare",
		Description: "Launch Solflare mobile and continue verification there.",
		Accent:      "from-[#FFB347] to-[#FF5F6D]",
		browseBase:  "https://solflare.com/ul/v1/browse?url=",
	},
	{
		Name:        "Backpack",
		Description: "Open with Backpack browser for seamless signing.",
		Accent:      "from-[#00C6FB] to-[#005BEA]",
		browseBase:  "https://backpack.app/ul/browse?url=",
	},
	{
		Name:        "OKX",
		Description: "Redirect to the OKX wallet dApp browser.",
		Accent:      "from-[#05BFFD] to-[#27A4FF]",
		browseBase:  "https://www.okx.com/links/dapp/visit?dappUrl=",
	},
}

// FallbackWallets returns the fixed deep-link catalogue in display order.
func FallbackWallets() []DeepLinkWallet {
	out := make([]DeepLinkWallet, len(fallbackWallets))
	copy(out, fallbackWallets)
	return out
}

// MobileBridge offers the two mobile connection strategies: connecting one of
// the listed wallet capabilities in place, or handing off through a deep link.
// Only one capability connection attempt may be pending at a time; the wallet
// registry is a single shared resource.
type MobileBridge struct {
	directory ports.WalletDirectory
	sheet     *Sheet

	mu      sync.Mutex
	pending string
	lastErr string
}

// NewMobileBridge creates a bridge over the wallet directory and sheet
func NewMobileBridge(directory ports.WalletDirectory, sheet *Sheet) *MobileBridge {
	return &MobileBridge{directory: directory, sheet: sheet}
}

// Detected lists wallets already present on the device
func (b *MobileBridge) Detected() []ports.Wallet {
	return b.filter(func(w ports.Wallet) bool {
		return w.ReadyState() == ports.ReadyStateInstalled
	})
}

// Supported lists wallets that are installable or openable on the device
func (b *MobileBridge) Supported() []ports.Wallet {
	return b.filter(func(w ports.Wallet) bool {
		state := w.ReadyState()
		return state == ports.ReadyStateLoadable || state == ports.ReadyStateNotDetected
	})
}

// Connect selects and connects the named wallet. While an attempt is pending
// further attempts are refused, so two select/connect races can never run
// against the shared registry. On success the sheet closes; on failure the
// error is kept for inline display and the pending mark is always cleared.
func (b *MobileBridge) Connect(ctx context.Context, name string) error {
	b.mu.Lock()
	if b.pending != "" {
		b.mu.Unlock()
		return core.ErrConnectPending
	}
	b.pending = name
	b.lastErr = ""
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.pending = ""
		b.mu.Unlock()
	}()

	wallet, err := b.directory.Select(name)
	if err == nil {
		err = wallet.Connect(ctx)
	}
	if err != nil {
		log.Warn(ctx, "wallet connection failed", "wallet", name, "reason", err.Error())
		b.mu.Lock()
		b.lastErr = err.Error()
		b.mu.Unlock()
		return err
	}

	b.sheet.Close()
	return nil
}

// Pending returns the name of the wallet with a connection attempt in flight,
// or empty.
func (b *MobileBridge) Pending() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.pending
}

// ConnectionError returns the last inline connection error, or empty.
func (b *MobileBridge) ConnectionError() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.lastErr
}

func (b *MobileBridge) filter(keep func(ports.Wallet) bool) []ports.Wallet {
	var out []ports.Wallet
	for _, w := range b.directory.Wallets() {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}

// Sheet models the modal wallet sheet. Opening suppresses background scroll
// through the injected lock and closing restores it; acquire and release
// balance exactly once per cycle no matter how often Open or Close repeat.
type Sheet struct {
	mu   sync.Mutex
	open bool
	lock ports.ScrollLock
}

// NewSheet creates a closed sheet. A nil scroll lock is tolerated.
func NewSheet(lock ports.ScrollLock) *Sheet {
	return &Sheet{lock: lock}
}

// Open opens the sheet and acquires the scroll lock once
func (s *Sheet) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return
	}
	s.open = true
	if s.lock != nil {
		s.lock.Acquire()
	}
}

// Close closes the sheet and releases the scroll lock once. Escape key,
// backdrop click, the close button and unmount all route here.
func (s *Sheet) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return
	}
	s.open = false
	if s.lock != nil {
		s.lock.Release()
	}
}

// IsOpen reports whether the sheet is open
func (s *Sheet) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.open
}
