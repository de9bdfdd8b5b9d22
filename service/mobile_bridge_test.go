package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lil-gargs/portal/adapters/wallet"
	"github.com/lil-gargs/portal/core"
	"github.com/lil-gargs/portal/ports"
)

func TestIsMobileUserAgent(t *testing.T) {
	mobile := []string{
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15",
		"Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36",
		"Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X) AppleWebKit/605.1.15",
		"Opera/9.80 (J2ME/MIDP; Opera Mini/9.80) Presto/2.12.423",
	}
	for _, ua := range mobile {
		assert.True(t, IsMobileUserAgent(ua), ua)
	}

	desktop := []string{
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		"",
	}
	for _, ua := range desktop {
		assert.False(t, IsMobileUserAgent(ua), ua)
	}
}

func TestDeepLinkWalletBuildLink(t *testing.T) {
	portalURL := "https://lilgargs.app/session/abc123"

	links := map[string]string{}
	for _, w := range FallbackWallets() {
		links[w.Name] = w.BuildLink(portalURL)
	}

	assert.Equal(t, "https://phantom.app/ul/v1/browse?url=https%3A%2F%2Flilgargs.app%2Fsession%2Fabc123", links["Phantom"])
	assert.Equal(t, "https://solflare.com/ul/v1/browse?url=https%3A%2F%2Flilgargs.app%2Fsession%2Fabc123", links["Solflare"])
	assert.Equal(t, "https://backpack.app/ul/browse?url=https%3A%2F%2Flilgargs.app%2Fsession%2Fabc123", links["Backpack"])
	assert.Equal(t, "https://www.okx.com/links/dapp/visit?dappUrl=https%3A%2F%2Flilgargs.app%2Fsession%2Fabc123", links["OKX"])
}

func TestFallbackWalletsOrder(t *testing.T) {
	wallets := FallbackWallets()
	require.Len(t, wallets, 4)

	var names []string
	for _, w := range wallets {
		names = append(names, w.Name)
	}
	assert.Equal(t, []string{"Phantom", "Solflare", "Backpack", "OKX"}, names)
}

func TestMobileBridgePartitions(t *testing.T) {
	installed := &fakeWallet{name: "Phantom", ready: ports.ReadyStateInstalled}
	loadable := &fakeWallet{name: "Solflare", ready: ports.ReadyStateLoadable}
	missing := &fakeWallet{name: "Backpack", ready: ports.ReadyStateNotDetected}
	unsupported := &fakeWallet{name: "Ledger", ready: ports.ReadyStateUnsupported}

	bridge := NewMobileBridge(wallet.NewRegistry(installed, loadable, missing, unsupported), NewSheet(nil))

	detected := bridge.Detected()
	require.Len(t, detected, 1)
	assert.Equal(t, "Phantom", detected[0].Name())

	supported := bridge.Supported()
	require.Len(t, supported, 2)
	assert.Equal(t, "Solflare", supported[0].Name())
	assert.Equal(t, "Backpack", supported[1].Name())
}

func TestMobileBridgeConnectClosesSheet(t *testing.T) {
	ctx := context.Background()
	w := &fakeWallet{name: "Phantom", ready: ports.ReadyStateInstalled}
	registry := wallet.NewRegistry(w)
	lock := &countingLock{}
	sheet := NewSheet(lock)
	bridge := NewMobileBridge(registry, sheet)

	sheet.Open()
	require.True(t, sheet.IsOpen())

	require.NoError(t, bridge.Connect(ctx, "Phantom"))

	assert.True(t, w.Connected())
	assert.Same(t, ports.Wallet(w), registry.Active())
	assert.False(t, sheet.IsOpen())
	assert.Zero(t, lock.held())
	assert.Empty(t, bridge.Pending())
	assert.Empty(t, bridge.ConnectionError())
}

func TestMobileBridgeConnectFailureKeepsSheetOpen(t *testing.T) {
	ctx := context.Background()
	w := &fakeWallet{name: "Phantom", ready: ports.ReadyStateInstalled, connectErr: errors.New("user dismissed the popup")}
	sheet := NewSheet(&countingLock{})
	bridge := NewMobileBridge(wallet.NewRegistry(w), sheet)

	sheet.Open()
	err := bridge.Connect(ctx, "Phantom")

	require.Error(t, err)
	assert.True(t, sheet.IsOpen())
	assert.Equal(t, "user dismissed the popup", bridge.ConnectionError())
	assert.Empty(t, bridge.Pending())
}

func TestMobileBridgeConnectUnknownWallet(t *testing.T) {
	ctx := context.Background()
	bridge := NewMobileBridge(wallet.NewRegistry(), NewSheet(nil))

	err := bridge.Connect(ctx, "Mystery")
	require.Error(t, err)
	assert.NotEmpty(t, bridge.ConnectionError())
}

func TestMobileBridgeRefusesSecondPendingConnect(t *testing.T) {
	ctx := context.Background()
	gate := make(chan struct{})
	slow := &fakeWallet{name: "Phantom", ready: ports.ReadyStateInstalled, connectGate: gate}
	other := &fakeWallet{name: "Solflare", ready: ports.ReadyStateInstalled}
	bridge := NewMobileBridge(wallet.NewRegistry(slow, other), NewSheet(nil))

	done := make(chan error, 1)
	go func() { done <- bridge.Connect(ctx, "Phantom") }()

	require.Eventually(t, func() bool { return bridge.Pending() == "Phantom" }, time.Second, time.Millisecond)

	err := bridge.Connect(ctx, "Solflare")
	assert.ErrorIs(t, err, core.ErrConnectPending)
	assert.False(t, other.Connected())

	close(gate)
	require.NoError(t, <-done)
	assert.Empty(t, bridge.Pending())

	// With the first attempt settled the second wallet may connect.
	require.NoError(t, bridge.Connect(ctx, "Solflare"))
	assert.True(t, other.Connected())
}

func TestSheetLockBalance(t *testing.T) {
	lock := &countingLock{}
	sheet := NewSheet(lock)

	// Redundant opens and closes never unbalance the lock.
	sheet.Close()
	assert.Zero(t, lock.held())

	for i := 0; i < 3; i++ {
		sheet.Open()
		sheet.Open()
		assert.True(t, sheet.IsOpen())
		assert.Equal(t, 1, lock.held())

		sheet.Close()
		sheet.Close()
		assert.False(t, sheet.IsOpen())
		assert.Zero(t, lock.held())
	}

	assert.Equal(t, 3, lock.acquires)
	assert.Equal(t, 3, lock.releases)
}
