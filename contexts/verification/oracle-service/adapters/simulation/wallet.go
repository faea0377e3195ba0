package simulation

import (
	"context"
	"sync"
)

// WalletBalances is the simulated balance source standing in for the wallet
// provider RPC. Unknown wallets report Default.
type WalletBalances struct {
	mu       sync.RWMutex
	balances map[string]float64

	// Default is returned for wallets without an explicit balance.
	Default float64
}

func NewWalletBalances(seed map[string]float64) *WalletBalances {
	balances := make(map[string]float64, len(seed))
	for wallet, balance := range seed {
		balances[wallet] = balance
	}
	return &WalletBalances{balances: balances}
}

func (w *WalletBalances) SetBalance(wallet string, balance float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balances[wallet] = balance
}

func (w *WalletBalances) Balance(_ context.Context, wallet string) (float64, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if balance, exists := w.balances[wallet]; exists {
		return balance, nil
	}
	return w.Default, nil
}
