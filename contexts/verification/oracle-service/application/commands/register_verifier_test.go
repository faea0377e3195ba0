package commands

import (
	"context"
	"strings"
	"testing"

	"chainimpact/contexts/verification/oracle-service/adapters/memory"
	"chainimpact/contexts/verification/oracle-service/adapters/simulation"
	"chainimpact/contexts/verification/oracle-service/domain/entities"
)

func newRegistration(balances map[string]float64) (RegisterVerifierUseCase, *memory.Store) {
	store := memory.NewStore(nil)
	return RegisterVerifierUseCase{
		Balances:    simulation.NewWalletBalances(balances),
		Registry:    store,
		Clock:       store,
		IDGenerator: store,
	}, store
}

func TestRegisterVerifierSuccess(t *testing.T) {
	wallet := "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"
	uc, store := newRegistration(map[string]float64{wallet: 0.5})

	result := uc.Execute(context.Background(), RegisterVerifierCommand{WalletAddress: wallet})
	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if !strings.HasPrefix(result.VerifierID, "verifier_"+wallet[:8]+"_") {
		t.Fatalf("verifier id = %q", result.VerifierID)
	}

	saved, err := store.GetVerifier(context.Background(), result.VerifierID)
	if err != nil {
		t.Fatalf("registration not persisted: %v", err)
	}
	if saved.WalletAddress != wallet {
		t.Fatalf("saved wallet = %q", saved.WalletAddress)
	}
}

func TestRegisterVerifierExactMinimumBalance(t *testing.T) {
	wallet := "9aBCdefGhiJKlmnoPqrsTuvwXyz1234567890abcdEfg"
	uc, _ := newRegistration(map[string]float64{wallet: entities.MinVerifierBalance})

	result := uc.Execute(context.Background(), RegisterVerifierCommand{WalletAddress: wallet})
	if !result.Success {
		t.Fatalf("balance at the minimum must qualify, got %q", result.Error)
	}
}

func TestRegisterVerifierInsufficientBalance(t *testing.T) {
	wallet := "4tLowBalanceWalletAddressExample111111111111"
	uc, _ := newRegistration(map[string]float64{wallet: 0.05})

	result := uc.Execute(context.Background(), RegisterVerifierCommand{WalletAddress: wallet})
	if result.Success {
		t.Fatal("expected rejection")
	}
	if result.Error != entities.ReasonInsufficientBalance {
		t.Fatalf("error = %q", result.Error)
	}
	if result.VerifierID != "" {
		t.Fatalf("no verifier id expected, got %q", result.VerifierID)
	}
}

func TestRegisterVerifierUnknownWallet(t *testing.T) {
	uc, _ := newRegistration(nil)

	result := uc.Execute(context.Background(), RegisterVerifierCommand{WalletAddress: "unknown_wallet_address_000000000"})
	if result.Success {
		t.Fatal("unknown wallet reads a zero balance and must be rejected")
	}
}

func TestRegisterVerifierEmptyWallet(t *testing.T) {
	uc, _ := newRegistration(nil)

	result := uc.Execute(context.Background(), RegisterVerifierCommand{WalletAddress: "   "})
	if result.Success {
		t.Fatal("expected failure for empty wallet")
	}
	if result.Error != entities.ReasonRegistrationFailed {
		t.Fatalf("error = %q", result.Error)
	}
}

func TestRegisterVerifierShortWalletKeepsFullAddressInID(t *testing.T) {
	wallet := "abc123"
	uc, _ := newRegistration(map[string]float64{wallet: 1})

	result := uc.Execute(context.Background(), RegisterVerifierCommand{WalletAddress: wallet})
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
	if !strings.HasPrefix(result.VerifierID, "verifier_abc123_") {
		t.Fatalf("verifier id = %q", result.VerifierID)
	}
}
