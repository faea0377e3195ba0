package oracleservice

import (
	"context"
	"log/slog"
	"time"

	giving "chainimpact/contexts/giving/campaign-service/domain/entities"
	httpadapter "chainimpact/contexts/verification/oracle-service/adapters/http"
	"chainimpact/contexts/verification/oracle-service/adapters/memory"
	"chainimpact/contexts/verification/oracle-service/adapters/simulation"
	"chainimpact/contexts/verification/oracle-service/application/commands"
	"chainimpact/contexts/verification/oracle-service/application/queries"
	"chainimpact/contexts/verification/oracle-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
	Wallets *simulation.WalletBalances
}

type Dependencies struct {
	Fetcher        ports.ProofFetcher
	Classifier     ports.ContentClassifier
	Campaigns      ports.CampaignStore
	Notifications  ports.NotificationAppender
	Balances       ports.WalletBalances
	Registry       ports.VerifierRegistry
	Status         ports.StatusProvider
	Clock          ports.Clock
	IDGenerator    ports.IDGenerator
	ReplaceRetries int
	Logger         *slog.Logger
}

func NewModule(deps Dependencies) Module {
	validateProofURL := queries.ValidateProofURLUseCase{
		Fetcher: deps.Fetcher,
		Logger:  deps.Logger,
	}
	verifyMilestone := commands.VerifyMilestoneUseCase{
		Validator:      validateProofURL,
		Classifier:     deps.Classifier,
		Campaigns:      deps.Campaigns,
		Notifications:  deps.Notifications,
		Clock:          deps.Clock,
		IDGenerator:    deps.IDGenerator,
		ReplaceRetries: deps.ReplaceRetries,
		Logger:         deps.Logger,
	}
	registerVerifier := commands.RegisterVerifierUseCase{
		Balances:    deps.Balances,
		Registry:    deps.Registry,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	checkStatus := queries.CheckStatusUseCase{
		Provider: deps.Status,
		Logger:   deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			VerifyMilestone:  verifyMilestone,
			RegisterVerifier: registerVerifier,
			CheckStatus:      checkStatus,
			ValidateProofURL: validateProofURL,
			Logger:           deps.Logger,
		},
	}
}

// InMemoryOptions tune the self-contained wiring used by tests and local runs.
type InMemoryOptions struct {
	Seed           []giving.Campaign
	WalletBalances map[string]float64
	Fetcher        ports.ProofFetcher
	AnalysisDelay  time.Duration
	Roll           func() float64
	Logger         *slog.Logger
}

func NewInMemoryModule(opts InMemoryOptions) Module {
	store := memory.NewStore(opts.Seed)
	wallets := simulation.NewWalletBalances(opts.WalletBalances)

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = alwaysImageFetcher{}
	}

	module := NewModule(Dependencies{
		Fetcher:       fetcher,
		Classifier:    simulation.Classifier{Delay: opts.AnalysisDelay, Roll: opts.Roll},
		Campaigns:     store,
		Notifications: store,
		Balances:      wallets,
		Registry:      store,
		Status:        simulation.StatusProvider{Clock: store, Roll: opts.Roll},
		Clock:         store,
		IDGenerator:   store,
		Logger:        opts.Logger,
	})
	module.Store = store
	module.Wallets = wallets
	return module
}

// alwaysImageFetcher avoids outbound requests in self-contained wiring.
type alwaysImageFetcher struct{}

func (alwaysImageFetcher) Head(_ context.Context, _ string) (string, error) {
	return "image/jpeg", nil
}
