package campaignservice

import (
	"log/slog"
	"time"

	httpadapter "chainimpact/contexts/giving/campaign-service/adapters/http"
	"chainimpact/contexts/giving/campaign-service/adapters/memory"
	"chainimpact/contexts/giving/campaign-service/application/commands"
	"chainimpact/contexts/giving/campaign-service/application/queries"
	"chainimpact/contexts/giving/campaign-service/domain/entities"
	"chainimpact/contexts/giving/campaign-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Campaigns      ports.CampaignRepository
	Donations      ports.DonationRepository
	Idempotency    ports.IdempotencyStore
	Outbox         ports.OutboxWriter
	Clock          ports.Clock
	IDGenerator    ports.IDGenerator
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createCampaign := commands.CreateCampaignUseCase{
		Campaigns:   deps.Campaigns,
		Outbox:      deps.Outbox,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	addMilestone := commands.AddMilestoneUseCase{
		Campaigns:   deps.Campaigns,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	recordDonation := commands.RecordDonationUseCase{
		Campaigns:      deps.Campaigns,
		Donations:      deps.Donations,
		Idempotency:    deps.Idempotency,
		Outbox:         deps.Outbox,
		Clock:          deps.Clock,
		IDGenerator:    deps.IDGenerator,
		IdempotencyTTL: deps.IdempotencyTTL,
		Logger:         deps.Logger,
	}

	getCampaign := queries.GetCampaignUseCase{
		Campaigns: deps.Campaigns,
		Logger:    deps.Logger,
	}
	listCampaigns := queries.ListCampaignsUseCase{
		Campaigns: deps.Campaigns,
		Logger:    deps.Logger,
	}
	listDonations := queries.ListDonationsUseCase{
		Donations: deps.Donations,
		Logger:    deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateCampaign: createCampaign,
			AddMilestone:   addMilestone,
			RecordDonation: recordDonation,
			GetCampaign:    getCampaign,
			ListCampaigns:  listCampaigns,
			ListDonations:  listDonations,
			Logger:         deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Campaign, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Campaigns:      store,
		Donations:      store,
		Idempotency:    store,
		Outbox:         store,
		Clock:          store,
		IDGenerator:    store,
		IdempotencyTTL: 7 * 24 * time.Hour,
		Logger:         logger,
	})
	module.Store = store
	return module
}
