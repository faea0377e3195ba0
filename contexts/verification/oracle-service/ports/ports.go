package ports

import (
	"context"
	"time"

	giving "chainimpact/contexts/giving/campaign-service/domain/entities"
	"chainimpact/contexts/verification/oracle-service/domain/entities"
)

// ProofFetcher issues a metadata-only fetch (HEAD semantics) against a proof
// URL and reports the declared content type on success.
type ProofFetcher interface {
	Head(ctx context.Context, url string) (contentType string, err error)
}

// ContentClassifier decides whether proof content plausibly demonstrates
// milestone completion. The simulated adapter and a future real model are both
// variants behind this contract.
type ContentClassifier interface {
	Classify(ctx context.Context, proofURL string) entities.Classification
}

// CampaignStore is the oracle's view of campaign persistence: load the
// aggregate, replace the milestone list under a revision check.
type CampaignStore interface {
	GetCampaign(ctx context.Context, campaignID string) (giving.Campaign, error)
	ReplaceMilestones(ctx context.Context, campaignID string, milestones []giving.Milestone, expectedRevision int64) error
}

// MilestoneNotification is the record appended for the campaign creator after
// a successful verification.
type MilestoneNotification struct {
	RecipientID    string
	Message        string
	CampaignID     string
	MilestoneIndex int
}

type NotificationAppender interface {
	AppendNotification(ctx context.Context, notification MilestoneNotification) error
}

// WalletBalances looks up a wallet's on-chain balance in native units.
type WalletBalances interface {
	Balance(ctx context.Context, walletAddress string) (float64, error)
}

type VerifierRegistry interface {
	SaveVerifier(ctx context.Context, registration entities.VerifierRegistration) error
	GetVerifier(ctx context.Context, verifierID string) (entities.VerifierRegistration, error)
}

// StatusProvider resolves a verification id to its current status.
type StatusProvider interface {
	CheckStatus(ctx context.Context, verificationID string) (entities.StatusReport, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
