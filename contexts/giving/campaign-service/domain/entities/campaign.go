package entities

import (
	"strings"
	"time"
)

type CampaignStatus string

const (
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusCancelled CampaignStatus = "cancelled"
)

// Platform limits carried over from the ChainImpact client constants.
const (
	MaxMilestonesPerCampaign = 10
	MinDonationAmount        = 0.01
)

// Campaign is a document-style aggregate: it exclusively owns its ordered
// milestone list. Revision guards whole-list milestone replacement.
type Campaign struct {
	CampaignID    string
	CreatorID     string
	Title         string
	Description   string
	GoalAmount    float64
	CurrentAmount float64
	ImageURL      string
	WalletAddress string
	Status        CampaignStatus
	Milestones    []Milestone
	Revision      int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (c Campaign) ValidateBasics() bool {
	title := strings.TrimSpace(c.Title)
	description := strings.TrimSpace(c.Description)
	return title != "" &&
		len(title) <= 200 &&
		description != "" &&
		c.GoalAmount > 0 &&
		strings.TrimSpace(c.CreatorID) != ""
}

// MilestoneByID resolves a milestone by its stable identifier.
func (c Campaign) MilestoneByID(milestoneID string) (Milestone, int, bool) {
	for i, m := range c.Milestones {
		if m.MilestoneID == milestoneID {
			return m, i, true
		}
	}
	return Milestone{}, -1, false
}

type Donation struct {
	DonationID    string
	CampaignID    string
	CampaignTitle string
	DonorID       string
	Amount        float64
	TxSignature   string
	Timestamp     time.Time
}
