package httptransport

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateCampaignRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	GoalAmount    float64 `json:"goal_amount"`
	ImageURL      string  `json:"image_url"`
	WalletAddress string  `json:"wallet_address"`
}

type CreateCampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type AddMilestoneRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	TargetAmount float64 `json:"target_amount"`
}

type AddMilestoneResponse struct {
	Milestone MilestoneDTO `json:"milestone"`
}

type RecordDonationRequest struct {
	Amount      float64 `json:"amount"`
	TxSignature string  `json:"tx_signature"`
}

type RecordDonationResponse struct {
	Donation DonationDTO `json:"donation"`
	Replayed bool        `json:"replayed"`
}

type GetCampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type ListCampaignsResponse struct {
	Items []CampaignDTO `json:"items"`
}

type ListDonationsResponse struct {
	Items []DonationDTO `json:"items"`
}

type CampaignDTO struct {
	CampaignID    string         `json:"campaign_id"`
	CreatorID     string         `json:"creator_id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	GoalAmount    float64        `json:"goal_amount"`
	CurrentAmount float64        `json:"current_amount"`
	ImageURL      string         `json:"image_url,omitempty"`
	WalletAddress string         `json:"wallet_address,omitempty"`
	Status        string         `json:"status"`
	Milestones    []MilestoneDTO `json:"milestones"`
	CreatedAt     string         `json:"created_at"`
}

type MilestoneDTO struct {
	MilestoneID        string                  `json:"milestone_id"`
	Title              string                  `json:"title"`
	Description        string                  `json:"description,omitempty"`
	TargetAmount       float64                 `json:"target_amount"`
	Completed          bool                    `json:"completed"`
	VerificationStatus string                  `json:"verification_status"`
	ProofURL           string                  `json:"proof_url,omitempty"`
	VerifiedAt         string                  `json:"verified_at,omitempty"`
	VerifiedBy         string                  `json:"verified_by,omitempty"`
	VerificationTxRef  string                  `json:"verification_tx_ref,omitempty"`
	Verification       *VerificationDetailsDTO `json:"verification,omitempty"`
}

type VerificationDetailsDTO struct {
	Method     string  `json:"method"`
	Confidence float64 `json:"confidence"`
	Timestamp  string  `json:"timestamp"`
}

type DonationDTO struct {
	DonationID    string  `json:"donation_id"`
	CampaignID    string  `json:"campaign_id"`
	CampaignTitle string  `json:"campaign_title"`
	DonorID       string  `json:"donor_id"`
	Amount        float64 `json:"amount"`
	TxSignature   string  `json:"tx_signature,omitempty"`
	Timestamp     string  `json:"timestamp"`
}
