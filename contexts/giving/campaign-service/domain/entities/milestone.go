package entities

import "time"

type MilestoneVerificationStatus string

const (
	MilestoneVerificationPending  MilestoneVerificationStatus = "pending"
	MilestoneVerificationVerified MilestoneVerificationStatus = "verified"
	MilestoneVerificationRejected MilestoneVerificationStatus = "rejected"
)

// Milestone is embedded in its campaign's ordered milestone list. MilestoneID
// is a stable generated identifier; list position is presentation order only.
// Invariant: Completed implies VerificationStatus == verified.
type Milestone struct {
	MilestoneID        string
	Title              string
	Description        string
	TargetAmount       float64
	Completed          bool
	VerificationStatus MilestoneVerificationStatus
	ProofURL           string
	VerifiedAt         *time.Time
	VerifiedBy         string
	VerificationTxRef  string
	Verification       *VerificationDetails
}

// VerificationDetails records how a milestone was verified.
type VerificationDetails struct {
	Method     string    `json:"method"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// Terminal reports whether the milestone verification reached a final state.
// There is no transition out of verified or rejected.
func (m Milestone) Terminal() bool {
	return m.VerificationStatus == MilestoneVerificationVerified ||
		m.VerificationStatus == MilestoneVerificationRejected
}
