package entities

import "time"

// VerifierLabel identifies the platform oracle on verified milestones.
const VerifierLabel = "ChainImpact Oracle"

// VerificationMethod is recorded in milestone verification details.
const VerificationMethod = "content-analysis"

// MinVerifierBalance is the native-unit balance required to register.
const MinVerifierBalance = 0.1

// User-facing rejection reasons. The engine surfaces these verbatim.
const (
	ReasonInvalidProofURL = "Invalid proof URL. The URL must be accessible and contain valid proof content."
	ReasonNotFound        = "Campaign or milestone not found."
	ReasonFinalized       = "Milestone verification is already finalized."
	ReasonGenericFailure  = "An error occurred during verification. Please try again."

	ReasonLowImageScore    = "Image analysis score too low. The image does not clearly demonstrate milestone completion."
	ReasonLowDocumentScore = "Document analysis score too low. The document does not provide sufficient evidence of milestone completion."
	ReasonUnsupportedType  = "Unsupported file type. Please provide an image or document."

	ReasonBelowThreshold      = "Verification evidence did not meet required confidence threshold."
	ReasonInsufficientBalance = "Insufficient SOL balance. Verifiers need at least 0.1 SOL."
	ReasonRegistrationFailed  = "An unexpected error occurred"
)

// VerificationResult is the engine's only output shape; the engine never
// returns a Go error above its boundary.
type VerificationResult struct {
	Verified    bool
	Reason      string
	TxReference string
	Confidence  float64
	VerifiedAt  time.Time
}

// Classification is the content classifier contract output.
type Classification struct {
	Valid      bool
	Reason     string
	Confidence float64
}

type RegistrationResult struct {
	Success    bool
	VerifierID string
	Error      string
}

// VerifierRegistration is the durable registry record.
type VerifierRegistration struct {
	VerifierID    string
	WalletAddress string
	RegisteredAt  time.Time
}

type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusVerified VerificationStatus = "verified"
	VerificationStatusRejected VerificationStatus = "rejected"
)

// StatusReport is the status-query result. Reason is set only when the
// status is rejected.
type StatusReport struct {
	Status  VerificationStatus
	Reason  string
	Details *StatusDetails
}

type StatusDetails struct {
	Confidence          float64
	Verifier            string
	VerifiedAt          *time.Time
	EstimatedCompletion *time.Time
}
