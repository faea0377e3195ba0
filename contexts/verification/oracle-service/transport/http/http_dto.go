package httptransport

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type VerifyMilestoneRequest struct {
	ProofURL string `json:"proof_url"`
}

type VerifyMilestoneResponse struct {
	Verified    bool    `json:"verified"`
	Reason      string  `json:"reason,omitempty"`
	TxReference string  `json:"tx_reference,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
	VerifiedAt  string  `json:"verified_at,omitempty"`
}

type RegisterVerifierRequest struct {
	WalletAddress string `json:"wallet_address"`
}

type RegisterVerifierResponse struct {
	Success    bool   `json:"success"`
	VerifierID string `json:"verifier_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

type StatusDetailsDTO struct {
	Confidence          float64 `json:"confidence,omitempty"`
	Verifier            string  `json:"verifier,omitempty"`
	VerifiedAt          string  `json:"verified_at,omitempty"`
	EstimatedCompletion string  `json:"estimated_completion,omitempty"`
}

type CheckStatusResponse struct {
	Status  string            `json:"status"`
	Reason  string            `json:"reason,omitempty"`
	Details *StatusDetailsDTO `json:"details,omitempty"`
}

type ValidateProofURLRequest struct {
	ProofURL string `json:"proof_url"`
}

type ValidateProofURLResponse struct {
	Valid bool `json:"valid"`
}
