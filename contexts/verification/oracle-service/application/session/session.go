package session

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "chainimpact/contexts/verification/oracle-service/application"
	"chainimpact/contexts/verification/oracle-service/application/commands"
	"chainimpact/contexts/verification/oracle-service/application/queries"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Snapshot is the observable state of one verification attempt. Progress is
// advisory UX signaling: monotonic non-decreasing, terminal value 100.
type Snapshot struct {
	Status       Status
	Progress     int
	ProofURL     string
	ErrorMessage string
	TxReference  string
	Confidence   float64
	Method       string
	VerifiedAt   time.Time
}

// Session drives one milestone's verification submissions. It is the
// explicit form of the submit state machine: idle -> pending -> success|error,
// with both outcomes terminal for a given submission and a new submission
// restarting at pending. Not safe for concurrent use; one submission runs at
// a time, guarded by the loading flag.
type Session struct {
	CampaignID     string
	MilestoneIndex int

	Validator queries.ValidateProofURLUseCase
	Verifier  commands.VerifyMilestoneUseCase
	// OnRefresh is invoked after a successful verification so the caller can
	// reload campaign state.
	OnRefresh func()
	Logger    *slog.Logger

	loading  bool
	snapshot Snapshot
}

func New(campaignID string, milestoneIndex int, validator queries.ValidateProofURLUseCase, verifier commands.VerifyMilestoneUseCase) *Session {
	return &Session{
		CampaignID:     campaignID,
		MilestoneIndex: milestoneIndex,
		Validator:      validator,
		Verifier:       verifier,
		snapshot:       Snapshot{Status: StatusIdle},
	}
}

// Snapshot returns the current attempt state.
func (s *Session) Snapshot() Snapshot {
	return s.snapshot
}

// Submit runs one verification attempt. An empty proof URL and a submit while
// a previous attempt is still in flight are both no-ops.
func (s *Session) Submit(ctx context.Context, proofURL string) Snapshot {
	logger := application.ResolveLogger(s.Logger)

	proofURL = strings.TrimSpace(proofURL)
	if proofURL == "" || s.loading {
		return s.snapshot
	}

	s.loading = true
	defer func() { s.loading = false }()

	s.snapshot = Snapshot{Status: StatusPending, Progress: 10, ProofURL: proofURL}

	valid := s.Validator.Execute(ctx, proofURL)
	s.advance(30)
	if !valid {
		s.fail("Invalid URL or resource not accessible. Please check the URL and try again.")
		return s.snapshot
	}

	s.advance(50)
	result := s.Verifier.Execute(ctx, commands.VerifyMilestoneCommand{
		CampaignID:     s.CampaignID,
		MilestoneIndex: s.MilestoneIndex,
		ProofURL:       proofURL,
	})
	s.advance(70)

	if !result.Verified {
		s.advance(100)
		reason := result.Reason
		if reason == "" {
			reason = "Verification failed. Please try again with different proof."
		}
		s.fail(reason)
		return s.snapshot
	}

	s.advance(100)
	s.snapshot.Status = StatusSuccess
	s.snapshot.ProofURL = ""
	s.snapshot.TxReference = result.TxReference
	s.snapshot.Confidence = result.Confidence
	s.snapshot.Method = "AI-powered content analysis"
	s.snapshot.VerifiedAt = result.VerifiedAt

	logger.Info("verification session succeeded",
		"event", "verification_session_succeeded",
		"module", "verification/oracle-service",
		"layer", "application",
		"campaign_id", s.CampaignID,
		"milestone_index", s.MilestoneIndex,
	)
	if s.OnRefresh != nil {
		s.OnRefresh()
	}
	return s.snapshot
}

func (s *Session) advance(progress int) {
	if progress > s.snapshot.Progress {
		s.snapshot.Progress = progress
	}
}

func (s *Session) fail(message string) {
	s.snapshot.Status = StatusError
	s.snapshot.ErrorMessage = message
}
