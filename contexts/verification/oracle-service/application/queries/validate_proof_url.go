package queries

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	application "chainimpact/contexts/verification/oracle-service/application"
	"chainimpact/contexts/verification/oracle-service/ports"
)

// ValidateProofURLUseCase checks that a proof URL is a well-formed absolute
// http(s) URL, is reachable, and declares an accepted content type. It never
// returns an error: every failure is an invalid verdict.
type ValidateProofURLUseCase struct {
	Fetcher ports.ProofFetcher
	Logger  *slog.Logger
}

func (uc ValidateProofURLUseCase) Execute(ctx context.Context, proofURL string) bool {
	logger := application.ResolveLogger(uc.Logger)

	parsed, err := url.Parse(strings.TrimSpace(proofURL))
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return false
	}

	contentType, err := uc.Fetcher.Head(ctx, parsed.String())
	if err != nil {
		logger.Debug("proof url unreachable",
			"event", "proof_url_unreachable",
			"module", "verification/oracle-service",
			"layer", "application",
			"error", err.Error(),
		)
		return false
	}
	return acceptedContentType(contentType)
}

func acceptedContentType(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "image/") ||
		strings.Contains(ct, "application/pdf") ||
		strings.Contains(ct, "application/msword") ||
		strings.Contains(ct, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
}
