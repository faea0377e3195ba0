package errors

import "errors"

var (
	ErrCampaignNotFound       = errors.New("campaign not found")
	ErrInvalidCampaignInput   = errors.New("invalid campaign input")
	ErrMilestoneNotFound      = errors.New("milestone not found")
	ErrInvalidMilestoneInput  = errors.New("invalid milestone input")
	ErrMilestoneLimitReached  = errors.New("milestone limit reached for campaign")
	ErrDonationTooSmall       = errors.New("donation amount below platform minimum")
	ErrRevisionConflict       = errors.New("campaign revision conflict")
	ErrIdempotencyKeyRequired = errors.New("idempotency key is required")
	ErrIdempotencyKeyConflict = errors.New("idempotency key conflict")
)
