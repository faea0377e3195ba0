package errors

import "errors"

var (
	ErrCampaignNotFound   = errors.New("campaign not found")
	ErrMilestoneNotFound  = errors.New("milestone not found")
	ErrMilestoneFinalized = errors.New("milestone verification already finalized")
	ErrRevisionConflict   = errors.New("campaign revision conflict")
	ErrVerifierNotFound   = errors.New("verifier not found")
)
