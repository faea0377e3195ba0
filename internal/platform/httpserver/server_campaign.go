package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	campaignerrors "chainimpact/contexts/giving/campaign-service/domain/errors"
	campaignhttp "chainimpact/contexts/giving/campaign-service/transport/http"
)

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeCampaignError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req campaignhttp.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.campaigns.Handler.CreateCampaignHandler(r.Context(), userID, req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.campaigns.Handler.ListCampaignsHandler(
		r.Context(),
		query.Get("creator_id"),
		query.Get("status"),
	)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	resp, err := s.campaigns.Handler.GetCampaignHandler(r.Context(), r.PathValue("campaign_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddMilestone(w http.ResponseWriter, r *http.Request) {
	var req campaignhttp.AddMilestoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.campaigns.Handler.AddMilestoneHandler(r.Context(), r.PathValue("campaign_id"), req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRecordDonation(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeCampaignError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req campaignhttp.RecordDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCampaignError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.campaigns.Handler.RecordDonationHandler(
		r.Context(),
		userID,
		r.Header.Get("Idempotency-Key"),
		r.PathValue("campaign_id"),
		req,
	)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListDonations(w http.ResponseWriter, r *http.Request) {
	resp, err := s.campaigns.Handler.ListDonationsHandler(r.Context(), r.PathValue("campaign_id"))
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeCampaignDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, campaignerrors.ErrCampaignNotFound):
		writeCampaignError(w, http.StatusNotFound, "campaign_not_found", err.Error())
	case errors.Is(err, campaignerrors.ErrMilestoneNotFound):
		writeCampaignError(w, http.StatusNotFound, "milestone_not_found", err.Error())
	case errors.Is(err, campaignerrors.ErrInvalidCampaignInput),
		errors.Is(err, campaignerrors.ErrInvalidMilestoneInput):
		writeCampaignError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, campaignerrors.ErrMilestoneLimitReached):
		writeCampaignError(w, http.StatusConflict, "milestone_limit_reached", err.Error())
	case errors.Is(err, campaignerrors.ErrDonationTooSmall):
		writeCampaignError(w, http.StatusBadRequest, "donation_too_small", err.Error())
	case errors.Is(err, campaignerrors.ErrRevisionConflict):
		writeCampaignError(w, http.StatusConflict, "revision_conflict", err.Error())
	case errors.Is(err, campaignerrors.ErrIdempotencyKeyRequired):
		writeCampaignError(w, http.StatusBadRequest, "idempotency_key_required", err.Error())
	case errors.Is(err, campaignerrors.ErrIdempotencyKeyConflict):
		writeCampaignError(w, http.StatusConflict, "idempotency_conflict", err.Error())
	default:
		writeCampaignError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeCampaignError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, campaignhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
