package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	oraclehttp "chainimpact/contexts/verification/oracle-service/transport/http"
)

func (s *Server) handleVerifyMilestone(w http.ResponseWriter, r *http.Request) {
	milestoneIndex, err := strconv.Atoi(r.PathValue("milestone_index"))
	if err != nil {
		writeOracleError(w, http.StatusBadRequest, "invalid_milestone_index", "milestone index must be an integer")
		return
	}

	var req oraclehttp.VerifyMilestoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOracleError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp := s.oracle.Handler.VerifyMilestoneHandler(
		r.Context(),
		r.PathValue("campaign_id"),
		milestoneIndex,
		req,
	)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegisterVerifier(w http.ResponseWriter, r *http.Request) {
	var req oraclehttp.RegisterVerifierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOracleError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp := s.oracle.Handler.RegisterVerifierHandler(r.Context(), req)
	status := http.StatusOK
	if !resp.Success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleCheckStatus(w http.ResponseWriter, r *http.Request) {
	resp := s.oracle.Handler.CheckStatusHandler(r.Context(), r.PathValue("verification_id"))
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleValidateProofURL(w http.ResponseWriter, r *http.Request) {
	var req oraclehttp.ValidateProofURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOracleError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp := s.oracle.Handler.ValidateProofURLHandler(r.Context(), req)
	writeJSON(w, http.StatusOK, resp)
}

func writeOracleError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, oraclehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
