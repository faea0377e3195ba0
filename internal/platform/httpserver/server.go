package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	notificationservice "chainimpact/contexts/engagement/notification-service"
	campaignservice "chainimpact/contexts/giving/campaign-service"
	oracleservice "chainimpact/contexts/verification/oracle-service"
	"chainimpact/internal/platform/metrics"

	httpSwagger "github.com/swaggo/http-swagger"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	metrics       *metrics.Metrics
	campaigns     campaignservice.Module
	oracle        oracleservice.Module
	notifications notificationservice.Module
}

func New(
	campaigns campaignservice.Module,
	oracle oracleservice.Module,
	notifications notificationservice.Module,
	meter *metrics.Metrics,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		metrics:       meter,
		campaigns:     campaigns,
		oracle:        oracle,
		notifications: notifications,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Mux exposes the routing table for tests.
func (s *Server) Mux() *http.ServeMux {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics.ExpositionHandler())
	}

	s.handleFunc("POST /v1/campaigns", "create_campaign", s.handleCreateCampaign)
	s.handleFunc("GET /v1/campaigns", "list_campaigns", s.handleListCampaigns)
	s.handleFunc("GET /v1/campaigns/{campaign_id}", "get_campaign", s.handleGetCampaign)
	s.handleFunc("POST /v1/campaigns/{campaign_id}/milestones", "add_milestone", s.handleAddMilestone)
	s.handleFunc("POST /v1/campaigns/{campaign_id}/donations", "record_donation", s.handleRecordDonation)
	s.handleFunc("GET /v1/campaigns/{campaign_id}/donations", "list_donations", s.handleListDonations)

	s.handleFunc(
		"POST /v1/campaigns/{campaign_id}/milestones/{milestone_index}/verify",
		"verify_milestone",
		s.handleVerifyMilestone,
	)
	s.handleFunc("POST /v1/oracle/verifiers", "register_verifier", s.handleRegisterVerifier)
	s.handleFunc("GET /v1/oracle/verifications/{verification_id}", "check_verification_status", s.handleCheckStatus)
	s.handleFunc("POST /v1/oracle/proof-urls/validate", "validate_proof_url", s.handleValidateProofURL)

	s.handleFunc("GET /v1/notifications", "list_notifications", s.handleListNotifications)
	s.handleFunc("POST /v1/notifications/{notification_id}/read", "mark_notification_read", s.handleMarkRead)
	s.handleFunc("POST /v1/notifications/read-all", "mark_all_notifications_read", s.handleMarkAllRead)
}

func (s *Server) handleFunc(pattern string, name string, handler http.HandlerFunc) {
	if s.metrics != nil {
		s.mux.Handle(pattern, s.metrics.Wrap(name, handler))
		return
	}
	s.mux.HandleFunc(pattern, handler)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
