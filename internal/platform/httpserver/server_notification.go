package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	notificationerrors "chainimpact/contexts/engagement/notification-service/domain/errors"
	notificationhttp "chainimpact/contexts/engagement/notification-service/transport/http"
)

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeNotificationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	query := r.URL.Query()
	limit := 0
	if limitRaw := query.Get("limit"); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeNotificationError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}

	resp, err := s.notifications.Handler.ListNotificationsHandler(
		r.Context(),
		userID,
		query.Get("unread") == "true",
		limit,
	)
	if err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	if err := s.notifications.Handler.MarkReadHandler(r.Context(), r.PathValue("notification_id")); err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeNotificationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.notifications.Handler.MarkAllReadHandler(r.Context(), userID)
	if err != nil {
		writeNotificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeNotificationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, notificationerrors.ErrNotificationNotFound):
		writeNotificationError(w, http.StatusNotFound, "notification_not_found", err.Error())
	case errors.Is(err, notificationerrors.ErrRecipientRequired),
		errors.Is(err, notificationerrors.ErrInvalidNotificationInput):
		writeNotificationError(w, http.StatusBadRequest, "invalid_input", err.Error())
	default:
		writeNotificationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeNotificationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, notificationhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
