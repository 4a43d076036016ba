package server

import (
	"encoding/json"
	"net/http"
	"time"

	"educonnect/internal/alerting"
	"educonnect/internal/common/validation"
)

type envelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Timestamp string      `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

func (s *Server) writeEnvelope(w http.ResponseWriter, status int, success bool, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{
		Success:   success,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      data,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleTestAlert(w http.ResponseWriter, r *http.Request) {
	if err := s.alerts.RouteTestAlert(r.Context()); err != nil {
		s.errors.WriteHTTPError(w, err)
		return
	}
	s.writeEnvelope(w, http.StatusOK, true, "Test alert routed to owner contacts", nil)
}

type testCommercialRequest struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	IP     string `json:"ip"`
}

func (s *Server) handleTestCommercialAlert(w http.ResponseWriter, r *http.Request) {
	req := testCommercialRequest{Name: "Test Commercial", Email: "commercial@test.local", Role: "Commercial"}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeEnvelope(w, http.StatusBadRequest, false, "Invalid request body", nil)
			return
		}
	}
	if res := validation.Check().
		OptionalEmail("email", req.Email).
		MaxLength("name", req.Name, 128); !res.Valid {
		s.writeEnvelope(w, http.StatusBadRequest, false, res.Summary(), res)
		return
	}

	login := alerting.CommercialLogin{
		UserID: req.UserID,
		Name:   req.Name,
		Email:  req.Email,
		Role:   req.Role,
		IP:     req.IP,
	}
	if err := s.alerts.RouteCommercialConnection(r.Context(), login); err != nil {
		s.errors.WriteHTTPError(w, err)
		return
	}
	s.writeEnvelope(w, http.StatusOK, true, "Commercial connection alert routed", nil)
}

func (s *Server) handleAlertingHealth(w http.ResponseWriter, r *http.Request) {
	s.writeEnvelope(w, http.StatusOK, true, "Alerting system health", s.alerts.Health())
}

type testReminderRequest struct {
	UserID int64 `json:"userId"`
}

func (s *Server) handleTestReminder(w http.ResponseWriter, r *http.Request) {
	var req testReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeEnvelope(w, http.StatusBadRequest, false, "Invalid request body", nil)
		return
	}
	if res := validation.Check().RequireID("userId", req.UserID); !res.Valid {
		s.writeEnvelope(w, http.StatusBadRequest, false, res.Summary(), res)
		return
	}

	if err := s.scheduler.SendTestReminder(r.Context(), req.UserID); err != nil {
		s.errors.WriteHTTPError(w, err)
		return
	}
	s.writeEnvelope(w, http.StatusOK, true, "Test reminder dispatched", nil)
}

func (s *Server) handleRunScan(w http.ResponseWriter, r *http.Request) {
	report, err := s.scheduler.RunOnce(r.Context())
	if err != nil {
		s.errors.WriteHTTPError(w, err)
		return
	}
	s.writeEnvelope(w, http.StatusOK, true, "Reminder scan complete", report)
}

type renewRequest struct {
	UserID          int64  `json:"userId"`
	PlanID          string `json:"planId"`
	PaymentIntentID string `json:"paymentIntentId"`
}

func (s *Server) handleRenew(w http.ResponseWriter, r *http.Request) {
	var req renewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeEnvelope(w, http.StatusBadRequest, false, "Invalid request body", nil)
		return
	}
	if res := validation.Check().
		RequireID("userId", req.UserID).
		RequireString("planId", req.PlanID).
		MaxLength("planId", req.PlanID, 64); !res.Valid {
		s.writeEnvelope(w, http.StatusBadRequest, false, res.Summary(), res)
		return
	}

	renewal, err := s.renewals.Renew(r.Context(), req.UserID, req.PlanID, req.PaymentIntentID)
	if err != nil {
		s.errors.WriteHTTPError(w, err)
		return
	}
	s.writeEnvelope(w, http.StatusOK, true, renewal.Message, renewal)
}
