package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "eventms/internal/delivery/http/helpers"
	"eventms/internal/domain"
)

// SendAnnouncementRequest is the request body for POST /api/emails/send
type SendAnnouncementRequest struct {
	EventID  string   `json:"event_id"`
	GroupIDs []string `json:"group_ids"`
	Subject  string   `json:"subject"`
	Message  string   `json:"message"`
}

// Validate implements Validator.
func (s SendAnnouncementRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.EventID) == "" {
		errs = append(errs, "event_id is required")
	}
	if len(s.GroupIDs) == 0 {
		errs = append(errs, "at least one group is required")
	}
	if strings.TrimSpace(s.Subject) == "" {
		errs = append(errs, "subject is required")
	}
	if strings.TrimSpace(s.Message) == "" {
		errs = append(errs, "message is required")
	}
	return errs
}

type EmailController struct {
	Logger  *slog.Logger
	Service domain.AnnouncementService
}

func NewEmailController(logger *slog.Logger, svc domain.AnnouncementService) *EmailController {
	return &EmailController{Logger: logger, Service: svc}
}

// Send godoc
// @Summary Send an announcement
// @Description Emails all registrants of the selected stakeholder groups. Addresses come from email-like answers; an audit log entry is written regardless of delivery outcome.
// @Tags emails
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SendAnnouncementRequest true "Announcement"
// @Success 200 {object} map[string]any "recipient_count"
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/emails/send [post]
func (c *EmailController) Send(w http.ResponseWriter, r *http.Request) {
	var req SendAnnouncementRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	recipients, err := c.Service.SendToGroups(r.Context(), req.EventID, req.GroupIDs, req.Subject, req.Message)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Announcement sent", h.Envelope{"recipient_count": recipients})
}

// ListLogs godoc
// @Summary Announcement history
// @Description Email logs for an event, newest first.
// @Tags emails
// @Produce json
// @Security BearerAuth
// @Param eventId path string true "Event ID"
// @Success 200 {object} map[string]any "email_logs"
// @Router /api/emails/event/{eventId} [get]
func (c *EmailController) ListLogs(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.PathID(w, r, "eventId")
	if !ok {
		return
	}
	logs, err := c.Service.ListLogs(r.Context(), eventID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", h.Envelope{"email_logs": logs})
}
