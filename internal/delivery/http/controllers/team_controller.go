package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "eventms/internal/delivery/http/helpers"
	"eventms/internal/delivery/http/middleware"
	"eventms/internal/domain"
)

// InviteRequest is the request body for POST /api/team/invite
type InviteRequest struct {
	EventID string `json:"event_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

// Validate implements Validator.
func (i InviteRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(i.EventID) == "" {
		errs = append(errs, "event_id is required")
	}
	if strings.TrimSpace(i.Email) == "" {
		errs = append(errs, "email is required")
	}
	if i.Role != domain.TeamRoleEditor && i.Role != domain.TeamRoleViewer {
		errs = append(errs, "role must be \"editor\" or \"viewer\"")
	}
	return errs
}

type TeamController struct {
	Logger  *slog.Logger
	Service domain.TeamService
}

func NewTeamController(logger *slog.Logger, svc domain.TeamService) *TeamController {
	return &TeamController{Logger: logger, Service: svc}
}

// GetTeam godoc
// @Summary Get an event's team
// @Description Team members with user info, plus pending invitations.
// @Tags team
// @Produce json
// @Security BearerAuth
// @Param eventId path string true "Event ID"
// @Success 200 {object} map[string]any "members and invitations"
// @Failure 404 {object} map[string]any
// @Router /api/team/event/{eventId} [get]
func (c *TeamController) GetTeam(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	eventID, ok := h.PathID(w, r, "eventId")
	if !ok {
		return
	}
	members, invitations, err := c.Service.GetTeam(r.Context(), eventID, userID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", h.Envelope{
		"members":     members,
		"invitations": invitations,
	})
}

// Invite godoc
// @Summary Invite a team member
// @Description Owner or editor invites an email address as editor or viewer. Sends an invitation email with a 7-day accept link.
// @Tags team
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body InviteRequest true "Invitation data"
// @Success 201 {object} map[string]any "invitation"
// @Failure 400 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Router /api/team/invite [post]
func (c *TeamController) Invite(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req InviteRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	inv, err := c.Service.Invite(r.Context(), req.EventID, userID, req.Email, req.Role)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, "Invitation sent successfully", h.Envelope{"invitation": inv})
}

// Accept godoc
// @Summary Accept a team invitation
// @Description Redeems a pending invitation token. The caller's email must match the invited address; expired tokens are rejected.
// @Tags team
// @Produce json
// @Security BearerAuth
// @Param token path string true "Invitation token"
// @Success 200 {object} map[string]any "event"
// @Failure 400 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/team/accept/{token} [post]
func (c *TeamController) Accept(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	token := r.PathValue("token")
	if token == "" {
		h.WriteError(w, http.StatusBadRequest, "invitation token is required")
		return
	}
	event, err := c.Service.Accept(r.Context(), token, userID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Invitation accepted", h.Envelope{"event": event})
}

// RemoveMember godoc
// @Summary Remove a team member
// @Description Owner only; the owner cannot be removed.
// @Tags team
// @Produce json
// @Security BearerAuth
// @Param eventId path string true "Event ID"
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/team/event/{eventId}/member/{userId} [delete]
func (c *TeamController) RemoveMember(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.UserIDFromContext(r.Context())
	eventID, ok := h.PathID(w, r, "eventId")
	if !ok {
		return
	}
	userID, ok := h.PathID(w, r, "userId")
	if !ok {
		return
	}
	if err := c.Service.RemoveMember(r.Context(), eventID, userID, callerID); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Team member removed", nil)
}
