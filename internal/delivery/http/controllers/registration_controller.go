package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "eventms/internal/delivery/http/helpers"
	"eventms/internal/domain"
)

// CreateRegistrationRequest is the request body for POST /api/registrations.
// Answer values may be strings or arrays of strings, keyed by field name.
type CreateRegistrationRequest struct {
	EventID            string           `json:"event_id"`
	StakeholderGroupID string           `json:"stakeholder_group_id"`
	Answers            domain.AnswerMap `json:"answers"`
}

// Validate implements Validator.
func (c CreateRegistrationRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.EventID) == "" {
		errs = append(errs, "event_id is required")
	}
	if strings.TrimSpace(c.StakeholderGroupID) == "" {
		errs = append(errs, "stakeholder_group_id is required")
	}
	if len(c.Answers) == 0 {
		errs = append(errs, "answers are required")
	}
	return errs
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{Logger: logger, Service: svc}
}

// Create godoc
// @Summary Submit a registration (public)
// @Description Register for an event under a stakeholder group. Enforces the event's status, deadline, and capacity; full events with a waitlist produce waitlisted registrations. Returns the registration with its QR code.
// @Tags registrations
// @Accept json
// @Produce json
// @Param body body CreateRegistrationRequest true "Registration data"
// @Success 201 {object} map[string]any "registration"
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/registrations [post]
func (c *RegistrationController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRegistrationRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	reg, err := c.Service.CreateRegistration(r.Context(), req.EventID, req.StakeholderGroupID, req.Answers)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, "Registration successful", h.Envelope{"registration": reg})
}

// ListByEvent godoc
// @Summary List registrations for an event
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventId path string true "Event ID"
// @Success 200 {object} map[string]any "registrations"
// @Router /api/registrations/event/{eventId} [get]
func (c *RegistrationController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.PathID(w, r, "eventId")
	if !ok {
		return
	}
	regs, err := c.Service.ListByEvent(r.Context(), eventID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", h.Envelope{"registrations": regs})
}

// ToggleCheckIn godoc
// @Summary Toggle check-in
// @Description Flips the registration's checked-in flag; scanning twice undoes the check-in.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Registration ID"
// @Success 200 {object} map[string]any "registration"
// @Failure 404 {object} map[string]any
// @Router /api/registrations/{id}/checkin [patch]
func (c *RegistrationController) ToggleCheckIn(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}
	reg, err := c.Service.ToggleCheckIn(r.Context(), id)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	message := "Checked in successfully"
	if !reg.CheckedIn {
		message = "Check-in removed"
	}
	h.WriteSuccess(w, http.StatusOK, message, h.Envelope{"registration": reg})
}

// Delete godoc
// @Summary Delete a registration
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Registration ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/registrations/{id} [delete]
func (c *RegistrationController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.Service.DeleteRegistration(r.Context(), id); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Registration deleted successfully", nil)
}
