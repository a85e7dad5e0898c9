package controllers

import (
	"log/slog"
	"net/http"

	h "eventms/internal/delivery/http/helpers"
	"eventms/internal/domain"
)

type AdminController struct {
	Logger  *slog.Logger
	Service domain.AdminService
}

func NewAdminController(logger *slog.Logger, svc domain.AdminService) *AdminController {
	return &AdminController{Logger: logger, Service: svc}
}

// ListOrganizers godoc
// @Summary List organizers (admin)
// @Description All organizer and admin accounts with their event and registration totals.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "organizers"
// @Failure 403 {object} map[string]any
// @Router /api/admin/organizers [get]
func (c *AdminController) ListOrganizers(w http.ResponseWriter, r *http.Request) {
	organizers, err := c.Service.ListOrganizers(r.Context())
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", h.Envelope{"organizers": organizers})
}

// ListEvents godoc
// @Summary List all events (admin)
// @Description Every event across all organizers, with owner info and registration counts.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "events"
// @Failure 403 {object} map[string]any
// @Router /api/admin/events [get]
func (c *AdminController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListAllEvents(r.Context())
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", h.Envelope{"events": events})
}

// ToggleUserStatus godoc
// @Summary Suspend or reactivate a user (admin)
// @Description Flips the account's active flag. Suspended users cannot log in.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]any "user"
// @Failure 404 {object} map[string]any
// @Router /api/admin/organizers/{id}/toggle-status [patch]
func (c *AdminController) ToggleUserStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}
	user, err := c.Service.ToggleUserStatus(r.Context(), id)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	message := "User suspended"
	if user.Active {
		message = "User reactivated"
	}
	h.WriteSuccess(w, http.StatusOK, message, h.Envelope{"user": user})
}

// DeleteEvent godoc
// @Summary Force delete an event (admin)
// @Description Deletes any event regardless of ownership, cascading its registrations.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/admin/events/{id} [delete]
func (c *AdminController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.Service.ForceDeleteEvent(r.Context(), id); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Event deleted successfully", nil)
}

// GetStats godoc
// @Summary Platform stats (admin)
// @Description Totals for users, events, and registrations, plus average registrations per event.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "stats"
// @Failure 403 {object} map[string]any
// @Router /api/admin/stats [get]
func (c *AdminController) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.GetSystemStats(r.Context())
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", h.Envelope{"stats": stats})
}
