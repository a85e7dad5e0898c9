package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "eventms/internal/delivery/http/helpers"
	"eventms/internal/delivery/http/middleware"
	"eventms/internal/domain"
)

// SaveTemplateRequest is the request body for POST /api/templates
type SaveTemplateRequest struct {
	Name    string `json:"name"`
	EventID string `json:"event_id"`
}

// Validate implements Validator.
func (s SaveTemplateRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(s.EventID) == "" {
		errs = append(errs, "event_id is required")
	}
	return errs
}

// ApplyTemplateRequest is the request body for POST /api/templates/{id}/apply
type ApplyTemplateRequest struct {
	EventID string `json:"event_id"`
}

// Validate implements Validator.
func (a ApplyTemplateRequest) Validate() []string {
	if strings.TrimSpace(a.EventID) == "" {
		return []string{"event_id is required"}
	}
	return nil
}

type TemplateController struct {
	Logger  *slog.Logger
	Service domain.TemplateService
}

func NewTemplateController(logger *slog.Logger, svc domain.TemplateService) *TemplateController {
	return &TemplateController{Logger: logger, Service: svc}
}

// List godoc
// @Summary List my templates
// @Tags templates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "templates"
// @Router /api/templates [get]
func (c *TemplateController) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	tpls, err := c.Service.ListTemplates(r.Context(), userID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", h.Envelope{"templates": tpls})
}

// Save godoc
// @Summary Save an event as a template
// @Description Snapshots the event's stakeholder groups and capacity settings. Owner only.
// @Tags templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SaveTemplateRequest true "Template data"
// @Success 201 {object} map[string]any "template"
// @Failure 404 {object} map[string]any
// @Router /api/templates [post]
func (c *TemplateController) Save(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req SaveTemplateRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	tpl, err := c.Service.SaveTemplate(r.Context(), req.Name, req.EventID, userID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, "Template saved successfully", h.Envelope{"template": tpl})
}

// Apply godoc
// @Summary Apply a template to an event
// @Description Replaces the event's groups with the template snapshot and overwrites its capacity settings. Increments the template's usage count.
// @Tags templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Param body body ApplyTemplateRequest true "Target event"
// @Success 200 {object} map[string]any "event"
// @Failure 404 {object} map[string]any
// @Router /api/templates/{id}/apply [post]
func (c *TemplateController) Apply(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}
	var req ApplyTemplateRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.ApplyTemplate(r.Context(), id, req.EventID, userID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Template applied successfully", h.Envelope{"event": event})
}

// Delete godoc
// @Summary Delete a template
// @Tags templates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/templates/{id} [delete]
func (c *TemplateController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.Service.DeleteTemplate(r.Context(), id, userID); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Template deleted successfully", nil)
}
