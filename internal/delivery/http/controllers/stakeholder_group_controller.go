package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "eventms/internal/delivery/http/helpers"
	"eventms/internal/domain"
)

// CreateGroupRequest is the request body for POST /api/stakeholder-groups
type CreateGroupRequest struct {
	EventID string                   `json:"event_id"`
	Name    string                   `json:"name"`
	Fields  []domain.FieldDefinition `json:"fields"`
}

// Validate implements Validator.
func (c CreateGroupRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.EventID) == "" {
		errs = append(errs, "event_id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if len(c.Fields) == 0 {
		errs = append(errs, "at least one field is required")
	}
	return errs
}

// UpdateGroupRequest is the request body for PUT /api/stakeholder-groups/{id}
type UpdateGroupRequest struct {
	Name   string                   `json:"name"`
	Fields []domain.FieldDefinition `json:"fields"`
}

// Validate implements Validator.
func (u UpdateGroupRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(u.Name) == "" {
		errs = append(errs, "name is required")
	}
	if len(u.Fields) == 0 {
		errs = append(errs, "at least one field is required")
	}
	return errs
}

type StakeholderGroupController struct {
	Logger  *slog.Logger
	Service domain.StakeholderGroupService
}

func NewStakeholderGroupController(logger *slog.Logger, svc domain.StakeholderGroupService) *StakeholderGroupController {
	return &StakeholderGroupController{Logger: logger, Service: svc}
}

// Create godoc
// @Summary Create a stakeholder group
// @Description Define a participant category with its registration form fields. Choice fields need at least one option.
// @Tags stakeholder-groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateGroupRequest true "Group definition"
// @Success 201 {object} map[string]any "stakeholder_group"
// @Failure 400 {object} map[string]any
// @Router /api/stakeholder-groups [post]
func (c *StakeholderGroupController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	group, err := c.Service.CreateGroup(r.Context(), req.EventID, req.Name, req.Fields)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, "Stakeholder group created successfully", h.Envelope{"stakeholder_group": group})
}

// ListByEvent godoc
// @Summary List groups for an event (public)
// @Description Used by the public registration page to render form choices.
// @Tags stakeholder-groups
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {object} map[string]any "stakeholder_groups"
// @Router /api/stakeholder-groups/event/{eventId} [get]
func (c *StakeholderGroupController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.PathID(w, r, "eventId")
	if !ok {
		return
	}
	groups, err := c.Service.ListGroups(r.Context(), eventID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", h.Envelope{"stakeholder_groups": groups})
}

// Update godoc
// @Summary Update a stakeholder group
// @Description Replaces the group's name and field list. Existing registration answers are not migrated.
// @Tags stakeholder-groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param body body UpdateGroupRequest true "New definition"
// @Success 200 {object} map[string]any "stakeholder_group"
// @Failure 404 {object} map[string]any
// @Router /api/stakeholder-groups/{id} [put]
func (c *StakeholderGroupController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateGroupRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	group, err := c.Service.UpdateGroup(r.Context(), id, req.Name, req.Fields)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Stakeholder group updated successfully", h.Envelope{"stakeholder_group": group})
}

// Delete godoc
// @Summary Delete a stakeholder group
// @Tags stakeholder-groups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/stakeholder-groups/{id} [delete]
func (c *StakeholderGroupController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.Service.DeleteGroup(r.Context(), id); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Stakeholder group deleted successfully", nil)
}
