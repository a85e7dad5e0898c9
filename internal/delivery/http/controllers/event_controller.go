package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "eventms/internal/delivery/http/helpers"
	"eventms/internal/delivery/http/middleware"
	"eventms/internal/domain"
)

// CreateEventRequest is the request body for POST /api/events
type CreateEventRequest struct {
	Title                string     `json:"title"`
	Date                 time.Time  `json:"date"`
	Location             string     `json:"location"`
	Description          string     `json:"description"`
	Capacity             *int       `json:"capacity"`
	WaitlistEnabled      bool       `json:"waitlist_enabled"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	Status               string     `json:"status"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if c.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	if strings.TrimSpace(c.Location) == "" {
		errs = append(errs, "location is required")
	}
	if c.Capacity != nil && *c.Capacity < 1 {
		errs = append(errs, "capacity must be at least 1")
	}
	if c.Status != "" {
		switch c.Status {
		case domain.EventStatusDraft, domain.EventStatusPublished, domain.EventStatusCancelled, domain.EventStatusCompleted:
		default:
			errs = append(errs, "invalid status")
		}
	}
	return errs
}

// UpdateEventRequest is the request body for PUT /api/events/{id}.
// Absent fields are left unchanged; explicit nulls clear capacity and deadline.
type UpdateEventRequest struct {
	Title                *string    `json:"title"`
	Date                 *time.Time `json:"date"`
	Location             *string    `json:"location"`
	Description          *string    `json:"description"`
	Capacity             *int       `json:"capacity"`
	ClearCapacity        bool       `json:"clear_capacity"`
	WaitlistEnabled      *bool      `json:"waitlist_enabled"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	ClearDeadline        bool       `json:"clear_deadline"`
	Status               *string    `json:"status"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs = append(errs, "title cannot be empty")
	}
	if u.Capacity != nil && *u.Capacity < 1 {
		errs = append(errs, "capacity must be at least 1")
	}
	return errs
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{Logger: logger, Service: svc}
}

// Create godoc
// @Summary Create an event
// @Description Create an event owned by the caller. Capacity null means unlimited. Status defaults to published.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} map[string]any "event"
// @Failure 400 {object} map[string]any
// @Router /api/events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req CreateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	event := domain.NewEvent(strings.TrimSpace(req.Title), req.Date, req.Location, req.Description, userID, time.Time{}, time.Time{})
	event.Capacity = req.Capacity
	event.WaitlistEnabled = req.WaitlistEnabled
	event.RegistrationDeadline = req.RegistrationDeadline
	if req.Status != "" {
		event.Status = req.Status
	}

	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, "Event created successfully", h.Envelope{"event": event})
}

// List godoc
// @Summary List my events
// @Description Events where the caller is owner or team member, with registration stats.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "events"
// @Router /api/events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	events, err := c.Service.ListMyEvents(r.Context(), userID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", h.Envelope{"events": events})
}

// GetPublic godoc
// @Summary Get an event (public)
// @Description Unauthenticated event view for the registration page, with capacity and deadline state.
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} map[string]any "event"
// @Failure 404 {object} map[string]any
// @Router /api/events/{id} [get]
func (c *EventController) GetPublic(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}
	event, err := c.Service.GetPublicEvent(r.Context(), id)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", h.Envelope{"event": event})
}

// Update godoc
// @Summary Update an event
// @Description Field-level merge; caller must be owner or editor. Non-editors get 404.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param body body UpdateEventRequest true "Fields to change"
// @Success 200 {object} map[string]any "event"
// @Failure 404 {object} map[string]any
// @Router /api/events/{id} [put]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	upd := domain.EventUpdate{
		Title:                req.Title,
		Date:                 req.Date,
		Location:             req.Location,
		Description:          req.Description,
		Capacity:             req.Capacity,
		ClearCapacity:        req.ClearCapacity,
		WaitlistEnabled:      req.WaitlistEnabled,
		RegistrationDeadline: req.RegistrationDeadline,
		ClearDeadline:        req.ClearDeadline,
		Status:               req.Status,
	}
	event, err := c.Service.UpdateEvent(r.Context(), id, userID, upd)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Event updated successfully", h.Envelope{"event": event})
}

// Delete godoc
// @Summary Delete an event
// @Description Owner only; registrations are removed with the event. Non-owners get 404.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/events/{id} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	id, ok := h.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), id, userID); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Event deleted successfully", nil)
}
