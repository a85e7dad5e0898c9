package controllers

import (
	"log/slog"
	"net/http"

	h "eventms/internal/delivery/http/helpers"
	"eventms/internal/domain"
)

type AnalyticsController struct {
	Logger  *slog.Logger
	Service domain.AnalyticsService
}

func NewAnalyticsController(logger *slog.Logger, svc domain.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Logger: logger, Service: svc}
}

// GetEventAnalytics godoc
// @Summary Event analytics
// @Description Registration counters, per-group breakdown, 7-day trend, hourly histogram, peak hour, and mean check-in latency.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param eventId path string true "Event ID"
// @Success 200 {object} map[string]any "analytics"
// @Router /api/analytics/event/{eventId} [get]
func (c *AnalyticsController) GetEventAnalytics(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.PathID(w, r, "eventId")
	if !ok {
		return
	}
	analytics, err := c.Service.GetEventAnalytics(r.Context(), eventID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", h.Envelope{"analytics": analytics})
}

// CreateSnapshot godoc
// @Summary Snapshot event analytics
// @Description Persists a frozen copy of the event's current metrics.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param eventId path string true "Event ID"
// @Success 201 {object} map[string]any "snapshot"
// @Router /api/analytics/snapshot/{eventId} [post]
func (c *AnalyticsController) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.PathID(w, r, "eventId")
	if !ok {
		return
	}
	snap, err := c.Service.CreateSnapshot(r.Context(), eventID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, "Snapshot created successfully", h.Envelope{"snapshot": snap})
}

// ListSnapshots godoc
// @Summary Snapshot history
// @Description Stored snapshots for an event, newest first.
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param eventId path string true "Event ID"
// @Success 200 {object} map[string]any "snapshots"
// @Router /api/analytics/snapshots/{eventId} [get]
func (c *AnalyticsController) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.PathID(w, r, "eventId")
	if !ok {
		return
	}
	snaps, err := c.Service.ListSnapshots(r.Context(), eventID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", h.Envelope{"snapshots": snaps})
}
