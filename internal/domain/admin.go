package domain

import "context"

// OrganizerStats is an organizer account with aggregated counts.
// swagger:model OrganizerStats
type OrganizerStats struct {
	*User
	TotalEvents        int `json:"total_events"`
	TotalRegistrations int `json:"total_registrations"`
}

// AdminEvent is an event with owner info and registration count, for the
// cross-tenant listing.
// swagger:model AdminEvent
type AdminEvent struct {
	*Event
	OwnerName         string `json:"owner_name"`
	OwnerEmail        string `json:"owner_email"`
	RegistrationCount int    `json:"registration_count"`
}

// SystemStats holds platform-wide totals.
// swagger:model SystemStats
type SystemStats struct {
	TotalUsers               int    `json:"total_users"`
	TotalEvents              int    `json:"total_events"`
	TotalRegistrations       int    `json:"total_registrations"`
	AvgRegistrationsPerEvent string `json:"avg_registrations_per_event"` // one decimal
}

// AdminService defines cross-tenant oversight operations.
type AdminService interface {
	ListOrganizers(ctx context.Context) ([]*OrganizerStats, error)
	ListAllEvents(ctx context.Context) ([]*AdminEvent, error)
	ToggleUserStatus(ctx context.Context, userID string) (*User, error)
	ForceDeleteEvent(ctx context.Context, eventID string) error
	GetSystemStats(ctx context.Context) (*SystemStats, error)
}
