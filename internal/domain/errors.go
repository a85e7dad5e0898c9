package domain

import "errors"

// Sentinel errors shared across services. Controllers map these to HTTP statuses.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")

	// ErrAtCapacity is returned when an event has no spots left and no waitlist.
	ErrAtCapacity = errors.New("event is at capacity")
	// ErrRegistrationClosed is returned when the event is not published or its
	// registration deadline has passed.
	ErrRegistrationClosed = errors.New("registration is closed")
	// ErrExpired is returned when redeeming a team invitation past its expiry.
	ErrExpired = errors.New("invitation has expired")
	// ErrAlreadyMember is returned when adding a user already on an event team.
	ErrAlreadyMember = errors.New("already a team member")
)
