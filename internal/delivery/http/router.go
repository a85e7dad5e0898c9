package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventms/internal/delivery/http/controllers"
	"eventms/internal/delivery/http/middleware"
	"eventms/internal/domain"
)

// Controllers bundles every controller the router mounts.
type Controllers struct {
	Auth         *controllers.AuthController
	Event        *controllers.EventController
	Group        *controllers.StakeholderGroupController
	Registration *controllers.RegistrationController
	Team         *controllers.TeamController
	Template     *controllers.TemplateController
	Analytics    *controllers.AnalyticsController
	Email        *controllers.EmailController
	Admin        *controllers.AdminController
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(c Controllers, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)
	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireAdmin(next))
	}

	// Auth
	mux.HandleFunc("POST /api/auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /api/auth/login", c.Auth.Login)
	mux.HandleFunc("GET /api/auth/me", auth(c.Auth.Me))

	// Events
	mux.HandleFunc("POST /api/events", auth(c.Event.Create))
	mux.HandleFunc("GET /api/events", auth(c.Event.List))
	mux.HandleFunc("GET /api/events/{id}", c.Event.GetPublic)
	mux.HandleFunc("PUT /api/events/{id}", auth(c.Event.Update))
	mux.HandleFunc("DELETE /api/events/{id}", auth(c.Event.Delete))

	// Stakeholder groups
	mux.HandleFunc("GET /api/stakeholder-groups/event/{eventId}", c.Group.ListByEvent)
	mux.HandleFunc("POST /api/stakeholder-groups", auth(c.Group.Create))
	mux.HandleFunc("PUT /api/stakeholder-groups/{id}", auth(c.Group.Update))
	mux.HandleFunc("DELETE /api/stakeholder-groups/{id}", auth(c.Group.Delete))

	// Registrations
	mux.HandleFunc("POST /api/registrations", c.Registration.Create)
	mux.HandleFunc("GET /api/registrations/event/{eventId}", auth(c.Registration.ListByEvent))
	mux.HandleFunc("PATCH /api/registrations/{id}/checkin", auth(c.Registration.ToggleCheckIn))
	mux.HandleFunc("DELETE /api/registrations/{id}", auth(c.Registration.Delete))

	// Team
	mux.HandleFunc("GET /api/team/event/{eventId}", auth(c.Team.GetTeam))
	mux.HandleFunc("POST /api/team/invite", auth(c.Team.Invite))
	mux.HandleFunc("POST /api/team/accept/{token}", auth(c.Team.Accept))
	mux.HandleFunc("DELETE /api/team/event/{eventId}/member/{userId}", auth(c.Team.RemoveMember))

	// Templates
	mux.HandleFunc("GET /api/templates", auth(c.Template.List))
	mux.HandleFunc("POST /api/templates", auth(c.Template.Save))
	mux.HandleFunc("POST /api/templates/{id}/apply", auth(c.Template.Apply))
	mux.HandleFunc("DELETE /api/templates/{id}", auth(c.Template.Delete))

	// Analytics
	mux.HandleFunc("GET /api/analytics/event/{eventId}", auth(c.Analytics.GetEventAnalytics))
	mux.HandleFunc("POST /api/analytics/snapshot/{eventId}", auth(c.Analytics.CreateSnapshot))
	mux.HandleFunc("GET /api/analytics/snapshots/{eventId}", auth(c.Analytics.ListSnapshots))

	// Emails
	mux.HandleFunc("POST /api/emails/send", auth(c.Email.Send))
	mux.HandleFunc("GET /api/emails/event/{eventId}", auth(c.Email.ListLogs))

	// Admin
	mux.HandleFunc("GET /api/admin/organizers", admin(c.Admin.ListOrganizers))
	mux.HandleFunc("GET /api/admin/events", admin(c.Admin.ListEvents))
	mux.HandleFunc("PATCH /api/admin/organizers/{id}/toggle-status", admin(c.Admin.ToggleUserStatus))
	mux.HandleFunc("DELETE /api/admin/events/{id}", admin(c.Admin.DeleteEvent))
	mux.HandleFunc("GET /api/admin/stats", admin(c.Admin.GetStats))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
