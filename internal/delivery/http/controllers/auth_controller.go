package controllers

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	h "eventms/internal/delivery/http/helpers"
	"eventms/internal/delivery/http/middleware"
	"eventms/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// SignUpRequest is the request body for POST /api/auth/signup
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // optional: "organizer" or "participant" (defaults to "organizer")
}

// Validate implements Validator.
func (s SignUpRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name is required")
	}
	email := strings.TrimSpace(strings.ToLower(s.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if s.Password == "" {
		errs = append(errs, "password is required")
	} else if len(s.Password) < 6 {
		errs = append(errs, "password must be at least 6 characters")
	}
	role := strings.TrimSpace(strings.ToLower(s.Role))
	if role != "" && role != domain.RoleOrganizer && role != domain.RoleParticipant {
		errs = append(errs, "role must be \"organizer\" or \"participant\"")
	}
	return errs
}

// LoginRequest is the request body for POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Email) == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{Logger: logger, Service: svc}
}

// SignUp godoc
// @Summary Sign up a new user
// @Description Create a user with name, email, and password. Optional role: "organizer" or "participant" (defaults to "organizer"). Returns the user and a JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Sign-up data"
// @Success 201 {object} map[string]any "user and token"
// @Failure 400 {object} map[string]any
// @Router /api/auth/signup [post]
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	user, token, err := c.Service.SignUp(r.Context(), req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusCreated, "User registered successfully", h.Envelope{
		"user":  user,
		"token": token,
	})
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password. Suspended accounts are rejected. Returns the user and a JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]any "user and token"
// @Failure 401 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Router /api/auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	user, token, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "Login successful", h.Envelope{
		"user":  user,
		"token": token,
	})
}

// Me godoc
// @Summary Current user
// @Description Return the authenticated user's profile.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "user"
// @Failure 401 {object} map[string]any
// @Router /api/auth/me [get]
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	user, err := c.Service.GetByID(r.Context(), userID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	h.WriteSuccess(w, http.StatusOK, "", h.Envelope{"user": user})
}
