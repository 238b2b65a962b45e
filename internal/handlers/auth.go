package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/drivego/drivego-backend/internal/auth"
	"github.com/drivego/drivego-backend/internal/db"
	"github.com/drivego/drivego-backend/internal/middleware"
	"github.com/drivego/drivego-backend/internal/models"
)

// AuthHandler handles account registration and login. Customers and
// admins live in separate collections; the login role picks which one
// is checked.
type AuthHandler struct {
	authService *auth.Service
	users       db.UserCollection
	admins      db.UserCollection
}

// NewAuthHandler creates an authentication handler.
func NewAuthHandler(authService *auth.Service, users, admins db.UserCollection) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		users:       users,
		admins:      admins,
	}
}

// accountResponse is a user plus the role it authenticated under.
type accountResponse struct {
	models.User
	Role string `json:"role"`
}

// Register handles POST /api/auth/register for customer accounts.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" || req.FullName == "" {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := h.users.FindUserByEmail(r.Context(), email)
	if err != nil {
		log.WithError(err).Error("Register error: lookup failed")
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "User already exists")
		return
	}

	hashed, err := h.authService.HashPassword(req.Password)
	if err != nil {
		log.WithError(err).Error("Register error: hashing failed")
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	user, err := h.users.InsertUser(r.Context(), models.User{
		FullName: req.FullName,
		Email:    email,
		Password: hashed,
	})
	if err != nil {
		log.WithError(err).Error("Register error: insert failed")
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"user":    accountResponse{User: *user, Role: models.RoleUser},
	})
}

// Login handles POST /api/auth/login for both roles.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)
	role := strings.ToLower(strings.TrimSpace(req.Role))

	accounts := h.users
	if role == models.RoleAdmin {
		accounts = h.admins
	} else {
		role = models.RoleUser
	}

	user, err := accounts.FindUserByEmail(r.Context(), email)
	if err != nil {
		log.WithError(err).Error("Login error: lookup failed")
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if user == nil || !h.authService.CheckPassword(password, user.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.authService.GenerateToken(user, role)
	if err != nil {
		log.WithError(err).Error("Login error: token generation failed")
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
		"user":    accountResponse{User: *user, Role: role},
	})
}

// Me handles GET /api/auth/me, returning the authenticated account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "User context not found")
		return
	}

	accounts := h.users
	if claims.Role == models.RoleAdmin {
		accounts = h.admins
	}

	user, err := accounts.FindUserByID(r.Context(), claims.UserID)
	if err != nil && !errors.Is(err, db.ErrInvalidID) {
		log.WithError(err).Error("Profile error: lookup failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    accountResponse{User: *user, Role: claims.Role},
	})
}
