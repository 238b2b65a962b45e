package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/drivego/drivego-backend/internal/auth"
	"github.com/drivego/drivego-backend/internal/models"
)

// fakeUserCollection serves accounts keyed by email.
type fakeUserCollection struct {
	byEmail map[string]*models.User
	err     error
}

func newFakeUsers(users ...*models.User) *fakeUserCollection {
	f := &fakeUserCollection{byEmail: map[string]*models.User{}}
	for _, u := range users {
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeUserCollection) InsertUser(ctx context.Context, u models.User) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.byEmail[u.Email] = &u
	return &u, nil
}

func (f *fakeUserCollection) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byEmail[email], nil
}

func (f *fakeUserCollection) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byEmail {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserCollection) UpsertUserByEmail(ctx context.Context, u models.User) error {
	f.byEmail[u.Email] = &u
	return f.err
}

func postJSON(t *testing.T, target string, body interface{}) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, target, bytes.NewBuffer(data))
}

func TestAuthHandler_Register(t *testing.T) {
	authService, err := auth.NewService()
	require.NoError(t, err)

	t.Run("successful registration", func(t *testing.T) {
		users := newFakeUsers()
		handler := NewAuthHandler(authService, users, newFakeUsers())

		w := httptest.NewRecorder()
		handler.Register(w, postJSON(t, "/api/auth/register", models.RegisterRequest{
			FullName: "Demo User",
			Email:    "New@Example.com",
			Password: "User1234!",
		}))

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp struct {
			Success bool `json:"success"`
			User    struct {
				Email string `json:"email"`
				Role  string `json:"role"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "new@example.com", resp.User.Email)
		assert.Equal(t, models.RoleUser, resp.User.Role)
		assert.NotContains(t, w.Body.String(), "password")

		stored := users.byEmail["new@example.com"]
		require.NotNil(t, stored)
		assert.NotEqual(t, "User1234!", stored.Password)
		assert.True(t, authService.CheckPassword("User1234!", stored.Password))
	})

	t.Run("missing fields", func(t *testing.T) {
		handler := NewAuthHandler(authService, newFakeUsers(), newFakeUsers())
		w := httptest.NewRecorder()
		handler.Register(w, postJSON(t, "/api/auth/register", models.RegisterRequest{Email: "a@b.com"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "All fields are required")
	})

	t.Run("duplicate email", func(t *testing.T) {
		existing := &models.User{ID: primitive.NewObjectID(), Email: "taken@example.com"}
		handler := NewAuthHandler(authService, newFakeUsers(existing), newFakeUsers())
		w := httptest.NewRecorder()
		handler.Register(w, postJSON(t, "/api/auth/register", models.RegisterRequest{
			FullName: "Other", Email: "taken@example.com", Password: "pw123456",
		}))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "User already exists")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	authService, err := auth.NewService()
	require.NoError(t, err)
	hash, err := authService.HashPassword("User1234!")
	require.NoError(t, err)

	customer := &models.User{ID: primitive.NewObjectID(), FullName: "Demo User", Email: "user@drivego.demo", Password: hash}
	admin := &models.User{ID: primitive.NewObjectID(), FullName: "Demo Admin", Email: "admin@drivego.demo", Password: hash}

	t.Run("user login", func(t *testing.T) {
		handler := NewAuthHandler(authService, newFakeUsers(customer), newFakeUsers(admin))
		w := httptest.NewRecorder()
		handler.Login(w, postJSON(t, "/api/auth/login", models.LoginRequest{
			Email: " User@DriveGO.demo ", Password: "User1234!", Role: "user",
		}))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Success bool   `json:"success"`
			Token   string `json:"token"`
			User    struct {
				Role string `json:"role"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, models.RoleUser, resp.User.Role)

		claims, err := authService.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, customer.ID.Hex(), claims.UserID)
		assert.Equal(t, models.RoleUser, claims.Role)
	})

	t.Run("admin role checks admins collection", func(t *testing.T) {
		handler := NewAuthHandler(authService, newFakeUsers(customer), newFakeUsers(admin))
		w := httptest.NewRecorder()
		handler.Login(w, postJSON(t, "/api/auth/login", models.LoginRequest{
			Email: "admin@drivego.demo", Password: "User1234!", Role: "Admin",
		}))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"role":"admin"`)
	})

	t.Run("admin email cannot log in as user", func(t *testing.T) {
		handler := NewAuthHandler(authService, newFakeUsers(customer), newFakeUsers(admin))
		w := httptest.NewRecorder()
		handler.Login(w, postJSON(t, "/api/auth/login", models.LoginRequest{
			Email: "admin@drivego.demo", Password: "User1234!", Role: "user",
		}))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		handler := NewAuthHandler(authService, newFakeUsers(customer), newFakeUsers(admin))
		w := httptest.NewRecorder()
		handler.Login(w, postJSON(t, "/api/auth/login", models.LoginRequest{
			Email: "user@drivego.demo", Password: "nope", Role: "user",
		}))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	})

	t.Run("unknown account", func(t *testing.T) {
		handler := NewAuthHandler(authService, newFakeUsers(), newFakeUsers())
		w := httptest.NewRecorder()
		handler.Login(w, postJSON(t, "/api/auth/login", models.LoginRequest{
			Email: "ghost@drivego.demo", Password: "User1234!",
		}))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("legacy plain-text password still matches", func(t *testing.T) {
		legacy := &models.User{ID: primitive.NewObjectID(), Email: "legacy@drivego.demo", Password: "OldPlain1!"}
		handler := NewAuthHandler(authService, newFakeUsers(legacy), newFakeUsers())
		w := httptest.NewRecorder()
		handler.Login(w, postJSON(t, "/api/auth/login", models.LoginRequest{
			Email: "legacy@drivego.demo", Password: "OldPlain1!", Role: "user",
		}))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	authService, err := auth.NewService()
	require.NoError(t, err)
	customer := &models.User{ID: primitive.NewObjectID(), FullName: "Demo User", Email: "user@drivego.demo"}

	t.Run("without claims", func(t *testing.T) {
		handler := NewAuthHandler(authService, newFakeUsers(customer), newFakeUsers())
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		w := httptest.NewRecorder()
		handler.Me(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
