package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"unicode/utf8"

	"vlogify/internal/models"
	"vlogify/internal/session"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profilePicture"`
	Role           string `json:"role"`
}

type AuthResponse struct {
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}

func toUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		Role:           u.Role,
	}
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		WriteError(w, "Name is required", http.StatusBadRequest)
		return
	}

	if !emailPattern.MatchString(req.Email) {
		WriteError(w, "Invalid email format", http.StatusBadRequest)
		return
	}

	if utf8.RuneCountInString(req.Password) < 6 {
		WriteError(w, "Password must be at least 6 characters", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid data", http.StatusBadRequest)
		return
	}

	user, err := h.Sessions.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrEmailTaken) {
			WriteError(w, "Email is already registered", http.StatusConflict)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	token, err := h.Sessions.GenerateAccessToken(user)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, AuthResponse{
		AccessToken: token,
		User:        toUserResponse(*user),
	}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		WriteError(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, token, err := h.Sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			WriteError(w, "Invalid email or password", http.StatusUnauthorized)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, AuthResponse{
		AccessToken: token,
		User:        toUserResponse(*user),
	}, http.StatusOK)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Logout(r.Context())
	WriteSuccess(w, map[string]string{"status": "logged out"}, http.StatusOK)
}

// GetCurrentUser returns the account behind the access token.
func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requestUser(r)
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	WriteSuccess(w, toUserResponse(*user), http.StatusOK)
}

// UpdateProfile merges the submitted fields into the current user.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req session.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if req.Email != "" && !emailPattern.MatchString(req.Email) {
		WriteError(w, "Invalid email format", http.StatusBadRequest)
		return
	}

	actor, ok := h.requestUser(r)
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	user, err := h.Sessions.UpdateUserByID(r.Context(), actor.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotAuthenticated):
			WriteError(w, "Authentication required", http.StatusUnauthorized)
		case errors.Is(err, session.ErrUserNotFound):
			WriteError(w, "User not found", http.StatusNotFound)
		default:
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, toUserResponse(*user), http.StatusOK)
}
