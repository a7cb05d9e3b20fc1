package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"vlogify/internal/service"
)

// GetUser returns a single user's public profile.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			WriteError(w, "User not found", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, toUserResponse(*user), http.StatusOK)
}

// ListUsers returns every registered user without credential material.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, h.Users.List(r.Context()), http.StatusOK)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requestUser(r)
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	userID := mux.Vars(r)["id"]
	if userID == actor.ID {
		WriteError(w, "You cannot delete your own account", http.StatusBadRequest)
		return
	}

	if err := h.Users.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			WriteError(w, "User not found", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, map[string]string{"status": "deleted"}, http.StatusOK)
}

// ToggleUserRole flips a user between the user and admin roles.
func (h *Handlers) ToggleUserRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requestUser(r)
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	userID := mux.Vars(r)["id"]
	if userID == actor.ID {
		WriteError(w, "You cannot change your own role", http.StatusBadRequest)
		return
	}

	user, err := h.Users.ToggleRole(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			WriteError(w, "User not found", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, toUserResponse(*user), http.StatusOK)
}
