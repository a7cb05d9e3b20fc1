package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes builds the API router. Public endpoints sit on the root router,
// authenticated ones behind the bearer-token middleware and moderation
// endpoints behind the admin check on top of that.
func (h *Handlers) Routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Public.
	api.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/posts", h.GetFeed).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", h.GetPost).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", h.GetUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}/posts", h.GetPostsByAuthor).Methods(http.MethodGet)
	api.HandleFunc("/ai/chat", h.Chat).Methods(http.MethodPost)
	api.HandleFunc("/ai/images", h.GenerateImage).Methods(http.MethodPost)
	api.HandleFunc("/ai/places", h.FindPlaces).Methods(http.MethodPost)

	// Authenticated.
	auth := api.NewRoute().Subrouter()
	auth.Use(h.Auth)
	auth.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost)
	auth.HandleFunc("/auth/me", h.GetCurrentUser).Methods(http.MethodGet)
	auth.HandleFunc("/auth/me", h.UpdateProfile).Methods(http.MethodPut)
	auth.HandleFunc("/posts", h.CreatePost).Methods(http.MethodPost)
	auth.HandleFunc("/posts/{id}", h.UpdatePost).Methods(http.MethodPut)
	auth.HandleFunc("/posts/{id}", h.DeletePost).Methods(http.MethodDelete)
	auth.HandleFunc("/posts/{id}/like", h.ToggleLike).Methods(http.MethodPost)
	auth.HandleFunc("/posts/{id}/comments", h.AddComment).Methods(http.MethodPost)
	auth.HandleFunc("/uploads", h.UploadImage).Methods(http.MethodPost)
	auth.HandleFunc("/uploads/{object:.+}", h.DeleteUploadedImage).Methods(http.MethodDelete)
	auth.HandleFunc("/reports", h.SubmitReport).Methods(http.MethodPost)

	// Admin.
	admin := api.NewRoute().Subrouter()
	admin.Use(h.Auth, h.AdminOnly)
	admin.HandleFunc("/reports", h.ListReports).Methods(http.MethodGet)
	admin.HandleFunc("/reports/{id}/resolve", h.ResolveReport).Methods(http.MethodPost)
	admin.HandleFunc("/reports/{id}/content", h.DeleteReportedContent).Methods(http.MethodDelete)
	admin.HandleFunc("/users", h.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", h.DeleteUser).Methods(http.MethodDelete)
	admin.HandleFunc("/users/{id}/role", h.ToggleUserRole).Methods(http.MethodPost)

	return r
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}
