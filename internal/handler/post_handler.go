package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"vlogify/internal/service"
)

type CreatePostRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required,min=1"`
	Image       string `json:"image" validate:"required"`
}

type UpdatePostRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// GetFeed returns one page of the home feed, most recent first.
func (h *Handlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	feed, err := h.Posts.Feed(r.Context(), page)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, feed, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	post, err := h.Posts.GetPost(r.Context(), postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			WriteError(w, "Post not found", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

// GetPostsByAuthor backs the profile page post list.
func (h *Handlers) GetPostsByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID := mux.Vars(r)["id"]
	posts := h.Posts.PostsByAuthor(r.Context(), authorID)
	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requestUser(r)
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Please fill all fields and provide an image", http.StatusBadRequest)
		return
	}

	post, err := h.Posts.CreatePost(r.Context(), service.CreatePostRequest{
		AuthorID:    user.ID,
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requestUser(r)
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	post, err := h.Posts.UpdatePost(r.Context(), *user, service.UpdatePostRequest{
		PostID:      mux.Vars(r)["id"],
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			WriteError(w, "Post not found", http.StatusNotFound)
		case errors.Is(err, service.ErrForbidden):
			WriteError(w, "Access denied", http.StatusForbidden)
		default:
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requestUser(r)
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	err := h.Posts.DeletePost(r.Context(), *user, mux.Vars(r)["id"])
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			WriteError(w, "Post not found", http.StatusNotFound)
		case errors.Is(err, service.ErrForbidden):
			WriteError(w, "Access denied", http.StatusForbidden)
		default:
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, map[string]string{"status": "deleted"}, http.StatusOK)
}

// ToggleLike adds or removes the caller from the post's likes set.
func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requestUser(r)
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	post, err := h.Posts.ToggleLike(r.Context(), user.ID, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			WriteError(w, "Post not found", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requestUser(r)
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if req.Text == "" {
		WriteError(w, "Comment text is required", http.StatusBadRequest)
		return
	}

	comment, err := h.Posts.AddComment(r.Context(), *user, mux.Vars(r)["id"], req.Text)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			WriteError(w, "Post not found", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, comment, http.StatusCreated)
}

// UploadImage stores a multipart file in object storage and returns its
// URL for use as a post image.
func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requestUser(r); !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "File is too large", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "No image selected", http.StatusBadRequest)
		return
	}
	defer file.Close()

	imageURL, err := h.Posts.UploadImage(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		if errors.Is(err, service.ErrUploadsDisabled) {
			WriteError(w, "Image uploads are not configured", http.StatusServiceUnavailable)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, map[string]string{"imageUrl": imageURL}, http.StatusCreated)
}

// DeleteUploadedImage removes a stored object, e.g. a draft image the
// user replaced before publishing.
func (h *Handlers) DeleteUploadedImage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requestUser(r); !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	objectName := mux.Vars(r)["object"]
	if objectName == "" {
		WriteError(w, "Object name is required", http.StatusBadRequest)
		return
	}

	if err := h.Posts.DeleteImage(r.Context(), objectName); err != nil {
		if errors.Is(err, service.ErrUploadsDisabled) {
			WriteError(w, "Image uploads are not configured", http.StatusServiceUnavailable)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, map[string]string{"status": "deleted"}, http.StatusOK)
}
