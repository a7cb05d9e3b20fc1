package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"vlogify/internal/ai"
	"vlogify/internal/models"
)

type ChatRequest struct {
	Prompt  string    `json:"prompt" validate:"required"`
	History []ai.Turn `json:"history"`
}

type GenerateImageRequest struct {
	Prompt      string `json:"prompt" validate:"required"`
	AspectRatio string `json:"aspectRatio"`
}

type FindPlacesRequest struct {
	Prompt   string           `json:"prompt" validate:"required"`
	Image    *ai.Image        `json:"image"`
	Location *models.Location `json:"location"`
}

// Chat forwards a travel-assistant prompt to the model. Failures degrade
// to a canned reply, so this endpoint never surfaces a gateway error.
func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if req.Prompt == "" {
		WriteError(w, "Prompt is required", http.StatusBadRequest)
		return
	}

	reply := h.AI.Chat(r.Context(), req.Prompt, req.History)

	WriteSuccess(w, map[string]string{"reply": reply}, http.StatusOK)
}

// GenerateImage produces a post image from a text prompt and returns it
// as a data URI.
func (h *Handlers) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req GenerateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if req.Prompt == "" {
		WriteError(w, "Prompt is required", http.StatusBadRequest)
		return
	}

	if req.AspectRatio == "" {
		req.AspectRatio = "16:9"
	}

	dataURI, err := h.AI.GenerateImage(r.Context(), req.Prompt, req.AspectRatio)
	if err != nil {
		writeAIError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"image": dataURI}, http.StatusOK)
}

// FindPlaces answers a location question, optionally grounded by an
// uploaded photo and the caller's coordinates.
func (h *Handlers) FindPlaces(w http.ResponseWriter, r *http.Request) {
	var req FindPlacesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if req.Prompt == "" {
		WriteError(w, "Prompt is required", http.StatusBadRequest)
		return
	}

	var answer *ai.Answer
	var err error
	if req.Image != nil {
		answer, err = h.AI.FindPlacesWithImage(r.Context(), req.Prompt, *req.Image, req.Location)
	} else {
		answer, err = h.AI.FindPlaces(r.Context(), req.Prompt, req.Location)
	}
	if err != nil {
		writeAIError(w, err)
		return
	}

	WriteSuccess(w, answer, http.StatusOK)
}

func writeAIError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		WriteError(w, "AI features are not configured", http.StatusServiceUnavailable)
	case errors.Is(err, ai.ErrGenerationFailed):
		WriteError(w, "Image generation failed. Please try again.", http.StatusBadGateway)
	case errors.Is(err, ai.ErrSearchFailed):
		WriteError(w, "Location search failed. Please try again.", http.StatusBadGateway)
	default:
		WriteError(w, err.Error(), http.StatusInternalServerError)
	}
}
