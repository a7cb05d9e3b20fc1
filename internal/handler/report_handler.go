package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"vlogify/internal/service"
)

type SubmitReportRequest struct {
	Type      string `json:"type" validate:"required,oneof=post comment"`
	ContentID string `json:"contentId" validate:"required"`
	PostID    string `json:"postId" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
}

// SubmitReport files a moderation report against a post or a comment.
func (h *Handlers) SubmitReport(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requestUser(r)
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req SubmitReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Type, content id, post id and reason are required", http.StatusBadRequest)
		return
	}

	report, err := h.Reports.Submit(r.Context(), *user, service.SubmitReportRequest{
		Type:      req.Type,
		ContentID: req.ContentID,
		PostID:    req.PostID,
		Reason:    req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOwnContent):
			WriteError(w, "You cannot report your own content", http.StatusBadRequest)
		case errors.Is(err, service.ErrPostNotFound), errors.Is(err, service.ErrCommentNotFound):
			WriteError(w, "Reported content not found", http.StatusNotFound)
		default:
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, report, http.StatusCreated)
}

// ListReports returns every report together with the pending count used
// for the moderation dashboard badge.
func (h *Handlers) ListReports(w http.ResponseWriter, r *http.Request) {
	reports := h.Reports.List(r.Context())

	WriteSuccess(w, map[string]interface{}{
		"reports":      reports,
		"pendingCount": h.Reports.PendingCount(r.Context()),
	}, http.StatusOK)
}

// ResolveReport dismisses a report, leaving the reported content in place.
func (h *Handlers) ResolveReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Reports.Resolve(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			WriteError(w, "Report not found", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, report, http.StatusOK)
}

// DeleteReportedContent removes the reported post or comment and marks
// the report resolved in one step.
func (h *Handlers) DeleteReportedContent(w http.ResponseWriter, r *http.Request) {
	report, err := h.Reports.DeleteContentAndResolve(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			WriteError(w, "Report not found", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, report, http.StatusOK)
}
