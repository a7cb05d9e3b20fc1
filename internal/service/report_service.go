package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vlogify/internal/models"
	"vlogify/internal/store"
)

type ReportService interface {
	Submit(ctx context.Context, reporter models.User, req SubmitReportRequest) (*models.Report, error)
	List(ctx context.Context) []models.Report
	PendingCount(ctx context.Context) int
	Resolve(ctx context.Context, reportID string) (*models.Report, error)
	DeleteContentAndResolve(ctx context.Context, reportID string) (*models.Report, error)
}

type SubmitReportRequest struct {
	Type      string
	ContentID string
	PostID    string
	Reason    string
}

type reportService struct {
	store *store.ContentStore
}

func NewReportService(st *store.ContentStore) ReportService {
	return &reportService{store: st}
}

// Submit files a report against a post or one of its comments. Reporting
// your own content is rejected.
func (r *reportService) Submit(ctx context.Context, reporter models.User, req SubmitReportRequest) (*models.Report, error) {
	if req.Type != models.ReportTypePost && req.Type != models.ReportTypeComment {
		return nil, fmt.Errorf("unknown report type %q", req.Type)
	}

	var parent *models.Post
	for _, post := range r.store.Posts() {
		if post.ID == req.PostID {
			found := post
			parent = &found
			break
		}
	}
	if parent == nil {
		return nil, ErrPostNotFound
	}

	var contentAuthor models.User
	switch req.Type {
	case models.ReportTypePost:
		if req.ContentID != parent.ID {
			return nil, ErrPostNotFound
		}
		contentAuthor = parent.Author
	case models.ReportTypeComment:
		found := false
		for _, c := range parent.Comments {
			if c.ID == req.ContentID {
				contentAuthor = c.Author
				found = true
				break
			}
		}
		if !found {
			return nil, ErrCommentNotFound
		}
	}

	if contentAuthor.ID == reporter.ID {
		return nil, ErrOwnContent
	}

	report := models.Report{
		ID:        uuid.New().String(),
		Type:      req.Type,
		ContentID: req.ContentID,
		PostID:    req.PostID,
		Reporter:  reporter.Sanitized(),
		Reason:    req.Reason,
		CreatedAt: time.Now(),
		Status:    models.ReportStatusPending,
	}

	err := r.store.UpdateReports(ctx, func(reports []models.Report) ([]models.Report, error) {
		return append(reports, report), nil
	})
	if err != nil {
		return nil, err
	}

	return &report, nil
}

func (r *reportService) List(ctx context.Context) []models.Report {
	return r.store.Reports()
}

func (r *reportService) PendingCount(ctx context.Context) int {
	count := 0
	for _, report := range r.store.Reports() {
		if report.Status == models.ReportStatusPending {
			count++
		}
	}
	return count
}

// Resolve marks a report resolved. The transition is one way; resolving a
// resolved report is a no-op.
func (r *reportService) Resolve(ctx context.Context, reportID string) (*models.Report, error) {
	var resolved models.Report
	err := r.store.UpdateReports(ctx, func(reports []models.Report) ([]models.Report, error) {
		for i, report := range reports {
			if report.ID != reportID {
				continue
			}

			reports[i].Status = models.ReportStatusResolved
			resolved = reports[i]
			return reports, nil
		}

		return nil, ErrReportNotFound
	})
	if err != nil {
		return nil, err
	}

	return &resolved, nil
}

// DeleteContentAndResolve removes the reported post, or the reported
// comment from its parent post, then marks the report resolved. Content
// that is already gone still resolves the report.
func (r *reportService) DeleteContentAndResolve(ctx context.Context, reportID string) (*models.Report, error) {
	var target *models.Report
	for _, report := range r.store.Reports() {
		if report.ID == reportID {
			found := report
			target = &found
			break
		}
	}
	if target == nil {
		return nil, ErrReportNotFound
	}

	err := r.store.UpdatePosts(ctx, func(posts []models.Post) ([]models.Post, error) {
		switch target.Type {
		case models.ReportTypePost:
			kept := posts[:0]
			for _, post := range posts {
				if post.ID != target.ContentID {
					kept = append(kept, post)
				}
			}
			return kept, nil
		case models.ReportTypeComment:
			for i, post := range posts {
				if post.ID != target.PostID {
					continue
				}
				kept := post.Comments[:0]
				for _, c := range post.Comments {
					if c.ID != target.ContentID {
						kept = append(kept, c)
					}
				}
				posts[i].Comments = kept
				break
			}
			return posts, nil
		}
		return posts, nil
	})
	if err != nil {
		return nil, err
	}

	return r.Resolve(ctx, reportID)
}
