package service

import (
	"errors"

	"vlogify/internal/config"
	"vlogify/internal/storage"
	"vlogify/internal/store"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrReportNotFound  = errors.New("report not found")
	ErrForbidden       = errors.New("operation not allowed")
	ErrOwnContent      = errors.New("cannot report your own content")
	ErrUploadsDisabled = errors.New("image uploads are not configured")
)

type Service struct {
	Post   PostService
	Report ReportService
	User   UserService
}

func NewService(st *store.ContentStore, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Post:   NewPostService(st, cfg, storage),
		Report: NewReportService(st),
		User:   NewUserService(st),
	}
}
