package handlers

import (
	"github.com/go-playground/validator/v10"

	"vlogify/internal/ai"
	"vlogify/internal/config"
	"vlogify/internal/service"
	"vlogify/internal/session"
	"vlogify/internal/store"
)

type Handlers struct {
	Store    *store.ContentStore
	Sessions *session.Manager
	Posts    service.PostService
	Reports  service.ReportService
	Users    service.UserService
	AI       *ai.Gateway
	Cfg      *config.Config
	Validate *validator.Validate
}

func NewHandlers(st *store.ContentStore, sessions *session.Manager, services *service.Service, gateway *ai.Gateway, cfg *config.Config) *Handlers {
	return &Handlers{
		Store:    st,
		Sessions: sessions,
		Posts:    services.Post,
		Reports:  services.Report,
		Users:    services.User,
		AI:       gateway,
		Cfg:      cfg,
		Validate: validator.New(),
	}
}
