package app

import (
	"context"
	"log"
	"os"

	"vlogify/internal/ai"
	"vlogify/internal/config"
	"vlogify/internal/persist"
	"vlogify/internal/service"
	"vlogify/internal/session"
	"vlogify/internal/storage"
	"vlogify/internal/store"
)

// App wires the application together: the persistence mirror, the
// content store with its seed data, the session manager, object storage
// and the services layer.
func App(cfg *config.Config) (*store.ContentStore, *session.Manager, *service.Service, *ai.Gateway, func()) {
	logger := log.New(os.Stdout, "vlogify: ", log.LstdFlags)

	mirror := openMirror(cfg, logger)

	st := store.New(mirror, logger)
	st.Initialize(context.Background())

	sessions := session.NewManager(st, cfg)
	sessions.Restore(context.Background())

	var objectStorage storage.Storage
	if cfg.MinIO.Enabled {
		minioClient, err := storage.NewMinIOClient(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO: %v", err)
		}
		objectStorage = minioClient
	} else {
		logger.Println("MinIO disabled, image uploads are unavailable")
	}

	services := service.NewService(st, cfg, objectStorage)

	gateway := ai.New(cfg.AI, logger)

	cleanup := func() {
		if err := mirror.Close(); err != nil {
			logger.Printf("Failed to close persistence mirror: %v", err)
		}
	}

	return st, sessions, services, gateway, cleanup
}

// openMirror prefers the SQLite file store and falls back to the
// in-memory one when the file cannot be opened or ephemeral mode is on.
func openMirror(cfg *config.Config, logger *log.Logger) persist.Store {
	if cfg.Ephemeral {
		logger.Println("Running in ephemeral mode, data will not survive a restart")
		return persist.NewMemory()
	}

	mirror, err := persist.NewSQLite(cfg.DataPath)
	if err != nil {
		logger.Printf("Failed to open data file %s, falling back to in-memory storage: %v", cfg.DataPath, err)
		return persist.NewMemory()
	}

	logger.Printf("Data file: %s", cfg.DataPath)
	return mirror
}
