package main

import (
	"fmt"
	"log"
	"net/http"

	"vlogify/cmd/app"
	"vlogify/internal/config"
	handlers "vlogify/internal/handler"
	"vlogify/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set in the .env file")
	}

	st, sessions, services, gateway, cleanup := app.App(cfg)
	defer cleanup()

	handler := handlers.NewHandlers(st, sessions, services, gateway, cfg)

	handlerChain := middleware.Chain(
		handler.Routes(),
		middleware.Logging,
		middleware.CORS,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Server listening on %s\n", addr)
	fmt.Printf("Address: http://localhost:%d/\n", cfg.ServerPort)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
