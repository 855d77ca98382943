package main

import (
	"net/http"

	"github.com/Pranali0315/NomadHelp/internal/config"
	"github.com/Pranali0315/NomadHelp/internal/handler"
	"github.com/Pranali0315/NomadHelp/internal/middleware"
)

func main() {
	logger := config.GetLogger()

	middleware.StartRateLimiterCleanup()

	guideHandler := handler.NewTravelGuideHandler()

	mux := http.NewServeMux()
	mux.Handle("/travel-guide", middleware.RateLimitMiddleware(http.HandlerFunc(guideHandler.HandleTravelGuide)))
	mux.HandleFunc("/validate", guideHandler.HandleValidate)

	port := config.GetServerPort()
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           middleware.BearerAuthMiddleware(mux),
		ReadTimeout:       config.GetServerTimeout("read_timeout"),
		ReadHeaderTimeout: config.GetServerTimeout("read_header_timeout"),
		WriteTimeout:      config.GetServerTimeout("write_timeout"),
		IdleTimeout:       config.GetServerTimeout("idle_timeout"),
	}

	logger.Infow("Travel guide server running", "port", port)
	logger.Fatal(srv.ListenAndServe())
}
