package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"search-system/internal/config"
	"search-system/internal/format"
	httphandler "search-system/internal/http"
	"search-system/internal/services/classify"
	"search-system/internal/services/events"
	"search-system/internal/services/geocode"
	"search-system/internal/services/llm"
	"search-system/internal/services/places"
	"search-system/internal/services/search"
)

func main() {
	port := flag.String("port", "", "Port to run the server on (overrides PORT)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if *port != "" {
		cfg.Server.Port = *port
	}

	llmClient, err := llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.SearchModel)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create LLM client")
	}

	pattern, ok := format.PatternFor(cfg.Phone.Country)
	if !ok {
		log.Fatal().Str("country", cfg.Phone.Country).Msg("No phone pattern for country")
	}

	// Long-lived clients, constructed once and injected.
	classifier := classify.NewClassifier(llmClient)
	geocoder := geocode.NewClient(cfg.Geocode.APIKey)

	eventsService := events.NewService(
		events.NewClient(cfg.Events.APIToken),
		classifier,
		geocoder,
		llmClient,
		cfg.Events.PlaceScope,
		cfg.Events.Limit,
	)
	placesService := places.NewService(
		places.NewClient(cfg.Places.APIKey),
		llmClient,
		pattern,
		cfg.Places.Limit,
		cfg.Places.IncludeOfferings,
	)
	searchService := search.NewService(classifier, eventsService, placesService)

	router := httphandler.NewRouter()
	router.RegisterSearchRoutes(httphandler.NewSearchHandler(searchService))
	router.RegisterHealthRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}

	log.Info().Msg("Server stopped")
}
