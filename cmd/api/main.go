package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"storyboard/internal/genai"
	httpapi "storyboard/internal/http"
	"storyboard/internal/http/handlers"
	"storyboard/internal/infra"
	"storyboard/internal/infra/geoip"
	"storyboard/internal/middleware"
	"storyboard/internal/pipeline"
	"storyboard/internal/providers/image"
	"storyboard/internal/providers/prompt"
	"storyboard/internal/session"
	"storyboard/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// GeoIP country hint for locale detection (optional)
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open geoip database")
	}
	var lookup middleware.CountryLookup
	if resolver != nil {
		defer resolver.Close()
		lookup = resolver.CountryCode
	}

	frames, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize frame store")
	}
	sess, err := session.NewStore(cfg.SessionPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize session store")
	}

	client, err := genai.NewClient(genai.Options{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Logger:  &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize gemini client")
	}
	optimizer, err := prompt.NewGeminiOptimizer(client, cfg.GeminiTextModel)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize prompt optimizer")
	}
	generator, err := image.NewGeminiGenerator(client, cfg.GeminiImageModel)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize image generator")
	}

	studio := pipeline.New(ctx, optimizer, generator, frames, logger)

	app := handlers.NewApp(cfg, logger, studio, sess, frames)
	router := httpapi.NewRouter(app, lookup)
	server := infra.NewHTTPServer(cfg, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server exited with error")
	}
	logger.Info().Msg("server stopped")
}
