package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jodylarsen/CareConnect/internal/cache"
	"github.com/jodylarsen/CareConnect/internal/config"
	httphandler "github.com/jodylarsen/CareConnect/internal/http"
	"github.com/jodylarsen/CareConnect/internal/ingest"
	"github.com/jodylarsen/CareConnect/internal/logging"
	"github.com/jodylarsen/CareConnect/internal/repo"
	"github.com/jodylarsen/CareConnect/internal/services/careplan"
	"github.com/jodylarsen/CareConnect/internal/services/guidance"
	"github.com/jodylarsen/CareConnect/internal/services/llm"
	"github.com/jodylarsen/CareConnect/internal/services/probe"
	"github.com/jodylarsen/CareConnect/internal/services/providers"
	"github.com/jodylarsen/CareConnect/internal/services/symptoms"
)

func main() {
	var (
		port    = flag.String("port", "", "Port to run the server on (overrides PORT)")
		migrate = flag.Bool("migrate", false, "Apply database migrations and exit")
		seedDir = flag.String("seed", "", "Load provider JSON/YAML files from a directory (overrides SEED_DIR) and exit unless the repository is in-memory")
		sample  = flag.String("sample", "", "Generate sample providers around \"lat,lng\" (overrides SEED_SAMPLE) and exit unless the repository is in-memory")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logging.Init(cfg.App.Name, cfg.App.Env)
	if *port != "" {
		cfg.Server.Port = *port
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := repo.NewDB(ctx, cfg.Database.URL)
	if err != nil {
		log.Warn().Err(err).Msg("Postgres unavailable, continuing without it")
		db = &repo.DB{}
	}
	defer db.Close()

	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		redisCache, err = cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, continuing without it")
			redisCache = nil
		} else {
			defer redisCache.Close()
		}
	}

	if *migrate {
		if err := db.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("Migration failed")
		}
		log.Info().Msg("Migrations applied")
		return
	}

	repository := repo.NewRepository(db, redisCache)
	loader := ingest.NewLoader(repository)

	// flags override the environment; a one-shot run exits only when the
	// repository outlives the process
	oneShot := *seedDir != "" || *sample != ""
	if *seedDir != "" {
		cfg.Seed.Dir = *seedDir
	}
	if *sample != "" {
		cfg.Seed.Sample = *sample
	}
	if cfg.Seed.Dir != "" || cfg.Seed.Sample != "" {
		n, err := loader.Seed(ctx, cfg.Seed)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load seed data")
		}
		log.Info().Int("providers", n).Str("backend", repository.Backend()).Msg("Seed data loaded")
	}
	if oneShot {
		if repo.Durable(repository) {
			return
		}
		log.Warn().Msg("Provider repository is in-memory, serving seeded data instead of exiting")
	}

	inferenceClient, err := newInferenceClient(cfg)
	if err != nil {
		log.Warn().Err(err).Str("provider", cfg.Inference.Provider).Msg("Inference client unavailable, using rule-based fallback only")
	}

	symptomService := symptoms.NewService(inferenceClient, cfg.Inference.MaxTokens, cfg.Inference.Temperature)
	providerService := providers.NewService(repository, redisCache, cfg.Search)

	var statusStore probe.StatusStore
	if redisCache != nil {
		statusStore = redisCache
	}
	prober := probe.NewProber(inferenceClient, statusStore)
	prober.Start(ctx, cfg.Probe.Interval)
	defer prober.Stop()

	checks := map[string]httphandler.ReadinessCheck{}
	if db.Enabled() {
		checks["postgres"] = db.Ping
	}
	if redisCache != nil {
		checks["redis"] = redisCache.Ping
	}

	handler := httphandler.NewHandler(httphandler.Services{
		Symptoms:  symptomService,
		Providers: providerService,
		CarePlan:  careplan.NewService(symptomService, providerService),
		Guidance:  guidance.NewService(inferenceClient),
		Prober:    prober,
		Inference: cfg.Inference.Status(),
		Checks:    checks,
	})

	router := httphandler.NewRouter(cfg.RateLimit)
	router.RegisterHealthRoutes(handler)
	router.RegisterAPIRoutes(handler)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("port", cfg.Server.Port).
			Str("repository", repository.Backend()).
			Bool("inference_configured", inferenceClient != nil).
			Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}

	log.Info().Msg("Server stopped")
}

// newInferenceClient builds the configured backend. A nil client means every
// caller takes its fallback path.
func newInferenceClient(cfg *config.Config) (llm.InferenceClient, error) {
	switch cfg.Inference.Provider {
	case "openai":
		c, err := llm.NewOpenAIClient(cfg.OpenAI)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "gemini":
		c, err := llm.NewGeminiClient(cfg.Gemini)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		if !cfg.Inference.Status().Configured {
			return nil, llm.ErrNotConfigured
		}
		return llm.NewServingClient(cfg.Inference), nil
	}
}
