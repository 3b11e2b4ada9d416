package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dvloznov/rural-insights/internal/analysis"
	"github.com/dvloznov/rural-insights/internal/api/handlers"
	"github.com/dvloznov/rural-insights/internal/api/middleware"
	"github.com/dvloznov/rural-insights/internal/archive"
	"github.com/dvloznov/rural-insights/internal/config"
	"github.com/dvloznov/rural-insights/internal/insights"
	"github.com/dvloznov/rural-insights/internal/jobs"
	"github.com/dvloznov/rural-insights/internal/jobs/inmemory"
	"github.com/dvloznov/rural-insights/internal/logger"
	"github.com/dvloznov/rural-insights/internal/scenario"
	"github.com/dvloznov/rural-insights/internal/score"
)

func main() {
	var cfgFile = flag.String("config", "", "optional config file path")
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.NewWithLevel(cfg.LogLevel)

	ctx := context.Background()

	// Enrichment is optional: without an API key the reports stay rule-based.
	var enricher analysis.Enricher
	if cfg.EnrichmentEnabled && cfg.GeminiAPIKey != "" {
		gen, err := insights.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Gemini client")
		}
		enricher = insights.NewEnricher(gen, cfg.EnrichMaxAttempts, cfg.EnrichTimeout, log)
		log.Info().Str("model", cfg.GeminiModel).Msg("AI enrichment enabled")
	} else {
		log.Warn().Msg("AI enrichment disabled - reports will be rule-based")
	}

	if cfg.ArchiveBucket == "" {
		log.Warn().Msg("No archive bucket configured - report archiving will be disabled")
	}

	analyzer := analysis.NewAnalyzer(enricher, log)

	// Initialize job infrastructure
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, jobStore)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	// The archive worker uploads finished reports to cloud storage.
	jobHandler := func(ctx context.Context, job jobs.Job) error {
		archiveJob, ok := job.(*jobs.ArchiveReportJob)
		if !ok {
			return fmt.Errorf("unexpected job type: %T", job)
		}

		objectName := archive.ObjectName(archiveJob.ReportID, archiveJob.GeneratedAt)

		log.Info().
			Str("job_id", archiveJob.JobID).
			Str("report_id", archiveJob.ReportID).
			Str("object", objectName).
			Msg("Archiving report")

		if err := archive.Upload(ctx, cfg.ArchiveBucket, objectName, archiveJob.Payload); err != nil {
			log.Error().
				Err(err).
				Str("job_id", archiveJob.JobID).
				Str("report_id", archiveJob.ReportID).
				Msg("Report archiving failed")
			return err
		}

		log.Info().
			Str("job_id", archiveJob.JobID).
			Str("report_id", archiveJob.ReportID).
			Msg("Report archived")

		return nil
	}

	go func() {
		log.Info().Msg("Starting archive worker")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Archive worker stopped with error")
		}
	}()

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(analyzer, jobQueue, cfg.ArchiveBucket, cfg.MaxUploadBytes(), log)
	insightsHandler := handlers.NewInsightsHandler(enricher, score.NewCalculator(), scenario.NewSimulator(), log)
	jobsHandler := handlers.NewJobsHandler(jobStore, log)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/api/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			uploadHandler.Upload(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/upload/sample", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			uploadHandler.SampleFormat(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/insights/enrich", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			insightsHandler.Enrich(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/insights/context", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			insightsHandler.Context(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/insights/tips/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			category := strings.TrimPrefix(r.URL.Path, "/api/insights/tips/")
			if category == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Category is required")
				return
			}
			insightsHandler.Tips(w, r, category)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/insights/financial-health-score", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			insightsHandler.HealthScore(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/insights/scenario-simulation", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			insightsHandler.ScenarioSimulation(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/insights/scenario-templates", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			insightsHandler.ScenarioTemplates(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobsHandler.ListJobs(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobID := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
			if jobID == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Job ID is required")
				return
			}
			jobsHandler.GetJob(w, r, jobID)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(cfg.CORSOrigins)(
					middleware.Auth(mux),
				),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Stop job queue and wait for in-flight jobs
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}

	log.Info().Msg("Server exited")
}
