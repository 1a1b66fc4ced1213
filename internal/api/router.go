package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/calebmh/mnemo/internal/action"
	"github.com/calebmh/mnemo/internal/api/handlers"
	mw "github.com/calebmh/mnemo/internal/api/middleware"
	"github.com/calebmh/mnemo/internal/buildconfig"
	"github.com/calebmh/mnemo/internal/config"
	"github.com/calebmh/mnemo/internal/domain"
	"github.com/calebmh/mnemo/internal/filter"
	"github.com/calebmh/mnemo/internal/hoststore"
	"github.com/calebmh/mnemo/internal/llm"
	"github.com/calebmh/mnemo/internal/thinking"
	"github.com/calebmh/mnemo/internal/tools"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the router and request metrics for lifecycle management.
type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(logger *zap.Logger) *App {
	// External clients
	llmClient, err := llm.NewClient(config.LLMProvider(), config.OpenAIAPIURL(), config.OpenAIAPIKey(), config.Model())
	if err != nil {
		// The plugin pipeline fails open: without a usable provider every
		// extraction resolves to NONE instead of blocking the host.
		logger.Warn("LLM client initialization failed, falling back to mock",
			zap.String("provider", config.LLMProvider()), zap.Error(err))
		llmClient = llm.NewMockClient()
	} else {
		logger.Info("LLM client initialized", zap.String("provider", config.LLMProvider()))
	}

	store := hoststore.New(config.HostAPIURL(), config.HostAPIKey())

	// Plugin services
	memoryFilter := filter.NewMemoryFilter(store, llmClient, filter.Options{
		Enabled:            config.MemoryEnabled(),
		ShowStatus:         config.ShowStatus(),
		MaxRelatedMemories: config.MaxRelatedMemories(),
		DedupThreshold:     config.DedupThreshold(),
	}, logger)
	saveAction := action.NewSaveAction(store, action.Options{
		Enabled:    config.MemoryEnabled(),
		ShowStatus: config.ShowStatus(),
	}, logger)
	thinkingSelector := thinking.NewSelector(llmClient, thinking.Options{
		Depth:        thinking.Depth(config.ThinkingDepth()),
		ShowThinking: config.ShowThinking(),
	}, logger)
	plantuml := tools.NewPlantUML(config.PlantUMLServer())

	// Handlers
	filterHandler := handlers.NewMemoryFilterHandler(memoryFilter)
	actionHandler := handlers.NewSaveActionHandler(saveAction)
	thinkingHandler := handlers.NewThinkingHandler(thinkingSelector)
	artifactHandler := handlers.NewArtifactHandler()
	plantumlHandler := handlers.NewPlantUMLHandler(plantuml)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	// Health and metrics (no auth)
	r.Get("/health", healthHandler())
	r.Get("/metrics", app.metricsHandler())

	// Hook endpoints the chat host calls
	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.BearerToken(config.PluginToken()))

		r.Route("/filters", func(r chi.Router) {
			r.Post("/memory/inlet", filterHandler.Inlet)
			r.Post("/memory/outlet", filterHandler.Outlet)
			r.Post("/artifacts/outlet", artifactHandler.Outlet)
		})

		r.Post("/actions/memory/save", actionHandler.Save)
		r.Post("/pipes/thinking", thinkingHandler.Apply)
		r.Post("/tools/plantuml", plantumlHandler.Render)
	})

	return app
}

// NewRouter returns just the chi.Mux.
func NewRouter(logger *zap.Logger) *chi.Mux {
	return NewApp(logger).Router
}

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"version": buildconfig.Version(),
		})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores and clients satisfy interfaces at compile time.
var (
	_ domain.MemoryStore = (*hoststore.Client)(nil)
	_ domain.MemoryStore = (*hoststore.Mock)(nil)
	_ domain.LLMClient   = (*llm.OpenAIClient)(nil)
	_ domain.LLMClient   = (*llm.MockClient)(nil)
)
