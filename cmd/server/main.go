package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/vdavid/chatlens/internal/api"
	"github.com/vdavid/chatlens/internal/auth"
	"github.com/vdavid/chatlens/internal/config"
	"github.com/vdavid/chatlens/internal/dashboard"
	"github.com/vdavid/chatlens/internal/db"
	"github.com/vdavid/chatlens/internal/ingest"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	store, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Store, err)
	}
	defer func() {
		_ = store.Close()
	}()

	log.Printf("Successfully opened %s store", cfg.Store)

	server, err := NewServer(cfg, store)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	address := ":" + cfg.Port
	log.Printf("chatlens server starting on %s (environment: %s)", address, cfg.Environment)

	if err := http.ListenAndServe(address, server); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// NewServer creates and returns the HTTP handler for the chatlens server.
func NewServer(cfg *config.Config, store db.Store) (http.Handler, error) {
	svc, err := ingest.NewServiceFromConfig(cfg, store)
	if err != nil {
		return nil, err
	}

	lang, ok := dashboard.ParseLanguage(cfg.Language)
	if !ok {
		lang = dashboard.English
	}

	if cfg.APIToken == "" {
		log.Println("Warning: CHATLENS_API_TOKEN is not set, /api/exports is unauthenticated")
	}

	metrics := api.NewMetrics()
	dashboardHandler := api.NewDashboardHandler(store, lang, metrics)
	summaryHandler := api.NewSummaryHandler(store, metrics)
	uploadHandler := api.NewUploadHandler(svc, cfg.MaxUploadBytes(), metrics)
	exportsHandler := api.NewExportsHandler(store, svc, cfg.MaxUploadBytes(), metrics)
	requireToken := auth.RequireToken(cfg.APIToken)

	mux := http.NewServeMux()

	mux.HandleFunc("/", dashboardHandler.GetDashboard)
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc(api.UploadPath, uploadHandler.PostUpload)
	mux.HandleFunc(dashboard.SummaryPath, summaryHandler.GetSummary)
	mux.Handle("/metrics", metrics.Handler())

	mux.Handle(api.ExportsPath, requireToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			exportsHandler.ListExports(w, r)
		case http.MethodPost:
			exportsHandler.PostExport(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))
	mux.Handle(api.ExportsPath+"/", requireToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		exportsHandler.GetExport(w, r)
	})))

	return mux, nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = fmt.Fprintf(w, "chatlens is running")
}
