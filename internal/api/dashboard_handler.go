package api

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/vdavid/chatlens/internal/dashboard"
	"github.com/vdavid/chatlens/internal/db"
	"github.com/vdavid/chatlens/internal/models"
)

// UploadPath is where the dashboard's upload form posts.
const UploadPath = "/upload"

// DashboardHandler serves the rendered dashboard page.
type DashboardHandler struct {
	store       db.Store
	defaultLang dashboard.Language
	metrics     *Metrics
}

// NewDashboardHandler creates a new DashboardHandler instance.
func NewDashboardHandler(store db.Store, defaultLang dashboard.Language, metrics *Metrics) *DashboardHandler {
	return &DashboardHandler{
		store:       store,
		defaultLang: defaultLang,
		metrics:     metrics,
	}
}

// StoreFetcher returns a Fetcher reading the latest summary from store.
func StoreFetcher(store db.Store) dashboard.Fetcher {
	return dashboard.FetcherFunc(func(ctx context.Context) *models.Summary {
		summary, err := store.LatestSummary(ctx)
		if errors.Is(err, db.ErrSummaryNotFound) {
			log.Println("DashboardHandler: No summary stored yet")
			return nil
		}
		if err != nil {
			log.Printf("DashboardHandler: Failed to load summary: %v", err)
			return nil
		}
		return summary
	})
}

// GetDashboard renders the dashboard in the requested language.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	loc := dashboard.NewLocalizer(h.language(r))
	page := dashboard.NewPage(loc, dashboard.PageOptions{UploadAction: UploadPath})

	dashboard.NewRenderer(StoreFetcher(h.store), loc).Render(r.Context(), page)

	// Render to a buffer first to prevent partial pages
	var buf bytes.Buffer
	if err := page.WriteHTML(&buf); err != nil {
		log.Printf("DashboardHandler: %v", err)
		h.metrics.recordRender(outcomeError)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if page.Region(dashboard.RegionSummary).Populated() {
		h.metrics.recordRender(outcomeNoData)
	} else {
		h.metrics.recordRender(outcomeSuccess)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("DashboardHandler: Failed to write response: %v", err)
	}
}

// language picks ?lang= when valid, then Accept-Language, then the default.
func (h *DashboardHandler) language(r *http.Request) dashboard.Language {
	if lang, ok := dashboard.ParseLanguage(r.URL.Query().Get("lang")); ok {
		return lang
	}
	return dashboard.MatchLanguage(r.Header.Get("Accept-Language"), h.defaultLang)
}
