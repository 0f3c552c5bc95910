package api

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/vdavid/chatlens/internal/db"
	"github.com/vdavid/chatlens/internal/ingest"
	"github.com/vdavid/chatlens/internal/models"
)

const (
	defaultExportsLimit = 20
	maxExportsLimit     = 100
	defaultFilename     = "export.txt"
)

// ExportsPath is the collection endpoint for stored exports.
const ExportsPath = "/api/exports"

// ExportsHandler lists, reads, and creates stored exports.
type ExportsHandler struct {
	store    db.Store
	ingest   *ingest.Service
	maxBytes int64
	metrics  *Metrics
}

// NewExportsHandler creates a new ExportsHandler instance.
func NewExportsHandler(store db.Store, svc *ingest.Service, maxBytes int64, metrics *Metrics) *ExportsHandler {
	return &ExportsHandler{
		store:    store,
		ingest:   svc,
		maxBytes: maxBytes,
		metrics:  metrics,
	}
}

// ListExports returns the newest exports, without their summaries.
func (h *ExportsHandler) ListExports(w http.ResponseWriter, r *http.Request) {
	limit := ParseLimitParam(r, defaultExportsLimit, maxExportsLimit)

	exports, err := h.store.ListExports(r.Context(), limit)
	if err != nil {
		log.Printf("ExportsHandler: Failed to list exports: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	WriteJSONResponse(w, &models.ExportsResponse{Exports: exports})
}

// GetExport returns one stored export with its summary.
func (h *ExportsHandler) GetExport(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, ExportsPath+"/")
	if id == "" || id == r.URL.Path || strings.Contains(id, "/") {
		http.Error(w, "export id is required", http.StatusBadRequest)
		return
	}

	export, err := h.store.GetExport(r.Context(), id)
	if errors.Is(err, db.ErrSummaryNotFound) {
		http.Error(w, "Export not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("ExportsHandler: Failed to get export %s: %v", id, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	WriteJSONResponse(w, export)
}

// PostExport stores the raw request body as a new export. The filename
// query parameter decides whether the body is a chat export or a message.
func (h *ExportsHandler) PostExport(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		filename = defaultFilename
	}

	if r.ContentLength > h.maxBytes {
		http.Error(w, "Upload too large", http.StatusRequestEntityTooLarge)
		h.metrics.recordUpload(outcomeInvalid)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBytes))
	if err != nil {
		writeReadError(w, err)
		h.metrics.recordUpload(outcomeInvalid)
		return
	}

	export, ok := ingestUpload(w, r, h.ingest, h.metrics, filename, data)
	if !ok {
		return
	}

	WriteJSONResponseWithStatus(w, http.StatusCreated, export)
}

// ingestUpload stores one upload, writing an error response on failure.
func ingestUpload(w http.ResponseWriter, r *http.Request, svc *ingest.Service, metrics *Metrics, filename string, data []byte) (*models.ChatExport, bool) {
	export, err := svc.Ingest(r.Context(), filename, data)
	if errors.Is(err, ingest.ErrInvalidExport) {
		log.Printf("API: Rejected upload %s: %v", filename, err)
		metrics.recordUpload(outcomeInvalid)
		http.Error(w, "The file is not a recognizable chat export", http.StatusBadRequest)
		return nil, false
	}
	if err != nil {
		log.Printf("API: Failed to ingest upload %s: %v", filename, err)
		metrics.recordUpload(outcomeError)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}

	metrics.recordUpload(outcomeSuccess)
	return export, true
}

func writeReadError(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		http.Error(w, "Upload too large", http.StatusRequestEntityTooLarge)
		return
	}
	log.Printf("API: Failed to read upload: %v", err)
	http.Error(w, "Failed to read upload", http.StatusBadRequest)
}
