package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/vdavid/chatlens/internal/ingest"
)

// multipartMemory is how much of a multipart form is kept in memory before
// spilling to temporary files.
const multipartMemory = 1 << 20

// UploadHandler accepts the dashboard's upload form.
type UploadHandler struct {
	ingest   *ingest.Service
	maxBytes int64
	metrics  *Metrics
}

// NewUploadHandler creates a new UploadHandler instance.
func NewUploadHandler(svc *ingest.Service, maxBytes int64, metrics *Metrics) *UploadHandler {
	return &UploadHandler{
		ingest:   svc,
		maxBytes: maxBytes,
		metrics:  metrics,
	}
}

// PostUpload stores the uploaded file and redirects back to the dashboard.
// A form without a file redirects without storing anything.
func (h *UploadHandler) PostUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if r.ContentLength > h.maxBytes {
		http.Error(w, "Upload too large", http.StatusRequestEntityTooLarge)
		h.metrics.recordUpload(outcomeInvalid)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeReadError(w, err)
		h.metrics.recordUpload(outcomeInvalid)
		return
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		writeReadError(w, err)
		h.metrics.recordUpload(outcomeInvalid)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		writeReadError(w, err)
		h.metrics.recordUpload(outcomeInvalid)
		return
	}

	if _, ok := ingestUpload(w, r, h.ingest, h.metrics, header.Filename, data); !ok {
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
