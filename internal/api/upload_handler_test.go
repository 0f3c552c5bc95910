package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vdavid/chatlens/internal/testutil"
)

func TestUploadHandler_PostUpload(t *testing.T) {
	t.Run("stores a chat export and redirects", func(t *testing.T) {
		store, svc := newTestIngest(t)
		metrics := NewMetrics()
		handler := NewUploadHandler(svc, testMaxBytes, metrics)

		rr := httptest.NewRecorder()
		handler.PostUpload(rr, newUploadRequest(t, "chat.txt", []byte(testExport)))

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/", rr.Header().Get("Location"))

		summary, err := store.LatestSummary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, summary.TotalMessages)
		assert.Equal(t, 1.0, promtestutil.ToFloat64(metrics.uploads.WithLabelValues(outcomeSuccess)))
	})

	t.Run("stores the export carried by a mail file", func(t *testing.T) {
		store, svc := newTestIngest(t)
		handler := NewUploadHandler(svc, testMaxBytes, nil)

		raw := testutil.ChatExportMessage("WhatsApp Chat with Bob", "chat-bob.txt", testExport)
		rr := httptest.NewRecorder()
		handler.PostUpload(rr, newUploadRequest(t, "forwarded.eml", []byte(raw)))

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		exports, err := store.ListExports(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, exports, 1)
		assert.Equal(t, "chat-bob.txt", exports[0].Filename)
	})

	t.Run("redirects without storing when no file is sent", func(t *testing.T) {
		store, svc := newTestIngest(t)
		handler := NewUploadHandler(svc, testMaxBytes, nil)

		rr := httptest.NewRecorder()
		handler.PostUpload(rr, newUploadRequest(t, "", nil))

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		exports, err := store.ListExports(context.Background(), 10)
		require.NoError(t, err)
		assert.Empty(t, exports)
	})

	t.Run("rejects files that are not chat exports", func(t *testing.T) {
		_, svc := newTestIngest(t)
		metrics := NewMetrics()
		handler := NewUploadHandler(svc, testMaxBytes, metrics)

		rr := httptest.NewRecorder()
		handler.PostUpload(rr, newUploadRequest(t, "notes.txt", []byte("shopping list")))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, 1.0, promtestutil.ToFloat64(metrics.uploads.WithLabelValues(outcomeInvalid)))
	})

	t.Run("rejects uploads over the limit", func(t *testing.T) {
		_, svc := newTestIngest(t)
		handler := NewUploadHandler(svc, 64, nil)

		rr := httptest.NewRecorder()
		handler.PostUpload(rr, newUploadRequest(t, "chat.txt", bytes.Repeat([]byte("a"), 4096)))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	})

	t.Run("rejects non-multipart bodies", func(t *testing.T) {
		_, svc := newTestIngest(t)
		handler := NewUploadHandler(svc, testMaxBytes, nil)

		req := httptest.NewRequest(http.MethodPost, UploadPath, bytes.NewReader([]byte(testExport)))
		req.Header.Set("Content-Type", "text/plain")
		rr := httptest.NewRecorder()
		handler.PostUpload(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects other methods", func(t *testing.T) {
		_, svc := newTestIngest(t)
		rr := httptest.NewRecorder()
		NewUploadHandler(svc, testMaxBytes, nil).PostUpload(rr, httptest.NewRequest(http.MethodGet, UploadPath, nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})
}
