package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vdavid/chatlens/internal/models"
)

func TestExportsHandler(t *testing.T) {
	store, svc := newTestIngest(t)
	handler := NewExportsHandler(store, svc, testMaxBytes, nil)

	var created models.ChatExport

	t.Run("PostExport stores the raw body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/exports?filename=group.txt", bytes.NewReader([]byte(testExport)))
		rr := httptest.NewRecorder()
		handler.PostExport(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "group.txt", created.Filename)
		require.NotNil(t, created.Summary)
		assert.Equal(t, 3, created.Summary.TotalMessages)
	})

	t.Run("PostExport rejects invalid bodies", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/exports", bytes.NewReader([]byte("hello")))
		rr := httptest.NewRecorder()
		handler.PostExport(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("ListExports returns stored exports without summaries", func(t *testing.T) {
		seedExport(t, svc)

		rr := httptest.NewRecorder()
		handler.ListExports(rr, httptest.NewRequest(http.MethodGet, "/api/exports?limit=1", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var response models.ExportsResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
		require.Len(t, response.Exports, 1)
		assert.Equal(t, "chat.txt", response.Exports[0].Filename)
		assert.Nil(t, response.Exports[0].Summary)
	})

	t.Run("GetExport returns one export", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.GetExport(rr, httptest.NewRequest(http.MethodGet, "/api/exports/"+created.ID, nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var export models.ChatExport
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&export))
		assert.Equal(t, created.ID, export.ID)
		require.NotNil(t, export.Summary)
		assert.Equal(t, []string{"Alice", "Bob"}, export.Summary.UniqueSendersList)
	})

	t.Run("GetExport returns 404 for unknown ids", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.GetExport(rr, httptest.NewRequest(http.MethodGet, "/api/exports/00000000-0000-0000-0000-000000000000", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("GetExport requires an id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.GetExport(rr, httptest.NewRequest(http.MethodGet, "/api/exports/", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("ListExports returns 500 when the store fails", func(t *testing.T) {
		rr := httptest.NewRecorder()
		NewExportsHandler(failingStore{}, svc, testMaxBytes, nil).ListExports(rr, httptest.NewRequest(http.MethodGet, "/api/exports", nil))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestParseLimitParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{query: "", want: 20},
		{query: "?limit=5", want: 5},
		{query: "?limit=0", want: 20},
		{query: "?limit=abc", want: 20},
		{query: "?limit=1000", want: 100},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/exports"+tt.query, nil)
		if got := ParseLimitParam(req, 20, 100); got != tt.want {
			t.Errorf("ParseLimitParam(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}
