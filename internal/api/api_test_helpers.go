package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vdavid/chatlens/internal/db"
	"github.com/vdavid/chatlens/internal/ingest"
	"github.com/vdavid/chatlens/internal/models"
	"github.com/vdavid/chatlens/internal/parser"
	"github.com/vdavid/chatlens/internal/testutil"
)

const testExport = `Alice lundi 3 mars 2025 10:15
Salut Bob
Bob lundi 3 mars 2025 10:16
Salut Alice, zut
Alice lundi 3 mars 2025 10:17
À demain
`

const testMaxBytes = 1 << 20

// newTestIngest returns a SQLite store and an ingest service flagging "zut".
func newTestIngest(t *testing.T) (db.Store, *ingest.Service) {
	t.Helper()
	store := testutil.NewTestSQLiteStore(t)
	return store, ingest.NewService(store, nil, parser.NewProfanityList([]string{"zut"}))
}

// seedExport stores testExport and returns the stored export.
func seedExport(t *testing.T, svc *ingest.Service) *models.ChatExport {
	t.Helper()
	export, err := svc.Ingest(context.Background(), "chat.txt", []byte(testExport))
	if err != nil {
		t.Fatalf("Failed to seed export: %v", err)
	}
	return export
}

// newUploadRequest builds a multipart POST with the given file. An empty
// filename leaves the file field out.
func newUploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("Failed to write form file: %v", err)
		}
	} else if err := writer.WriteField("note", "no file"); err != nil {
		t.Fatalf("Failed to write field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, UploadPath, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// failingStore is a Store whose every call fails.
type failingStore struct{}

func (failingStore) SaveExport(context.Context, string, *models.Summary) (*models.ChatExport, error) {
	return nil, fmt.Errorf("store unavailable")
}

func (failingStore) LatestSummary(context.Context) (*models.Summary, error) {
	return nil, fmt.Errorf("store unavailable")
}

func (failingStore) GetExport(context.Context, string) (*models.ChatExport, error) {
	return nil, fmt.Errorf("store unavailable")
}

func (failingStore) ListExports(context.Context, int) ([]*models.ChatExport, error) {
	return nil, fmt.Errorf("store unavailable")
}

func (failingStore) Close() error {
	return nil
}
