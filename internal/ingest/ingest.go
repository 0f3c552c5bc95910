// Package ingest turns a raw upload into a stored, summarized chat export.
package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/vdavid/chatlens/internal/archive"
	"github.com/vdavid/chatlens/internal/config"
	"github.com/vdavid/chatlens/internal/crypto"
	"github.com/vdavid/chatlens/internal/db"
	"github.com/vdavid/chatlens/internal/mailimport"
	"github.com/vdavid/chatlens/internal/models"
	"github.com/vdavid/chatlens/internal/parser"
)

// ErrInvalidExport is returned when an upload holds no usable chat export.
// The cause is wrapped alongside it.
var ErrInvalidExport = errors.New("invalid chat export")

// Service archives, parses, summarizes, and stores uploads.
type Service struct {
	store     db.Store
	archive   *archive.Archive
	profanity *parser.ProfanityList
}

// NewService creates a Service. archive and profanity may be nil.
func NewService(store db.Store, arch *archive.Archive, profanity *parser.ProfanityList) *Service {
	return &Service{
		store:     store,
		archive:   arch,
		profanity: profanity,
	}
}

// Ingest stores the summary of one upload. A .eml upload is unwrapped to the
// chat export it carries first.
func (s *Service) Ingest(ctx context.Context, filename string, data []byte) (*models.ChatExport, error) {
	if s.archive != nil {
		path, err := s.archive.Save(filename, data)
		if err != nil {
			return nil, fmt.Errorf("failed to archive upload: %w", err)
		}
		log.Printf("Ingest: Archived %s to %s", filename, path)
	}

	if mailimport.IsMailFile(filename) {
		export, err := mailimport.ExtractChatExport(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidExport, err)
		}
		filename, data = export.Filename, export.Data
	}

	summary, err := parser.SummarizeExport(bytes.NewReader(data), s.profanity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExport, err)
	}

	saved, err := s.store.SaveExport(ctx, filename, summary)
	if err != nil {
		return nil, fmt.Errorf("failed to store summary: %w", err)
	}

	log.Printf("Ingest: Stored export %s (%d messages, %d senders)", saved.ID, summary.TotalMessages, summary.UniqueSenders)
	return saved, nil
}

// IngestAll stores every export, stopping at the first storage failure.
// Invalid exports are logged and skipped. It returns the stored exports.
func (s *Service) IngestAll(ctx context.Context, exports []*mailimport.Export) ([]*models.ChatExport, error) {
	saved := make([]*models.ChatExport, 0, len(exports))
	for _, export := range exports {
		stored, err := s.Ingest(ctx, export.Filename, export.Data)
		if errors.Is(err, ErrInvalidExport) {
			log.Printf("Ingest: Skipping %s (UID %d): %v", export.Filename, export.UID, err)
			continue
		}
		if err != nil {
			return saved, err
		}
		saved = append(saved, stored)
	}
	return saved, nil
}

// NewServiceFromConfig opens the upload archive, sealed when an encryption
// key is configured, and loads the profanity list when one is configured.
func NewServiceFromConfig(cfg *config.Config, store db.Store) (*Service, error) {
	var encryptor *crypto.Encryptor
	if cfg.EncryptionKeyBase64 != "" {
		var err error
		encryptor, err = crypto.NewEncryptor(cfg.EncryptionKeyBase64)
		if err != nil {
			return nil, fmt.Errorf("failed to create encryptor: %w", err)
		}
	}

	arch, err := archive.New(cfg.UploadDir, encryptor)
	if err != nil {
		return nil, err
	}

	var profanity *parser.ProfanityList
	if cfg.ProfanityListPath != "" {
		profanity, err = parser.LoadProfanityList(cfg.ProfanityListPath)
		if err != nil {
			return nil, err
		}
		log.Printf("Ingest: Loaded %d profanity entries from %s", profanity.Len(), cfg.ProfanityListPath)
	}

	return NewService(store, arch, profanity), nil
}
