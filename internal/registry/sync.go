package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"actdex/internal"
	"actdex/internal/config"
	"actdex/internal/pipeline"
	"actdex/internal/storage"
)

// SyncService drives ingestion: fetch each document, parse it, persist the
// record. A fetch failure is reported per document and the run continues;
// only storage errors abort.
type SyncService struct {
	db     *storage.DB
	client *Client
	cfg    config.Config
}

func NewSyncService(db *storage.DB, cfg config.Config) *SyncService {
	return &SyncService{db: db, client: NewClient(cfg), cfg: cfg}
}

func (s *SyncService) SyncDocuments(ctx context.Context, docs []internal.DocumentDescriptor, versions map[string]*internal.VersionMeta) ([]internal.SyncResult, error) {
	runID := uuid.NewString()
	results := make([]internal.SyncResult, 0, len(docs))

	ok, failed := 0, 0
	for _, doc := range docs {
		markup, err := s.client.FetchDocument(ctx, doc.ID)
		if err != nil {
			failed++
			results = append(results, internal.SyncResult{DocumentID: doc.ID, Status: fetchFailureClass(err)})
			fmt.Printf("sync: doc=%s %v\n", doc.ID, err)
			continue
		}

		act := pipeline.BuildAct(markup, doc, versions[doc.ID])
		if err := s.db.UpsertAct(act); err != nil {
			return results, err
		}
		ok++
		results = append(results, internal.SyncResult{
			DocumentID:  doc.ID,
			Status:      "ok",
			Provisions:  len(act.Provisions),
			Definitions: len(act.Definitions),
		})
	}

	if err := s.db.InsertRun(runID, map[string]int{"documents": len(docs), "ok": ok, "failed": failed}); err != nil {
		fmt.Printf("sync: run %s not recorded: %v\n", runID, err)
	}
	return results, nil
}

func fetchFailureClass(err error) string {
	switch {
	case errors.Is(err, ErrShellPage):
		return "shell_page"
	case errors.Is(err, ErrBodyTooSmall):
		return "body_too_small"
	case errors.Is(err, ErrStatus):
		return "bad_status"
	default:
		return "fetch_error"
	}
}
