package watch

import (
	"context"
	"fmt"
	"time"

	"actdex/internal/config"
	"actdex/internal/registry"
	"actdex/internal/storage"
)

// Service re-syncs the manifest's documents at a fixed interval so the
// store tracks new compilations as the register publishes them.
type Service struct {
	db  *storage.DB
	cfg config.Config
}

func NewService(db *storage.DB, cfg config.Config) *Service {
	return &Service{db: db, cfg: cfg}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.runCycle(ctx); err != nil {
			fmt.Printf("watch cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.WatchIntervalSec) * time.Second):
		}
	}
}

func (s *Service) runCycle(ctx context.Context) error {
	docs, versions, err := registry.LoadManifest(s.cfg.ManifestPath)
	if err != nil {
		return err
	}

	sync := registry.NewSyncService(s.db, s.cfg)
	results, err := sync.SyncDocuments(ctx, docs, versions)
	if err != nil {
		return err
	}

	ok, failed := 0, 0
	for _, r := range results {
		if r.Status == "ok" {
			ok++
		} else {
			failed++
		}
	}
	fmt.Printf("watch cycle done documents=%d ok=%d failed=%d\n", len(results), ok, failed)
	return nil
}
