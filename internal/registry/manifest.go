package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"actdex/internal"
	"actdex/internal/pipeline"
)

type manifestVersion struct {
	RegisterID         *string `json:"register_id"`
	CompilationNo      *string `json:"compilation_no"`
	Status             *string `json:"status"`
	StartDate          *string `json:"start_date"`
	RetrospectiveStart *string `json:"retrospective_start"`
	MakingDate         *string `json:"making_date"`
}

type manifestDocument struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Year      int              `json:"year"`
	SourceURL string           `json:"source_url"`
	Status    string           `json:"status"`
	Version   *manifestVersion `json:"version"`
}

type manifestFile struct {
	Documents []manifestDocument `json:"documents"`
}

// LoadManifest reads the document list driving a sync run: descriptors plus
// optional per-document version metadata, keyed by document id.
func LoadManifest(path string) ([]internal.DocumentDescriptor, map[string]*internal.VersionMeta, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var mf manifestFile
	if err := json.Unmarshal(blob, &mf); err != nil {
		return nil, nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	docs := make([]internal.DocumentDescriptor, 0, len(mf.Documents))
	versions := map[string]*internal.VersionMeta{}
	for _, d := range mf.Documents {
		docs = append(docs, internal.DocumentDescriptor{
			ID:        d.ID,
			Title:     d.Title,
			Year:      d.Year,
			SourceURL: d.SourceURL,
			Status:    pipeline.MapStatus(d.Status),
		})
		if d.Version != nil {
			versions[d.ID] = &internal.VersionMeta{
				RegisterID:         d.Version.RegisterID,
				CompilationNo:      d.Version.CompilationNo,
				Status:             d.Version.Status,
				StartDate:          d.Version.StartDate,
				RetrospectiveStart: d.Version.RetrospectiveStart,
				MakingDate:         d.Version.MakingDate,
			}
		}
	}
	return docs, versions, nil
}
