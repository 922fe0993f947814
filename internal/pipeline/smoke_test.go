package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"actdex/internal"
	"actdex/internal/storage"
)

func TestSmokeMarkupToStoreToXLSX(t *testing.T) {
	blob, err := os.ReadFile(filepath.Join("testdata", "sample_act.html"))
	if err != nil {
		t.Fatal(err)
	}

	doc := internal.DocumentDescriptor{
		ID:        "C2004A03712",
		Title:     "Privacy Act 1988",
		Year:      1988,
		SourceURL: "https://example.test/C2004A03712",
		Status:    internal.StatusInForce,
	}
	act := BuildAct(string(blob), doc, nil)

	if len(act.Provisions) != 4 {
		t.Fatalf("provisions=%d: %+v", len(act.Provisions), act.Provisions)
	}
	wantRefs := []string{"s1", "s6", "s3LA", "s476.2"}
	for i, p := range act.Provisions {
		if p.Ref != wantRefs[i] {
			t.Fatalf("provision %d ref %q", i, p.Ref)
		}
	}
	if act.Provisions[1].Chapter != "Part I—Preliminary" {
		t.Fatalf("chapter %q", act.Provisions[1].Chapter)
	}
	if act.Provisions[2].Chapter != "Part I—Preliminary > Division 2—Collection" {
		t.Fatalf("chapter %q", act.Provisions[2].Chapter)
	}
	if len(act.Definitions) != 2 {
		t.Fatalf("definitions=%d", len(act.Definitions))
	}

	tmp := t.TempDir()
	db, err := storage.Open(filepath.Join(tmp, "actdex.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := db.UpsertAct(act); err != nil {
		t.Fatal(err)
	}

	stored, err := db.ListProvisions(doc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 4 {
		t.Fatalf("stored=%d", len(stored))
	}

	out := filepath.Join(tmp, "provisions.xlsx")
	if err := ExportProvisionsToXLSX(doc.ID, stored, out); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatal(err)
	}
}
