package registry

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"actdex/internal"
	"actdex/internal/storage"
)

func TestSyncDocumentsContinuesPastFetchFailures(t *testing.T) {
	tmp := t.TempDir()
	db, err := storage.Open(filepath.Join(tmp, "actdex.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	markup := `<html><p class="ActHead2">Part I</p>` +
		`<p class="ActHead5">6  Interpretation</p>` +
		`<p class="Definition"><b>agency</b> means a Department of State.</p></html>`

	svc := NewSyncService(db, testConfig())
	svc.client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if strings.HasSuffix(r.URL.Path, "/GOOD") {
				return htmlResponse(http.StatusOK, markup), nil
			}
			return htmlResponse(http.StatusNotFound, "missing"), nil
		}),
	}

	docs := []internal.DocumentDescriptor{
		{ID: "GOOD", Title: "Good Act 2001", Year: 2001, Status: internal.StatusInForce},
		{ID: "BAD", Title: "Bad Act 2002", Year: 2002, Status: internal.StatusInForce},
	}
	results, err := svc.SyncDocuments(context.Background(), docs, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("results=%d", len(results))
	}
	if results[0].Status != "ok" || results[0].Provisions != 1 || results[0].Definitions != 1 {
		t.Fatalf("%+v", results[0])
	}
	if results[1].Status != "bad_status" || results[1].Provisions != 0 {
		t.Fatalf("%+v", results[1])
	}

	stored, err := db.ListProvisions("GOOD")
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 || stored[0].Ref != "s6" {
		t.Fatalf("%+v", stored)
	}

	runs, err := db.ListRuns(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs=%d", len(runs))
	}
	if c := runs[0].Counts; c["documents"] != 2 || c["ok"] != 1 || c["failed"] != 1 {
		t.Fatalf("%+v", runs[0].Counts)
	}
}

func TestFetchFailureClass(t *testing.T) {
	cases := map[error]string{
		ErrShellPage:    "shell_page",
		ErrBodyTooSmall: "body_too_small",
		ErrStatus:       "bad_status",
	}
	for err, want := range cases {
		if got := fetchFailureClass(err); got != want {
			t.Fatalf("fetchFailureClass(%v) = %q", err, got)
		}
	}
}
