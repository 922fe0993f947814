package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"actdex/internal"
	"actdex/internal/config"
	"actdex/internal/pipeline"
	"actdex/internal/registry"
	"actdex/internal/storage"
	"actdex/internal/watch"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()
	if cfg.CrossRefsEnabled {
		must(db.EnableCrossRefs())
	}

	cmd := os.Args[1]
	switch cmd {
	case "acts:sync":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		manifest := fs.String("manifest", cfg.ManifestPath, "document manifest path")
		_ = fs.Parse(os.Args[2:])
		docs, versions, err := registry.LoadManifest(*manifest)
		must(err)
		svc := registry.NewSyncService(db, cfg)
		results, err := svc.SyncDocuments(context.Background(), docs, versions)
		must(err)
		for _, r := range results {
			fmt.Printf("%s status=%s provisions=%d definitions=%d\n", r.DocumentID, r.Status, r.Provisions, r.Definitions)
		}
	case "act:fetch":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "document id")
		out := fs.String("out", "", "write markup to file instead of stdout")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*id) == "" {
			must(fmt.Errorf("--id is required"))
		}
		client := registry.NewClient(cfg)
		markup, err := client.FetchDocument(context.Background(), *id)
		must(err)
		if strings.TrimSpace(*out) == "" {
			fmt.Print(markup)
			return
		}
		must(os.WriteFile(*out, []byte(markup), 0o644))
		fmt.Printf("fetched %s bytes=%d out=%s\n", *id, len(markup), *out)
	case "act:parse":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "markup file path")
		id := fs.String("id", "", "document id")
		title := fs.String("title", "", "document title")
		year := fs.Int("year", 0, "publication year")
		sourceURL := fs.String("source-url", "", "source locator")
		status := fs.String("status", "in_force", "lifecycle status")
		store := fs.Bool("store", false, "persist the parsed record")
		_ = fs.Parse(os.Args[2:])
		if *input == "" || *id == "" || *title == "" || *year == 0 {
			must(fmt.Errorf("--input --id --title --year are required"))
		}
		blob, err := os.ReadFile(*input)
		must(err)
		doc := internal.DocumentDescriptor{
			ID:        *id,
			Title:     *title,
			Year:      *year,
			SourceURL: *sourceURL,
			Status:    pipeline.MapStatus(*status),
		}
		act := pipeline.BuildAct(string(blob), doc, nil)
		if *store {
			must(db.UpsertAct(act))
		}
		encoded, err := json.MarshalIndent(act, "", "  ")
		must(err)
		fmt.Println(string(encoded))
	case "query:provision":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		docID := fs.String("doc", "", "document id")
		section := fs.String("section", "", "section number")
		_ = fs.Parse(os.Args[2:])
		if *docID == "" || *section == "" {
			must(fmt.Errorf("--doc and --section are required"))
		}
		p, err := db.GetProvision(*docID, *section)
		must(err)
		if p == nil {
			fmt.Printf("no provision %s in %s\n", *section, *docID)
			return
		}
		fmt.Printf("%s [%s] %s\n%s\n", p.Ref, p.Chapter, p.Title, p.Content)
	case "query:search":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		q := fs.String("q", "", "full-text query")
		limit := fs.Int("limit", 20, "max results")
		defs := fs.Bool("definitions", false, "search definitions instead of provisions")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*q) == "" {
			must(fmt.Errorf("--q is required"))
		}
		if *defs {
			hits, err := db.SearchDefinitions(*q, *limit)
			must(err)
			for _, h := range hits {
				fmt.Printf("%s %s: %s — %s\n", h.DocID, h.SourceProvision, h.Term, h.Definition)
			}
			return
		}
		hits, err := db.SearchProvisions(*q, *limit)
		must(err)
		for _, h := range hits {
			fmt.Printf("%s %s: %s\n", h.DocID, h.Ref, h.Title)
		}
	case "query:list":
		docs, err := db.ListDocuments()
		must(err)
		for _, d := range docs {
			fmt.Printf("%s [%s] %s (issued %s, in force %s)\n", d.ID, d.Status, d.Title, d.IssuedDate, d.InForceDate)
		}
	case "query:structure":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		docID := fs.String("doc", "", "document id")
		_ = fs.Parse(os.Args[2:])
		if *docID == "" {
			must(fmt.Errorf("--doc is required"))
		}
		entries, err := db.GetStructure(*docID)
		must(err)
		for _, e := range entries {
			fmt.Printf("%-8s %-40s %s\n", e.Ref, e.Chapter, e.Title)
		}
	case "query:runs":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 10, "max runs")
		_ = fs.Parse(os.Args[2:])
		runs, err := db.ListRuns(*limit)
		must(err)
		for _, r := range runs {
			fmt.Printf("%s %s documents=%d ok=%d failed=%d\n",
				r.CreatedAt, r.RunID, r.Counts["documents"], r.Counts["ok"], r.Counts["failed"])
		}
	case "query:crossrefs":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		docID := fs.String("doc", "", "document id")
		_ = fs.Parse(os.Args[2:])
		if *docID == "" {
			must(fmt.Errorf("--doc is required"))
		}
		refs, err := db.CrossRefsFor(*docID)
		must(err)
		for _, r := range refs {
			marker := ""
			if r.IsPrimary {
				marker = " (primary)"
			}
			fmt.Printf("%s -> %s%s\n", r.DocID, r.ExternalID, marker)
		}
	case "crossref:add":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		docID := fs.String("doc", "", "document id")
		external := fs.String("external", "", "external source identifier")
		primary := fs.Bool("primary", false, "primary implementation flag")
		_ = fs.Parse(os.Args[2:])
		if *docID == "" || *external == "" {
			must(fmt.Errorf("--doc and --external are required"))
		}
		must(db.AddCrossRef(*docID, *external, *primary))
		fmt.Printf("crossref added %s -> %s\n", *docID, *external)
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		docID := fs.String("doc", "", "document id")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if *docID == "" || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--doc and --out are required"))
		}
		provisions, err := db.ListProvisions(*docID)
		must(err)
		if len(provisions) == 0 {
			must(fmt.Errorf("no provisions stored for %s", *docID))
		}
		must(pipeline.ExportProvisionsToXLSX(*docID, provisions, *out))
		fmt.Printf("exported %d provisions to %s\n", len(provisions), *out)
	case "acts:watch":
		s := watch.NewService(db, cfg)
		must(s.Run(context.Background()))
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: actdex <command>")
	fmt.Println("commands:")
	fmt.Println("  acts:sync --manifest=./data/manifest.json")
	fmt.Println("  act:fetch --id=C2004A03712 [--out=./act.html]")
	fmt.Println("  act:parse --input=./act.html --id=... --title=... --year=1988 [--status=in_force] [--store]")
	fmt.Println("  query:provision --doc=... --section=6")
	fmt.Println("  query:search --q=... [--limit=20] [--definitions]")
	fmt.Println("  query:list")
	fmt.Println("  query:structure --doc=...")
	fmt.Println("  query:runs [--limit=10]")
	fmt.Println("  query:crossrefs --doc=...")
	fmt.Println("  crossref:add --doc=... --external=... [--primary]")
	fmt.Println("  export:xlsx --doc=... --out=./out/provisions.xlsx")
	fmt.Println("  acts:watch")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
