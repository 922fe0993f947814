package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"actdex/internal"
)

// ExportProvisionsToXLSX writes a document's provisions, in document order,
// to a spreadsheet for manual review.
func ExportProvisionsToXLSX(docID string, provisions []internal.Provision, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"doc_id", "provision_ref", "chapter", "section", "title", "content"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, p := range provisions {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}
		set(1, docID)
		set(2, p.Ref)
		set(3, p.Chapter)
		set(4, p.Section)
		set(5, p.Title)
		set(6, p.Content)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
