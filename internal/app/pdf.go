package app

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// writeReportPDF renders the sentence, each bracketed parse and its chunks
// into a minimal A4 document.
func writeReportPDF(res Result, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Sentence", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 5, tr(strings.TrimSpace(res.Sentence)), "", "L", false)
	pdf.Ln(2)
	pdf.MultiCell(0, 5, tr("Tokens: "+strings.Join(res.Tokens, " ")), "", "L", false)

	for i, p := range res.Parses {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, fmt.Sprintf("Parse %d", i+1), "", 1, "L", false, 0, "")
		pdf.SetFont("Courier", "", 9)
		pdf.MultiCell(0, 4, tr(p.Bracketed), "", "L", false)
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, "Noun Phrase Chunks", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, c := range p.Chunks {
			pdf.CellFormat(0, 5, tr("- "+c), "", 1, "L", false, 0, "")
		}
	}

	return pdf.OutputFileAndClose(outPath)
}
