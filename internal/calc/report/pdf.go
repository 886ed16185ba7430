package report

import (
	"fmt"
	"io"
	"time"

	laser "Aperture/internal/calc/laser"
	"github.com/phpdave11/gofpdf"
)

type Meta struct {
	Project string    `json:"project"`
	Author  string    `json:"author"`
	Title   string    `json:"title"`
	Notes   string    `json:"notes"`
	Date    time.Time `json:"-"`
}

// WritePDF renders the same sections as Export on an A4 page.
func WritePDF(w io.Writer, meta Meta, in laser.Parameters, res laser.Result) error {
	if meta.Title == "" {
		meta.Title = Heading
	}
	if meta.Date.IsZero() {
		meta.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	// core fonts are cp1252; this maps ², µ and dashes
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(meta.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	if meta.Project != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", meta.Project)))
		pdf.Ln(6)
	}
	if meta.Author != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", meta.Author)))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", meta.Date.Format("2006-01-02")))
	pdf.Ln(10)

	for _, s := range sections(in, res) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, tr(s.title))
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, l := range s.lines {
			pdf.MultiCell(0, 5, tr(l), "", "L", false)
		}
		pdf.Ln(3)
	}

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, tr(res.Notes), "", "L", false)
	if meta.Notes != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(meta.Notes), "", "L", false)
	}
	return pdf.Output(w)
}
