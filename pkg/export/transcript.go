// Package export renders tabular documents such as academic transcripts.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Format selects the rendered document type.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ParseFormat normalises a requested format, defaulting to CSV.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/csv"
}

// Document is a titled table with summary lines printed after it.
type Document struct {
	Title    string
	Preamble []string
	Headers  []string
	Rows     [][]string
	Summary  [][2]string
}

// Render dispatches to the renderer for the format.
func Render(doc Document, format Format) ([]byte, error) {
	switch format {
	case FormatPDF:
		return RenderPDF(doc)
	default:
		return RenderCSV(doc)
	}
}

// RenderCSV writes the table followed by a blank row and key/value summary rows.
func RenderCSV(doc Document) ([]byte, error) {
	if len(doc.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(doc.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range doc.Rows {
		if err := writer.Write(pad(row, len(doc.Headers))); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	if len(doc.Summary) > 0 {
		if err := writer.Write(nil); err != nil {
			return nil, fmt.Errorf("write csv separator: %w", err)
		}
		for _, line := range doc.Summary {
			if err := writer.Write([]string{line[0], line[1]}); err != nil {
				return nil, fmt.Errorf("write csv summary: %w", err)
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPDF lays the document out on A4 pages.
func RenderPDF(doc Document) ([]byte, error) {
	if len(doc.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if doc.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, doc.Title, "", 1, "C", false, 0, "")
	}
	if len(doc.Preamble) > 0 {
		pdf.SetFont("Arial", "", 10)
		for _, line := range doc.Preamble {
			pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)

	colWidth := 190.0 / float64(len(doc.Headers))
	pdf.SetFont("Arial", "B", 9)
	for _, header := range doc.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range doc.Rows {
		for _, value := range pad(row, len(doc.Headers)) {
			pdf.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(doc.Summary) > 0 {
		pdf.Ln(4)
		for _, line := range doc.Summary {
			pdf.SetFont("Arial", "B", 10)
			pdf.CellFormat(60, 7, line[0], "", 0, "L", false, 0, "")
			pdf.SetFont("Arial", "", 10)
			pdf.CellFormat(0, 7, line[1], "", 1, "L", false, 0, "")
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func pad(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}
