// Package report encodes ranked word-frequency entries for output.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/humblenginr/hn_wordfreq/analysis"
	"github.com/humblenginr/hn_wordfreq/hn"
)

// Export renders entries in the requested format: json, csv or pdf.
func Export(entries []analysis.Entry, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return json.MarshalIndent(entries, "", "  ")

	case "csv":
		var b bytes.Buffer
		w := csv.NewWriter(&b)
		if err := w.Write([]string{"rank", "word", "count"}); err != nil {
			return nil, err
		}
		for i, e := range entries {
			if err := w.Write([]string{strconv.Itoa(i + 1), e.Word, strconv.Itoa(e.Count)}); err != nil {
				return nil, err
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		return b.Bytes(), nil

	case "pdf":
		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(40, 10, "Hacker News Title Word Frequency")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 9)
		pdf.Cell(0, 6, "Generated "+time.Now().Format("2006-01-02 15:04"))
		pdf.Ln(10)
		pdf.SetFont("Courier", "", 10)
		for i, e := range entries {
			line := fmt.Sprintf("%3d. %-24s %6d", i+1, e.Word, e.Count)
			pdf.MultiCell(0, 5, line, "0", "L", false)
		}
		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}

// StoriesCSV renders the filtered story set as CSV, one row per story. This
// is the serialization step between filtering and word extraction, kept as a
// reviewable artifact of what the counts were computed over.
func StoriesCSV(stories []hn.Story) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	if err := w.Write([]string{"id", "title", "url", "score", "comments", "by"}); err != nil {
		return nil, err
	}
	for _, s := range stories {
		row := []string{strconv.Itoa(s.ID), s.Title, s.URL, strconv.Itoa(s.Score), strconv.Itoa(s.Descendants), s.By}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
