package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"Mansoor88-6/time-tracking-api/internal/report"
)

type CSVRenderer struct{}

func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

func (r *CSVRenderer) Format() string      { return "csv" }
func (r *CSVRenderer) ContentType() string { return "text/csv; charset=utf-8" }

// Render writes the header row followed by every data row. The title is
// not part of the CSV body.
func (r *CSVRenderer) Render(table report.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(table.Header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(table.Rows); err != nil {
		return nil, fmt.Errorf("write csv rows: %w", err)
	}
	return buf.Bytes(), nil
}
