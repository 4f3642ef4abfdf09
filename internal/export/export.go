// Package export writes extracted directory records to interchange formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jackzampolin/citydir/internal/extract"
)

// Format identifies an export output format.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// ParseFormat converts a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatJSONL, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown export format: %q (want csv, jsonl, or yaml)", s)
	}
}

// csvHeader is the fixed column order for CSV output.
var csvHeader = []string{
	"last_name",
	"first_name",
	"spouse_name",
	"occupation",
	"residence_indicator",
	"home_address",
	"business_name",
	"year",
}

// WriteCSV writes records as CSV with a header row.
func WriteCSV(w io.Writer, records []extract.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, rec := range records {
		row := []string{
			rec.LastName,
			rec.FirstName,
			rec.SpouseName,
			rec.Occupation,
			string(rec.Residence),
			rec.HomeAddress,
			rec.BusinessName,
			rec.Year,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSONL writes records as newline-delimited JSON, one record per line.
func WriteJSONL(w io.Writer, records []extract.Record) error {
	enc := json.NewEncoder(w)
	for i, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to encode record %d: %w", i, err)
		}
	}
	return nil
}

// WriteYAML writes records as a YAML sequence.
func WriteYAML(w io.Writer, records []extract.Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	return enc.Close()
}

// Write dispatches to the writer for the given format.
func Write(w io.Writer, format Format, records []extract.Record) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatJSONL:
		return WriteJSONL(w, records)
	case FormatYAML:
		return WriteYAML(w, records)
	default:
		return fmt.Errorf("unknown export format: %q", format)
	}
}

// WriteFile validates records and writes them to path in the given format.
func WriteFile(path string, format Format, records []extract.Record) error {
	if err := Validate(records); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := Write(f, format, records); err != nil {
		return err
	}
	return f.Close()
}
