package cli

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

const (
	formatJSON  = "json"
	formatJSONL = "jsonl"
)

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// writeReports writes reports as a JSON array, or as JSONL with one
// recommendation per line.
func writeReports(w io.Writer, reports []report, format string) error {
	switch format {
	case formatJSON:
		if reports == nil {
			reports = []report{}
		}
		return writeJSON(w, reports)
	case formatJSONL:
		encoder := json.NewEncoder(w)
		for _, rep := range reports {
			for _, rec := range rep.Recommendations {
				if err := encoder.Encode(rec); err != nil {
					return fmt.Errorf("failed to encode recommendation: %w", err)
				}
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, formatJSON, formatJSONL)
	}
}
