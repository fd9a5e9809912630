package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"rustrial-os/confgen/pkg/history"
)

// CSVExporter exports run records to CSV format.
type CSVExporter struct {
	// IncludeHeader includes a header row with column names.
	IncludeHeader bool
}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter(includeHeader bool) *CSVExporter {
	return &CSVExporter{
		IncludeHeader: includeHeader,
	}
}

// Export writes run records to the provided writer in CSV format,
// one row per run.
func (e *CSVExporter) Export(ctx context.Context, records []*history.Record, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if e.IncludeHeader {
		if err := writer.Write(headerRow()); err != nil {
			return history.NewExportError("csv", len(records), err)
		}
	}

	for _, record := range records {
		if err := writer.Write(recordToRow(record)); err != nil {
			return history.NewExportError("csv", len(records), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return history.NewExportError("csv", len(records), err)
	}

	return nil
}

// headerRow returns the CSV header row.
func headerRow() []string {
	return []string{
		"id", "run_time",
		"config_path", "config_hash",
		"output_path", "output_hash", "target",
		"status", "error", "fields", "duration_ms",
		"tool_version",
	}
}

// recordToRow converts a run record to a CSV row.
func recordToRow(record *history.Record) []string {
	formatTime := func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(time.RFC3339)
	}

	return []string{
		record.ID,
		formatTime(record.RunTime),
		record.ConfigPath,
		record.ConfigHash,
		record.OutputPath,
		record.OutputHash,
		record.Target,
		record.Status,
		record.Error,
		fmt.Sprintf("%d", record.Fields),
		fmt.Sprintf("%d", record.Duration.Milliseconds()),
		record.ToolVersion,
	}
}
