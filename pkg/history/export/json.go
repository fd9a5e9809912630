package export

import (
	"context"
	"encoding/json"
	"io"

	"rustrial-os/confgen/pkg/history"
)

// JSONExporter exports run records to JSON format.
type JSONExporter struct {
	// Pretty enables pretty-printing with indentation.
	Pretty bool
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(pretty bool) *JSONExporter {
	return &JSONExporter{
		Pretty: pretty,
	}
}

// Export writes run records to the provided writer in JSON format.
// If Pretty is true, the JSON will be indented for readability.
//
// For a single record, exports the record as a JSON object.
// For multiple records, exports an array of JSON objects.
func (e *JSONExporter) Export(ctx context.Context, records []*history.Record, w io.Writer) error {
	if len(records) == 0 {
		// Write empty array
		_, err := w.Write([]byte("[]"))
		return err
	}

	var data []byte
	var err error

	if len(records) == 1 {
		if e.Pretty {
			data, err = json.MarshalIndent(records[0], "", "  ")
		} else {
			data, err = json.Marshal(records[0])
		}
	} else {
		if e.Pretty {
			data, err = json.MarshalIndent(records, "", "  ")
		} else {
			data, err = json.Marshal(records)
		}
	}

	if err != nil {
		return history.NewExportError("json", len(records), err)
	}

	_, err = w.Write(data)
	if err != nil {
		return history.NewExportError("json", len(records), err)
	}

	return nil
}
