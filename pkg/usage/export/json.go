package export

import (
	"context"
	"encoding/json"
	"io"

	"mercator-hq/europa/pkg/usage"
)

// JSONExporter exports usage records to JSON format.
type JSONExporter struct {
	// Pretty enables indented output for human readers.
	Pretty bool
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(pretty bool) *JSONExporter {
	return &JSONExporter{
		Pretty: pretty,
	}
}

// Export writes usage records to w as a JSON array. The output is
// always an array, even for zero or one records, so consumers can
// parse it without special cases.
func (e *JSONExporter) Export(ctx context.Context, records []*usage.Record, w io.Writer) error {
	if records == nil {
		records = []*usage.Record{}
	}

	var (
		data []byte
		err  error
	)
	if e.Pretty {
		data, err = json.MarshalIndent(records, "", "  ")
	} else {
		data, err = json.Marshal(records)
	}
	if err != nil {
		return usage.NewExportError("json", len(records), err)
	}

	if _, err := w.Write(data); err != nil {
		return usage.NewExportError("json", len(records), err)
	}

	return nil
}
