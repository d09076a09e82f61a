// Package export renders a document's extracted events as CSV or JSON for
// download.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/qikCode/marithon-project/internal/storage/sqlite"
)

// Options selects which optional columns/fields are included.
type Options struct {
	IncludeConfidence bool
	IncludeRemarks    bool
	IncludeMetadata   bool
}

// DefaultOptions matches what the UI offers by default.
func DefaultOptions() Options {
	return Options{IncludeConfidence: true, IncludeRemarks: true}
}

// WriteCSV writes the events as CSV. Confidence is rendered as a whole
// percentage. With IncludeMetadata, a metadata block follows the events.
func WriteCSV(w io.Writer, doc *sqlite.DocumentRecord, events []*sqlite.EventRecord, opts Options) error {
	cw := csv.NewWriter(w)

	header := []string{"Event", "Event Type", "Start Time", "End Time", "Duration", "Location"}
	if opts.IncludeConfidence {
		header = append(header, "Confidence")
	}
	if opts.IncludeRemarks {
		header = append(header, "Remarks")
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, ev := range events {
		row := []string{
			ev.Name,
			string(ev.Type),
			ev.StartTime,
			ev.EndTime,
			ev.Duration,
			ev.Location,
		}
		if opts.IncludeConfidence {
			row = append(row, fmt.Sprintf("%.0f%%", ev.Confidence*100))
		}
		if opts.IncludeRemarks {
			row = append(row, ev.Remarks)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	if opts.IncludeMetadata && doc != nil {
		rows := [][]string{
			{},
			{"Document Metadata:"},
			{"Original Filename", doc.Filename},
			{"Processing Date", time.Now().UTC().Format(time.RFC3339)},
			{"Total Events", strconv.Itoa(len(events))},
			{"File Size", fmt.Sprintf("%d bytes", doc.SizeBytes)},
		}
		for _, row := range rows {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV metadata: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// jsonEvent is the export shape of one event; omitted fields stay out of the
// output entirely.
type jsonEvent struct {
	Event      string   `json:"event"`
	EventType  string   `json:"event_type"`
	StartTime  string   `json:"start_time,omitempty"`
	EndTime    string   `json:"end_time,omitempty"`
	Duration   string   `json:"duration,omitempty"`
	Location   string   `json:"location,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
	Remarks    string   `json:"remarks,omitempty"`
}

type jsonMetadata struct {
	OriginalFilename string `json:"original_filename"`
	ProcessingDate   string `json:"processing_date"`
	TotalEvents      int    `json:"total_events"`
	FileSize         int64  `json:"file_size"`
	ExtractionMethod string `json:"extraction_method"`
}

type jsonExport struct {
	Events   []jsonEvent   `json:"events"`
	Metadata *jsonMetadata `json:"metadata,omitempty"`
}

// WriteJSON writes the events as indented JSON.
func WriteJSON(w io.Writer, doc *sqlite.DocumentRecord, events []*sqlite.EventRecord, opts Options) error {
	out := jsonExport{Events: make([]jsonEvent, 0, len(events))}

	for _, ev := range events {
		je := jsonEvent{
			Event:     ev.Name,
			EventType: string(ev.Type),
			StartTime: ev.StartTime,
			EndTime:   ev.EndTime,
			Duration:  ev.Duration,
			Location:  ev.Location,
		}
		if opts.IncludeConfidence {
			c := ev.Confidence
			je.Confidence = &c
		}
		if opts.IncludeRemarks {
			je.Remarks = ev.Remarks
		}
		out.Events = append(out.Events, je)
	}

	if opts.IncludeMetadata && doc != nil {
		out.Metadata = &jsonMetadata{
			OriginalFilename: doc.Filename,
			ProcessingDate:   time.Now().UTC().Format(time.RFC3339),
			TotalEvents:      len(events),
			FileSize:         doc.SizeBytes,
			ExtractionMethod: "hybrid_nlp_regex",
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode JSON export: %w", err)
	}
	return nil
}
