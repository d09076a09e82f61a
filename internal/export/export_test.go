package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qikCode/marithon-project/internal/extraction"
	"github.com/qikCode/marithon-project/internal/storage/sqlite"
)

func sampleExport() (*sqlite.DocumentRecord, []*sqlite.EventRecord) {
	doc := &sqlite.DocumentRecord{Filename: "voyage.txt", SizeBytes: 256}
	events := []*sqlite.EventRecord{
		{Event: extraction.Event{
			Type: extraction.EventArrival, Name: "Vessel Arrived",
			StartTime: "2024-03-15 06:45", Location: "Singapore anchorage",
			Confidence: 0.9, Remarks: "anchor dropped",
		}},
		{Event: extraction.Event{
			Type: extraction.EventLoading, Name: "Loading Commenced",
			StartTime: "11:00", Duration: "7:45:00", Confidence: 0.85,
		}},
	}
	return doc, events
}

func TestWriteCSV(t *testing.T) {
	doc, events := sampleExport()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, doc, events, DefaultOptions()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Event", "Event Type", "Start Time", "End Time", "Duration", "Location", "Confidence", "Remarks"}, rows[0])
	assert.Equal(t, "Vessel Arrived", rows[1][0])
	assert.Equal(t, "arrival", rows[1][1])
	assert.Equal(t, "90%", rows[1][6])
	assert.Equal(t, "anchor dropped", rows[1][7])
	assert.Equal(t, "85%", rows[2][6])
}

func TestWriteCSVWithoutOptionalColumns(t *testing.T) {
	doc, events := sampleExport()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, doc, events, Options{}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows[0], 6)
}

func TestWriteCSVMetadata(t *testing.T) {
	doc, events := sampleExport()
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.IncludeMetadata = true
	require.NoError(t, WriteCSV(&buf, doc, events, opts))

	out := buf.String()
	assert.Contains(t, out, "Document Metadata:")
	assert.Contains(t, out, "voyage.txt")
	assert.Contains(t, out, "256 bytes")
}

func TestWriteJSON(t *testing.T) {
	doc, events := sampleExport()
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, doc, events, DefaultOptions()))

	var out struct {
		Events []map[string]any `json:"events"`
		Meta   map[string]any   `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Events, 2)

	assert.Equal(t, "Vessel Arrived", out.Events[0]["event"])
	assert.Equal(t, 0.9, out.Events[0]["confidence"])
	assert.NotContains(t, out.Events[1], "location", "empty optional fields are omitted")
	assert.NotContains(t, out.Events[1], "remarks")
	assert.Nil(t, out.Meta)
}

func TestWriteJSONMetadata(t *testing.T) {
	doc, events := sampleExport()
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, doc, events, Options{IncludeMetadata: true}))

	var out struct {
		Events   []map[string]any `json:"events"`
		Metadata map[string]any   `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.NotNil(t, out.Metadata)
	assert.Equal(t, "voyage.txt", out.Metadata["original_filename"])
	assert.Equal(t, float64(2), out.Metadata["total_events"])
	assert.Equal(t, "hybrid_nlp_regex", out.Metadata["extraction_method"])

	assert.NotContains(t, out.Events[0], "confidence")
}

func TestWriteJSONEmptyEvents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil, nil, DefaultOptions()))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, []any{}, out["events"])
}
