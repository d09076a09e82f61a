// Package chat answers questions about a processed document from its
// extracted events, using deterministic keyword-routed response templates.
package chat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/qikCode/marithon-project/internal/extraction"
	"github.com/qikCode/marithon-project/internal/storage/sqlite"
	"github.com/qikCode/marithon-project/pkg/logger"
)

// DataAggregator collects a document's events and derived statistics for the
// responders.
type DataAggregator struct {
	documents *sqlite.DocumentStorage
	events    *sqlite.EventStorage
	logger    *logger.Logger
}

// DocumentContext is everything a responder may draw on for one document.
type DocumentContext struct {
	Document *sqlite.DocumentRecord
	Events   []*sqlite.EventRecord
	Summary  Summary
}

// Summary holds statistics derived from a document's events.
type Summary struct {
	TotalEvents       int
	ByType            map[extraction.EventType]int
	AvgConfidence     float64
	LoadingHours      float64
	WeatherDelayHours float64
	FirstStart        string
	LastStart         string
}

// NewDataAggregator creates a new chat data aggregator
func NewDataAggregator(documents *sqlite.DocumentStorage, events *sqlite.EventStorage, log *logger.Logger) *DataAggregator {
	return &DataAggregator{
		documents: documents,
		events:    events,
		logger:    log.Named("chat-aggregator"),
	}
}

// GetDocumentContext loads a document and its events, or returns nil when the
// document does not exist.
func (da *DataAggregator) GetDocumentContext(documentID int64) (*DocumentContext, error) {
	doc, err := da.documents.GetDocument(documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	if doc == nil {
		return nil, nil
	}

	events, err := da.events.GetEventsByDocument(documentID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	da.logger.Debug("Aggregated document context",
		logger.Int64("document_id", documentID),
		logger.Int("event_count", len(events)))

	return &DocumentContext{
		Document: doc,
		Events:   events,
		Summary:  Summarize(events),
	}, nil
}

// Summarize derives the per-document statistics from an event list.
func Summarize(events []*sqlite.EventRecord) Summary {
	s := Summary{
		TotalEvents: len(events),
		ByType:      make(map[extraction.EventType]int, len(extraction.EventTypes)),
	}

	var confidenceSum float64
	for _, ev := range events {
		s.ByType[ev.Type]++
		confidenceSum += ev.Confidence

		switch ev.Type {
		case extraction.EventLoading:
			s.LoadingHours += DurationHours(ev.Duration)
		case extraction.EventWeather:
			s.WeatherDelayHours += DurationHours(ev.Duration)
		}

		if ev.StartTime == "" {
			continue
		}
		if s.FirstStart == "" || ev.StartTime < s.FirstStart {
			s.FirstStart = ev.StartTime
		}
		if ev.StartTime > s.LastStart {
			s.LastStart = ev.StartTime
		}
	}

	if len(events) > 0 {
		s.AvgConfidence = confidenceSum / float64(len(events))
	}

	return s
}

// DurationHours parses an "H:MM:SS" (or "H:MM") duration into fractional
// hours. Unparseable values count as zero.
func DurationHours(duration string) float64 {
	parts := strings.Split(duration, ":")
	if len(parts) < 2 {
		return 0
	}
	hours, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0
	}
	minutes, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0
	}
	return hours + minutes/60
}

// eventsOfType filters a context's events by type, preserving order.
func eventsOfType(events []*sqlite.EventRecord, t extraction.EventType) []*sqlite.EventRecord {
	var out []*sqlite.EventRecord
	for _, ev := range events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// dateOf returns the date half of a "YYYY-MM-DD HH:MM" timestamp, or the
// whole value when it carries no date.
func dateOf(startTime string) string {
	if i := strings.IndexByte(startTime, ' '); i >= 0 {
		return startTime[:i]
	}
	return startTime
}

// timeOf returns the time half of a "YYYY-MM-DD HH:MM" timestamp, or the
// whole value when it is a bare time.
func timeOf(startTime string) string {
	if i := strings.IndexByte(startTime, ' '); i >= 0 {
		return startTime[i+1:]
	}
	return startTime
}
