package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsolidateDeduplicates(t *testing.T) {
	pattern := Event{
		Type:       EventLoading,
		Name:       "Commenced Loading",
		StartTime:  "2024-03-15 11:00",
		Location:   "Berth 7",
		Confidence: 0.92,
		Method:     MethodPattern,
	}
	nlp := pattern
	nlp.Confidence = 0.75
	nlp.Method = MethodNLP

	events := Consolidate([]Event{pattern, nlp}, "")
	require.Len(t, events, 1)
	assert.Equal(t, MethodPattern, events[0].Method, "first occurrence wins")
	assert.Equal(t, 0.92, events[0].Confidence)
}

func TestConsolidateKeepsDistinctSignatures(t *testing.T) {
	a := Event{Type: EventLoading, Name: "Commenced Loading", StartTime: "11:00", Confidence: 0.9}
	b := Event{Type: EventLoading, Name: "Completed Loading", StartTime: "18:45", Confidence: 0.9}

	events := Consolidate([]Event{a, b}, "")
	assert.Len(t, events, 2)
}

func TestConsolidateSortOrder(t *testing.T) {
	bare := Event{Type: EventPilot, Name: "Pilot Embarked", StartTime: "08:30", Confidence: 0.95}
	dated := Event{Type: EventArrival, Name: "Vessel Arrived", StartTime: "2023-06-01 10:00", Confidence: 0.9}
	missing := Event{Type: EventWeather, Name: "Weather Delay", Confidence: 0.85}

	events := Consolidate([]Event{missing, bare, dated}, "")
	require.Len(t, events, 3)
	assert.Equal(t, EventArrival, events[0].Type, "dated timestamps sort before bare times")
	assert.Equal(t, EventPilot, events[1].Type)
	assert.Equal(t, EventWeather, events[2].Type, "missing start times sort last")
}

func TestConsolidateSortIsStable(t *testing.T) {
	first := Event{Type: EventLoading, Name: "Commenced Loading", StartTime: "11:00", Confidence: 0.92}
	second := Event{Type: EventLoading, Name: "Loading Operations", StartTime: "11:00", Confidence: 0.75}

	events := Consolidate([]Event{first, second}, "")
	require.Len(t, events, 2)
	assert.Equal(t, "Commenced Loading", events[0].Name)
	assert.Equal(t, "Loading Operations", events[1].Name)
}

func TestConsolidateDropsLowConfidence(t *testing.T) {
	keep := Event{Type: EventArrival, Name: "Vessel Arrived", StartTime: "06:45", Confidence: 0.5}
	drop := Event{Type: EventArrival, Name: "Vessel Arrived", StartTime: "07:00", Confidence: 0.49}
	unnamed := Event{Type: EventArrival, StartTime: "07:15", Confidence: 0.9}

	events := Consolidate([]Event{keep, drop, unnamed}, "")
	require.Len(t, events, 1)
	assert.Equal(t, "Vessel Arrived", events[0].Name)
	assert.Equal(t, "06:45", events[0].StartTime)
}

func TestConsolidateAttachesContext(t *testing.T) {
	source := "Log preamble. Pilot embarked at 08:30 off the fairway buoy. Log postamble."
	ev := Event{
		Type:       EventPilot,
		Name:       "Pilot Operations",
		StartTime:  "08:30",
		Confidence: 0.95,
		RawText:    "Pilot embarked at 08:30",
	}

	events := Consolidate([]Event{ev}, source)
	require.Len(t, events, 1)
	assert.Contains(t, events[0].Context, "Pilot embarked at 08:30")
	assert.Contains(t, events[0].Context, "Log preamble")
	assert.Contains(t, events[0].Context, "Log postamble")
}

func TestConsolidateContextMissingSpan(t *testing.T) {
	ev := Event{
		Type:       EventPilot,
		Name:       "Pilot Operations",
		StartTime:  "08:30",
		Confidence: 0.95,
		RawText:    "pilot embarked at 08:30",
	}

	events := Consolidate([]Event{ev}, "completely different text")
	require.Len(t, events, 1)
	assert.Empty(t, events[0].Context)
}

func TestConsolidateEmptyInput(t *testing.T) {
	events := Consolidate(nil, "")
	require.NotNil(t, events)
	assert.Empty(t, events)
}

func TestConsolidateLongNamePrefix(t *testing.T) {
	longName := "Commenced Loading Of Bulk Grain Cargo Into Holds One Through Five"
	a := Event{Type: EventLoading, Name: longName + " Port Side", StartTime: "11:00", Confidence: 0.9}
	b := Event{Type: EventLoading, Name: longName + " Stbd Side", StartTime: "11:00", Confidence: 0.9}

	// Names differ only beyond the 50-char prefix, so they collapse.
	events := Consolidate([]Event{a, b}, "")
	require.Len(t, events, 1)
	assert.Contains(t, events[0].Name, "Port Side")
}

func TestSortKey(t *testing.T) {
	assert.Equal(t, "2024-03-15 06:45", sortKey(Event{StartTime: "2024-03-15 06:45"}))
	assert.Equal(t, "2024-01-01 08:30", sortKey(Event{StartTime: "08:30"}))
	assert.Equal(t, "9999-12-31 23:59", sortKey(Event{}))
}
