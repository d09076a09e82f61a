package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qikCode/marithon-project/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.NewNop()
}

func TestExtractEmptyInput(t *testing.T) {
	s := newTestService()

	for _, text := range []string{"", "   \n\t  "} {
		events := s.Extract(text)
		require.NotNil(t, events)
		assert.Empty(t, events)
	}
}

func TestExtractStatementOfFacts(t *testing.T) {
	s := newTestService()

	text := `STATEMENT OF FACTS - MV OCEAN STAR

Vessel arrived at Singapore anchorage on 15/03/2024 at 06:45.
Pilot embarked at 08:30.
Commenced berthing at Berth 7 on 15/03/2024 at 09:15.
Loading commenced at 11:00.
Loading completed at 18:45.
Work suspended due to rain at 14:30.
Vessel sailed from Singapore on 16/03/2024 at 20:00.`

	events := s.Extract(text)
	require.NotEmpty(t, events)

	known := make(map[EventType]bool, len(EventTypes))
	for _, et := range EventTypes {
		known[et] = true
	}
	for _, ev := range events {
		assert.True(t, known[ev.Type], "unexpected type %q", ev.Type)
		assert.GreaterOrEqual(t, ev.Confidence, minConfidence)
		assert.NotEmpty(t, ev.Name)
	}

	for i := 1; i < len(events); i++ {
		assert.LessOrEqual(t, sortKey(events[i-1]), sortKey(events[i]), "events not in chronological order")
	}

	var loading []Event
	byType := make(map[EventType][]Event)
	for _, ev := range events {
		byType[ev.Type] = append(byType[ev.Type], ev)
		if ev.Type == EventLoading {
			loading = append(loading, ev)
		}
	}

	// The commenced/completed pair must survive as two distinct events even
	// though both sentences share the same shape.
	require.Len(t, loading, 2)
	assert.Equal(t, "Loading Commenced", loading[0].Name)
	assert.Equal(t, "11:00", loading[0].StartTime)
	assert.Equal(t, "Loading Completed", loading[1].Name)
	assert.Equal(t, "18:45", loading[1].StartTime)

	var arrival *Event
	for i := range byType[EventArrival] {
		if byType[EventArrival][i].Method == MethodPattern {
			arrival = &byType[EventArrival][i]
			break
		}
	}
	require.NotNil(t, arrival)
	assert.Equal(t, "2024-03-15 06:45", arrival.StartTime)
	assert.Contains(t, arrival.Location, "Singapore")
	assert.Equal(t, 0.9, arrival.Confidence)

	require.NotEmpty(t, byType[EventPilot])
	assert.Equal(t, 0.95, byType[EventPilot][0].Confidence)
	assert.Equal(t, "08:30", byType[EventPilot][0].StartTime)

	require.NotEmpty(t, byType[EventWeather])
	assert.Equal(t, "Weather Delay", byType[EventWeather][0].Name)
	assert.Equal(t, "14:30", byType[EventWeather][0].StartTime)

	var departed bool
	for _, ev := range byType[EventDeparture] {
		if ev.StartTime == "2024-03-16 20:00" {
			departed = true
			assert.Equal(t, "Singapore", ev.Location)
		}
	}
	assert.True(t, departed, "dated departure event missing")
}

func TestExtractDeduplicatesAcrossMethods(t *testing.T) {
	s := newTestService()

	// Both the pilot pattern and the sentence classifier fire on this line
	// with identical signatures; only the pattern candidate may survive.
	events := s.Extract("Pilot embarked at 08:30.")
	require.Len(t, events, 1)
	assert.Equal(t, EventPilot, events[0].Type)
	assert.Equal(t, MethodPattern, events[0].Method)
}

func TestExtractAttachesContext(t *testing.T) {
	s := newTestService()

	events := s.Extract("Remarks from the chief officer follow. Pilot embarked at 08:30. Tugs made fast shortly after.")
	require.NotEmpty(t, events)
	assert.Contains(t, events[0].Context, "Pilot embarked at 08:30")
	assert.Contains(t, events[0].Context, "chief officer")
}

func TestFallbackEvents(t *testing.T) {
	events := FallbackEvents()
	require.Len(t, events, 3)

	assert.Equal(t, EventArrival, events[0].Type)
	assert.Equal(t, "2024-03-15 06:45", events[0].StartTime)
	assert.Equal(t, EventPilot, events[1].Type)
	assert.Equal(t, EventBerthing, events[2].Type)
	assert.Equal(t, "Berth 7, PSA Terminal", events[2].Location)

	for _, ev := range events {
		assert.Equal(t, MethodFallback, ev.Method)
		assert.GreaterOrEqual(t, ev.Confidence, minConfidence)
	}
}

func TestFallbackEventsReturnsFreshSlice(t *testing.T) {
	a := FallbackEvents()
	a[0].Name = "mutated"
	b := FallbackEvents()
	assert.NotEqual(t, a[0].Name, b[0].Name)
}
