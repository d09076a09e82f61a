package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(testLogger())
}

func TestMatchArrivalWithVessel(t *testing.T) {
	s := newTestService()

	events := s.matchPatterns("MV OCEAN STAR arrived at Singapore anchorage on 15/03/2024 at 06:45.")
	require.NotEmpty(t, events)

	ev := events[0]
	assert.Equal(t, EventArrival, ev.Type)
	assert.Equal(t, "Vessel Arrived", ev.Name)
	assert.Equal(t, "2024-03-15 06:45", ev.StartTime)
	assert.Contains(t, ev.Location, "Singapore")
	assert.Equal(t, 0.9, ev.Confidence)
	assert.Equal(t, MethodPattern, ev.Method)
	assert.Equal(t, ev.RawText, ev.Remarks)
}

func TestMatchLoadingVerbSignals(t *testing.T) {
	s := newTestService()

	events := s.matchPatterns("Loading commenced at 11:00. Loading completed at 18:45.")
	require.Len(t, events, 2)

	assert.Equal(t, "Loading Commenced", events[0].Name)
	assert.Equal(t, "11:00", events[0].StartTime)
	assert.Equal(t, "Loading Completed", events[1].Name)
	assert.Equal(t, "18:45", events[1].StartTime)
	for _, ev := range events {
		assert.Equal(t, EventLoading, ev.Type)
		assert.Equal(t, 0.85, ev.Confidence)
	}
}

func TestMatchPilotMovement(t *testing.T) {
	s := newTestService()

	events := s.matchPatterns("Pilot embarked at 08:30 and pilot disembarked at 09:10.")
	require.Len(t, events, 2)
	assert.Equal(t, EventPilot, events[0].Type)
	assert.Equal(t, "08:30", events[0].StartTime)
	assert.Equal(t, "09:10", events[1].StartTime)
	assert.Equal(t, 0.95, events[0].Confidence)
}

func TestMatchWeatherDelayRange(t *testing.T) {
	s := newTestService()

	events := s.matchPatterns("Heavy rain from 14:30 to 16:00 stopped all work.")
	require.NotEmpty(t, events)

	ev := events[0]
	assert.Equal(t, EventWeather, ev.Type)
	assert.Equal(t, "Weather Delay", ev.Name)
	assert.Equal(t, "14:30", ev.StartTime)
	assert.Equal(t, "16:00", ev.EndTime)
	assert.Equal(t, "1:30:00", ev.Duration)
}

func TestMatchDepartureWithDate(t *testing.T) {
	s := newTestService()

	events := s.matchPatterns("Vessel sailed from Berth 7 on 17/03/2024 at 22:05.")
	require.NotEmpty(t, events)

	ev := events[0]
	assert.Equal(t, EventDeparture, ev.Type)
	assert.Equal(t, "Vessel Departed", ev.Name)
	assert.Equal(t, "2024-03-17 22:05", ev.StartTime)
}

func TestEventName(t *testing.T) {
	tests := []struct {
		eventType EventType
		span      string
		want      string
	}{
		{EventLoading, "loading commenced at 11:00", "Loading Commenced"},
		{EventLoading, "loading finished at 18:45", "Loading Completed"},
		{EventDischarging, "discharge suspended due to rain", "Discharging Suspended"},
		{EventDischarging, "discharging resumed at 16:00", "Discharging Resumed"},
		{EventLoading, "loading in progress", "Loading Operations"},
		// Base names without the Operations token stay put even with a verb signal.
		{EventArrival, "vessel arrived, operations commenced", "Vessel Arrived"},
		{EventWeather, "work suspended due to storm", "Weather Delay"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, eventName(tt.eventType, tt.span), "span %q", tt.span)
	}
}

func TestLocationFromText(t *testing.T) {
	s := newTestService()

	assert.Contains(t, locationFromText(s.locations, "moored at Berth 12 all fast"), "12")
	assert.Equal(t, "Rotterdam", locationFromText(s.locations, "arrived off Rotterdam at 04:00"))
	assert.Equal(t, "", locationFromText(s.locations, "no place mentioned"))
}
