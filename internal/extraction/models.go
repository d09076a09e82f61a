// Package extraction turns free-form Statement of Facts text into a
// deduplicated, time-ordered, confidence-scored list of typed port-call
// events. The pipeline is deterministic: an ordered regex pattern library,
// a keyword sentence classifier as a lower-confidence fallback, a temporal
// resolver for times/dates/durations, and a consolidation pass for dedup,
// ordering, validation and context snippets. It never returns an error to
// callers: unparseable spans lose fields, a failed pipeline degrades to a
// fixed, visibly-marked fallback set.
package extraction

// EventType identifies the kind of port-call event.
type EventType string

const (
	EventArrival     EventType = "arrival"
	EventBerthing    EventType = "berthing"
	EventLoading     EventType = "loading"
	EventDischarging EventType = "discharging"
	EventPilot       EventType = "pilot"
	EventDeparture   EventType = "departure"
	EventWeather     EventType = "weather"
)

// EventTypes lists the known event types in their canonical order. The order
// matters: both pattern matching and keyword classification iterate it, and
// first-match-wins tie-breaks depend on it.
var EventTypes = []EventType{
	EventArrival,
	EventBerthing,
	EventLoading,
	EventDischarging,
	EventPilot,
	EventDeparture,
	EventWeather,
}

// Method records how an event was extracted.
type Method string

const (
	MethodPattern  Method = "pattern_matching"
	MethodNLP      Method = "nlp_analysis"
	MethodFallback Method = "fallback"
)

// Event is a single extracted port-call event. Optional fields are empty
// strings when the source span did not yield them.
//
// StartTime and EndTime are "YYYY-MM-DD HH:MM" when the span carried a date,
// bare "HH:MM" otherwise. Duration is "H:MM:SS" with seconds always zero
// (source granularity is minutes). Context is a widened window around the
// matched span, for human review only.
type Event struct {
	Type       EventType `json:"event_type"`
	Name       string    `json:"event"`
	StartTime  string    `json:"start_time,omitempty"`
	EndTime    string    `json:"end_time,omitempty"`
	Duration   string    `json:"duration,omitempty"`
	Location   string    `json:"location,omitempty"`
	Remarks    string    `json:"remarks,omitempty"`
	Context    string    `json:"context,omitempty"`
	Confidence float64   `json:"confidence"`
	Method     Method    `json:"extraction_method"`
	RawText    string    `json:"raw_text,omitempty"`
}

// baseNames maps each event type to its human-readable base name. Names
// containing the "Operations" token are specialized by verb signals found in
// the matched span ("Loading Operations" -> "Loading Commenced").
var baseNames = map[EventType]string{
	EventArrival:     "Vessel Arrived",
	EventBerthing:    "Vessel Berthed",
	EventLoading:     "Loading Operations",
	EventDischarging: "Discharging Operations",
	EventPilot:       "Pilot Operations",
	EventDeparture:   "Vessel Departed",
	EventWeather:     "Weather Delay",
}
