package extraction

import (
	"sort"
	"strings"
)

// Sort keys for events without usable timestamps. The bare-time implicit date
// and the missing-time key make the ordering a plain lexicographic sort;
// events mixing dated and undated timestamps can mis-order across a year
// boundary. That is the documented tie-break downstream consumers rely on,
// not something to fix here.
const (
	implicitDate   = "2024-01-01"
	missingTimeKey = "9999-12-31 23:59"
)

// contextWindow is how many characters of source text are kept on each side
// of a matched span.
const contextWindow = 100

// minConfidence rejects candidates below the floor regardless of origin.
const minConfidence = 0.5

// Consolidate deduplicates candidates by semantic signature, orders them
// chronologically, drops invalid ones, and attaches display context from the
// source text. The result is never nil; beyond the sort, input order carries
// no meaning.
func Consolidate(candidates []Event, sourceText string) []Event {
	unique := deduplicate(candidates)
	sortByStartTime(unique)

	events := make([]Event, 0, len(unique))
	for _, ev := range unique {
		if !validate(ev) {
			continue
		}
		attachContext(&ev, sourceText)
		events = append(events, ev)
	}

	return events
}

// signature identifies duplicate candidates: same type, start time, location
// and name prefix means same real-world event reported twice.
type signature struct {
	eventType  EventType
	startTime  string
	location   string
	namePrefix string
}

func signatureOf(ev Event) signature {
	name := ev.Name
	if len(name) > 50 {
		name = name[:50]
	}
	return signature{
		eventType:  ev.Type,
		startTime:  ev.StartTime,
		location:   ev.Location,
		namePrefix: name,
	}
}

// deduplicate keeps the first occurrence of each signature, preserving
// insertion order among survivors.
func deduplicate(candidates []Event) []Event {
	seen := make(map[signature]bool, len(candidates))
	unique := make([]Event, 0, len(candidates))

	for _, ev := range candidates {
		sig := signatureOf(ev)
		if seen[sig] {
			continue
		}
		seen[sig] = true
		unique = append(unique, ev)
	}

	return unique
}

// sortKey derives the lexicographic ordering key: full string for dated
// timestamps, implicit date for bare times, sentinel for missing times.
func sortKey(ev Event) string {
	switch {
	case ev.StartTime == "":
		return missingTimeKey
	case strings.Contains(ev.StartTime, " "):
		return ev.StartTime
	default:
		return implicitDate + " " + ev.StartTime
	}
}

func sortByStartTime(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return sortKey(events[i]) < sortKey(events[j])
	})
}

// validate drops candidates missing the always-present fields or scored below
// the confidence floor.
func validate(ev Event) bool {
	if ev.Type == "" || ev.Name == "" {
		return false
	}
	return ev.Confidence >= minConfidence
}

// attachContext widens the matched span by contextWindow characters on each
// side when the span is a literal substring of the source. Best-effort and
// for human review only; no downstream decision reads it.
func attachContext(ev *Event, sourceText string) {
	if ev.RawText == "" {
		return
	}
	pos := strings.Index(sourceText, ev.RawText)
	if pos < 0 {
		return
	}

	start := pos - contextWindow
	if start < 0 {
		start = 0
	}
	end := pos + len(ev.RawText) + contextWindow
	if end > len(sourceText) {
		end = len(sourceText)
	}

	ev.Context = strings.TrimSpace(sourceText[start:end])
}
