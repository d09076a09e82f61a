package extraction

import (
	"regexp"
	"strings"
)

// matchPatterns scans the whole text with every rule of every event type and
// emits one candidate per non-overlapping match. Overlapping candidates from
// different rules of the same type are legal here; the consolidator resolves
// them by dedup signature, not the matcher. Emission order is rule order,
// then textual position.
func (s *Service) matchPatterns(text string) []Event {
	var events []Event

	for _, tr := range s.patterns {
		for _, rule := range tr.rules {
			matches := rule.re.FindAllStringSubmatch(text, -1)
			for _, match := range matches {
				events = append(events, s.eventFromMatch(match, tr.eventType, rule))
			}
		}
	}

	return events
}

// eventFromMatch builds a candidate from one regex match. The full matched
// span feeds the temporal resolver and becomes the verbatim remarks; the
// location comes from the rule's location capture group when the schema has
// one, otherwise from the shared location patterns.
func (s *Service) eventFromMatch(match []string, eventType EventType, rule Rule) Event {
	span := match[0]

	ev := Event{
		Type:       eventType,
		Name:       eventName(eventType, span),
		Confidence: rule.confidence,
		Method:     MethodPattern,
		RawText:    span,
		Remarks:    strings.TrimSpace(span),
	}

	resolveTemporal(&ev, span)

	if loc := locationFromGroups(match, rule.groups); loc != "" {
		ev.Location = loc
	} else if loc := locationFromText(s.locations, span); loc != "" {
		ev.Location = loc
	}

	return ev
}

// locationFromGroups returns the capture group the rule schema names
// "location", trimmed, or "" when the schema has none or it came up empty.
func locationFromGroups(match []string, groups []string) string {
	for i, name := range groups {
		if name != "location" {
			continue
		}
		if i+1 < len(match) {
			return strings.TrimSpace(match[i+1])
		}
	}
	return ""
}

// locationFromText tries the location patterns in order and returns the first
// capture, or "" when none match.
func locationFromText(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// verbSignals are checked in priority order against the matched span; the
// first one found replaces the "Operations" token of the base name.
var verbSignals = []struct {
	markers []string
	label   string
}{
	{[]string{"commenced", "started"}, "Commenced"},
	{[]string{"completed", "finished"}, "Completed"},
	{[]string{"suspended"}, "Suspended"},
	{[]string{"resumed"}, "Resumed"},
}

// eventName derives the human-readable label for an event: the type's base
// name, specialized by the first verb signal present in the span. Base names
// without an "Operations" token are left unmodified regardless of signals.
func eventName(eventType EventType, span string) string {
	name, ok := baseNames[eventType]
	if !ok {
		name = "Maritime Event"
	}

	lower := strings.ToLower(span)
	for _, sig := range verbSignals {
		for _, marker := range sig.markers {
			if strings.Contains(lower, marker) {
				return strings.Replace(name, "Operations", sig.label, 1)
			}
		}
	}

	return name
}
