package extraction

import (
	"regexp"
	"strings"
)

// classifierConfidence is the fixed weight for sentence-classified events,
// regardless of how many keywords matched.
const classifierConfidence = 0.75

// minSentenceLen drops fragments too short to describe an event.
const minSentenceLen = 10

var sentenceSplitRE = regexp.MustCompile(`[.!?]+`)

var bareTimeRE = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)

// classifySentences is the heuristic fallback pass: it segments the text into
// sentences and turns any sentence carrying both a maritime keyword and an
// HH:MM token into a lower-confidence candidate. The type is decided by the
// first entry in the keyword table whose set intersects the sentence —
// deliberate first-match-wins, not scoring.
func (s *Service) classifySentences(text string) []Event {
	var events []Event

	for _, sentence := range sentenceSplitRE.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) < minSentenceLen {
			continue
		}

		times := bareTimeRE.FindAllString(sentence, -1)
		if len(times) == 0 {
			continue
		}

		lower := strings.ToLower(sentence)
		if !containsAny(lower, maritimeKeywords) {
			continue
		}

		eventType, ok := classifyEventType(s.classifier, lower)
		if !ok {
			continue
		}

		ev := Event{
			Type:       eventType,
			Name:       eventName(eventType, sentence),
			Confidence: classifierConfidence,
			Method:     MethodNLP,
			RawText:    sentence,
			Remarks:    sentence,
			StartTime:  times[0],
		}
		if loc := locationFromText(s.locations, sentence); loc != "" {
			ev.Location = loc
		}

		events = append(events, ev)
	}

	return events
}

// classifyEventType walks the keyword table in order and returns the first
// type with a keyword present in the sentence.
func classifyEventType(table []typeKeywords, lowerSentence string) (EventType, bool) {
	for _, tk := range table {
		if containsAny(lowerSentence, tk.keywords) {
			return tk.eventType, true
		}
	}
	return "", false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
