package chat

import "strings"

// queryKind is the routed intent of a user message.
type queryKind string

const (
	queryLoadingTime queryKind = "loading_time"
	queryArrival     queryKind = "arrival"
	queryWeather     queryKind = "weather_delay"
	queryPilot       queryKind = "pilot_operations"
	querySummary     queryKind = "summary"
	queryDemurrage   queryKind = "demurrage"
	queryGreeting    queryKind = "greeting"
	queryGeneral     queryKind = "general"
)

// kindKeywords routes messages to responders. Slice order is the tie-break:
// the first kind with a keyword present in the message wins.
var kindKeywords = []struct {
	kind     queryKind
	keywords []string
}{
	{queryLoadingTime, []string{"loading", "time", "duration", "how long"}},
	{queryArrival, []string{"arrive", "arrival", "when", "reached"}},
	{queryWeather, []string{"weather", "delay", "rain", "wind", "storm"}},
	{queryPilot, []string{"pilot", "operations", "embarked", "disembarked"}},
	{querySummary, []string{"summary", "overview", "total", "all events"}},
	{queryDemurrage, []string{"demurrage", "laytime", "calculation", "charter"}},
}

var greetingWords = []string{"hello", "hi", "help"}

// abbreviations are expanded before routing so "sof summary" and
// "statement of facts summary" route identically. Ordered: expansions never
// contain a later key, so a single pass is stable.
var abbreviations = []struct {
	short, long string
}{
	{"sof", "statement of facts"},
	{"eta", "estimated time of arrival"},
	{"etd", "estimated time of departure"},
	{"nor", "notice of readiness"},
	{"mt", "metric tons"},
	{"dwt", "deadweight tonnage"},
}

// normalizeMessage lowercases, collapses whitespace and expands maritime
// abbreviations.
func normalizeMessage(message string) string {
	s := strings.ToLower(strings.TrimSpace(message))
	s = strings.Join(strings.Fields(s), " ")
	for _, ab := range abbreviations {
		s = strings.ReplaceAll(s, ab.short, ab.long)
	}
	return s
}

// classifyQuery routes a normalized message to a responder kind.
func classifyQuery(message string) queryKind {
	for _, kk := range kindKeywords {
		for _, kw := range kk.keywords {
			if strings.Contains(message, kw) {
				return kk.kind
			}
		}
	}
	for _, w := range greetingWords {
		if strings.Contains(message, w) {
			return queryGreeting
		}
	}
	return queryGeneral
}

const (
	greetingResponse = "Hello! I'm your maritime assistant. Please upload a Statement of Facts document first, and I'll be able to analyze it and answer questions about vessel operations, timelines, delays, and more."

	noDocumentResponse = "I'd be happy to help you analyze maritime documents! Please upload a Statement of Facts document first, and I'll extract events and answer questions about vessel operations, timelines, and maritime activities."

	errorResponse = "I apologize, but I'm having trouble processing your request right now. Please try rephrasing your question."
)

// numGeneralResponses is how many rotating fallbacks exist for unrouted
// questions against a loaded document; see generalContextualResponse.
const numGeneralResponses = 3
