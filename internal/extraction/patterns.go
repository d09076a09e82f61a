package extraction

import "regexp"

// Rule is a single extraction pattern: a case-insensitive regexp, the static
// confidence assigned to its matches, and the schema naming what each capture
// group holds (vessel, action, operation, location, date, time, start_time,
// end_time, status, condition, reason).
type Rule struct {
	re         *regexp.Regexp
	confidence float64
	groups     []string
}

// typeRules binds an event type to its ordered rule list. Rules are tried in
// slice order; earlier rules win dedup ties because their candidates are
// emitted first.
type typeRules struct {
	eventType EventType
	rules     []Rule
}

const dateCls = `\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}`

// defaultPatternLibrary builds the versioned pattern catalog. The slice (not
// a map) keeps iteration order fixed: the order is semantically load-bearing
// for dedup tie-breaks.
func defaultPatternLibrary() []typeRules {
	return []typeRules{
		{EventArrival, []Rule{
			{
				re:         regexp.MustCompile(`(?im)(vessel|ship|mv|m\.?v\.?)\s+.*?(arrived?|anchored?|reached)\s+(?:at\s+)?(.*?)(?:on|at)\s+(` + dateCls + `)\s+(?:at\s+)?(\d{1,2}:\d{2})`),
				confidence: 0.9,
				groups:     []string{"vessel", "action", "location", "date", "time"},
			},
			{
				re:         regexp.MustCompile(`(?im)(arrived?|anchored?)\s+(?:at\s+)?(.*?)(?:on|at)\s+(` + dateCls + `)\s+(?:at\s+)?(\d{1,2}:\d{2})`),
				confidence: 0.85,
				groups:     []string{"action", "location", "date", "time"},
			},
		}},
		{EventBerthing, []Rule{
			{
				re:         regexp.MustCompile(`(?im)(commenced|started|began)\s+(berthing|mooring|docking)\s+(?:at\s+)?(.*?)(?:on|at)\s+(` + dateCls + `)\s+(?:at\s+)?(\d{1,2}:\d{2})`),
				confidence: 0.9,
				groups:     []string{"action", "operation", "location", "date", "time"},
			},
			{
				re:         regexp.MustCompile(`(?im)(all\s+fast|secured|moored|berthed)\s+(?:at\s+)?(.*?)(?:on|at)\s+(` + dateCls + `)\s+(?:at\s+)?(\d{1,2}:\d{2})`),
				confidence: 0.88,
				groups:     []string{"status", "location", "date", "time"},
			},
		}},
		{EventLoading, []Rule{
			{
				re:         regexp.MustCompile(`(?im)(commenced|started|began|completed|finished)\s+(loading|cargo\s+operations)\s+(?:at\s+)?(.*?)(?:on|at)\s+(` + dateCls + `)\s+(?:at\s+)?(\d{1,2}:\d{2})`),
				confidence: 0.92,
				groups:     []string{"action", "operation", "location", "date", "time"},
			},
			{
				re:         regexp.MustCompile(`(?im)(loading|cargo)\s+(commenced|started|completed|finished|suspended|resumed)\s+(?:at\s+)?(\d{1,2}:\d{2})`),
				confidence: 0.85,
				groups:     []string{"operation", "action", "time"},
			},
		}},
		{EventDischarging, []Rule{
			{
				re:         regexp.MustCompile(`(?im)(commenced|started|began|completed|finished)\s+(discharging|discharge|unloading)\s+(?:at\s+)?(.*?)(?:on|at)\s+(` + dateCls + `)\s+(?:at\s+)?(\d{1,2}:\d{2})`),
				confidence: 0.92,
				groups:     []string{"action", "operation", "location", "date", "time"},
			},
		}},
		{EventPilot, []Rule{
			{
				re:         regexp.MustCompile(`(?im)pilot\s+(embarked|disembarked|boarded|left)\s+(?:at\s+)?(\d{1,2}:\d{2})`),
				confidence: 0.95,
				groups:     []string{"action", "time"},
			},
			{
				re:         regexp.MustCompile(`(?im)(pilot\s+station|pilot\s+boarding)\s+(?:at\s+)?(\d{1,2}:\d{2})`),
				confidence: 0.88,
				groups:     []string{"location", "time"},
			},
		}},
		{EventDeparture, []Rule{
			{
				re:         regexp.MustCompile(`(?im)(sailed|departed|left|cast\s+off)\s+(?:from\s+)?(.*?)(?:on|at)\s+(` + dateCls + `)\s+(?:at\s+)?(\d{1,2}:\d{2})`),
				confidence: 0.9,
				groups:     []string{"action", "location", "date", "time"},
			},
		}},
		{EventWeather, []Rule{
			{
				re:         regexp.MustCompile(`(?im)(suspended|stopped|delayed|interrupted)\s+(?:due\s+to\s+)?(weather|rain|wind|storm|fog)\s+(?:at\s+)?(\d{1,2}:\d{2})`),
				confidence: 0.87,
				groups:     []string{"action", "reason", "time"},
			},
			{
				re:         regexp.MustCompile(`(?im)(weather\s+delay|bad\s+weather|heavy\s+rain|strong\s+wind)\s+(?:from\s+)?(\d{1,2}:\d{2})\s+(?:to\s+)?(\d{1,2}:\d{2})?`),
				confidence: 0.85,
				groups:     []string{"condition", "start_time", "end_time"},
			},
		}},
	}
}

// defaultLocationPatterns are tried in order against a matched span when the
// rule schema carries no usable location group; the first match wins.
func defaultLocationPatterns() []*regexp.Regexp {
	return []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:berth|pier|wharf|dock|terminal|anchorage|port)\s+(\w+(?:\s+\w+)*)`),
		regexp.MustCompile(`(?i)\b(singapore|rotterdam|hamburg|shanghai|dubai|mumbai|chennai|kolkata)\b`),
		regexp.MustCompile(`(?i)\b(?:at\s+)?(berth\s+\d+|pier\s+\d+|terminal\s+\d+)`),
		regexp.MustCompile(`(?i)\b([A-Z][a-z]+\s+(?:port|terminal|anchorage|berth))`),
	}
}

// typeKeywords binds an event type to the keywords the sentence classifier
// looks for. Like the pattern library, slice order is the documented
// tie-break: the first type whose keyword set intersects a sentence wins.
type typeKeywords struct {
	eventType EventType
	keywords  []string
}

func defaultClassifierKeywords() []typeKeywords {
	return []typeKeywords{
		{EventArrival, []string{"arrived", "anchored", "reached", "approach"}},
		{EventBerthing, []string{"berthing", "mooring", "docking", "all fast", "secured"}},
		{EventLoading, []string{"loading", "commenced loading", "cargo operations", "started loading"}},
		{EventDischarging, []string{"discharging", "discharge", "unloading", "commenced discharge"}},
		{EventPilot, []string{"pilot", "pilot embarked", "pilot disembarked", "pilot station"}},
		{EventDeparture, []string{"sailed", "departed", "left", "cast off", "departure"}},
		{EventWeather, []string{"weather", "suspended", "rain", "wind", "storm", "delay"}},
	}
}

// maritimeKeywords gates the sentence classifier: a sentence must contain at
// least one of these and at least one HH:MM token to become a candidate.
var maritimeKeywords = []string{
	"vessel", "ship", "cargo", "loading", "discharging", "berthing",
	"pilot", "arrived", "departed", "anchored", "moored", "sailed",
}
