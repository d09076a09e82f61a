package chat

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/qikCode/marithon-project/internal/config"
	"github.com/qikCode/marithon-project/internal/extraction"
	"github.com/qikCode/marithon-project/pkg/logger"
)

// Exchange is one question/answer pair kept in the per-document history.
type Exchange struct {
	DocumentID int64     `json:"document_id"`
	Message    string    `json:"message"`
	Response   string    `json:"response"`
	Timestamp  time.Time `json:"timestamp"`
}

// Service routes user questions to template responders over a document's
// extracted events. Responses are deterministic given the message, the
// events and the random source.
type Service struct {
	aggregator *DataAggregator
	config     config.ChatConfig
	logger     *logger.Logger

	mu      sync.Mutex
	rng     *rand.Rand
	history []Exchange
}

// NewService creates a new chat service. A nil source gets a time-based seed.
func NewService(aggregator *DataAggregator, cfg config.ChatConfig, log *logger.Logger, source rand.Source) *Service {
	if source == nil {
		source = rand.NewSource(time.Now().UnixNano())
	}
	return &Service{
		aggregator: aggregator,
		config:     cfg,
		logger:     log.Named("chat"),
		rng:        rand.New(source),
	}
}

// Respond answers a message about the given document. A zero documentID (or
// one with no events) yields the generic no-document guidance.
func (s *Service) Respond(documentID int64, message string) (string, error) {
	normalized := normalizeMessage(message)
	kind := classifyQuery(normalized)

	s.logger.Debug("Routing chat message",
		logger.Int64("document_id", documentID),
		logger.String("kind", string(kind)))

	var ctx *DocumentContext
	if documentID > 0 {
		var err error
		ctx, err = s.aggregator.GetDocumentContext(documentID)
		if err != nil {
			s.logger.Error("Failed to build document context", logger.Error(err))
			return errorResponse, nil
		}
	}

	var response string
	if ctx != nil && len(ctx.Events) > 0 {
		response = s.contextualResponse(normalized, kind, ctx)
	} else {
		response = genericResponse(kind)
	}

	s.remember(Exchange{
		DocumentID: documentID,
		Message:    message,
		Response:   response,
		Timestamp:  time.Now().UTC(),
	})

	return response, nil
}

// History returns the retained exchanges, oldest first.
func (s *Service) History() []Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Exchange, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Service) remember(ex Exchange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, ex)
	if max := s.config.MaxHistory; max > 0 && len(s.history) > max {
		s.history = s.history[len(s.history)-max:]
	}
}

func genericResponse(kind queryKind) string {
	if kind == queryGreeting {
		return greetingResponse
	}
	return noDocumentResponse
}

func (s *Service) contextualResponse(message string, kind queryKind, ctx *DocumentContext) string {
	switch kind {
	case queryLoadingTime:
		return loadingTimeResponse(ctx)
	case queryArrival:
		return arrivalResponse(ctx)
	case queryWeather:
		return weatherDelayResponse(ctx)
	case queryPilot:
		return pilotOperationsResponse(ctx)
	case querySummary:
		return summaryResponse(ctx)
	case queryDemurrage:
		return demurrageResponse(ctx)
	case queryGreeting:
		return greetingResponse
	default:
		return s.generalContextualResponse(message, ctx)
	}
}

func loadingTimeResponse(ctx *DocumentContext) string {
	loading := eventsOfType(ctx.Events, extraction.EventLoading)
	if len(loading) == 0 {
		return "No loading operations were found in this document."
	}

	var details []string
	for _, ev := range loading {
		if ev.Duration != "" {
			details = append(details, fmt.Sprintf("- %s: %s", ev.Name, ev.Duration))
		} else {
			details = append(details, fmt.Sprintf("- %s: duration not specified", ev.Name))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Based on the extracted events, the total loading time was approximately %.1f hours.\n\nThis includes:\n%s",
		ctx.Summary.LoadingHours, strings.Join(details, "\n"))

	if weather := eventsOfType(ctx.Events, extraction.EventWeather); len(weather) > 0 {
		duration := weather[0].Duration
		if duration == "" {
			duration = "a reported"
		}
		fmt.Fprintf(&b, "\n\nA weather delay caused a %s interruption.", duration)
	}

	return b.String()
}

func arrivalResponse(ctx *DocumentContext) string {
	arrivals := eventsOfType(ctx.Events, extraction.EventArrival)
	if len(arrivals) == 0 {
		return "No arrival information was found in this document."
	}

	arrival := arrivals[0]
	location := arrival.Location
	if location == "" {
		location = "location not specified"
	}
	date := "date not specified"
	clock := arrival.StartTime
	if strings.Contains(arrival.StartTime, " ") {
		date = dateOf(arrival.StartTime)
		clock = timeOf(arrival.StartTime)
	}
	if clock == "" {
		clock = "time not specified"
	}
	duration := arrival.Duration
	if duration == "" {
		duration = "an unspecified period"
	}

	weatherInfo := "No weather interruptions were reported around arrival."
	if weather := eventsOfType(ctx.Events, extraction.EventWeather); len(weather) > 0 {
		remarks := weather[0].Remarks
		if remarks == "" {
			remarks = "weather delays reported"
		}
		weatherInfo = "Weather conditions: " + remarks
	}

	return fmt.Sprintf("The vessel arrived at %s on %s at %s.\n\nThe arrival process took approximately %s from initial approach to being secure.\n\n%s",
		location, date, clock, duration, weatherInfo)
}

func weatherDelayResponse(ctx *DocumentContext) string {
	weather := eventsOfType(ctx.Events, extraction.EventWeather)
	if len(weather) == 0 {
		return "No weather delays were detected in this document."
	}

	plural := ""
	if len(weather) > 1 {
		plural = "s"
	}

	var details []string
	for _, ev := range weather {
		d := "- " + ev.Name
		if ev.StartTime != "" {
			d += "\n  Time: " + ev.StartTime
			if ev.EndTime != "" {
				d += " to " + ev.EndTime
			}
		}
		if ev.Duration != "" {
			d += "\n  Duration: " + ev.Duration
		}
		if ev.Remarks != "" {
			d += "\n  Reason: " + ev.Remarks
		}
		details = append(details, d)
	}

	operation := "loading operations"
	for _, ev := range ctx.Events {
		if ev.Type == extraction.EventLoading || ev.Type == extraction.EventDischarging {
			operation = string(ev.Type) + " operations"
			break
		}
	}

	return fmt.Sprintf("Yes, there were %d weather delay%s during the operation:\n\n%s\n\nThis delay occurred during %s and caused a temporary suspension of cargo handling.",
		len(weather), plural, strings.Join(details, "\n"), operation)
}

func pilotOperationsResponse(ctx *DocumentContext) string {
	pilots := eventsOfType(ctx.Events, extraction.EventPilot)
	if len(pilots) == 0 {
		return "No pilot operations were found in this document."
	}

	var details []string
	for i, ev := range pilots {
		d := fmt.Sprintf("%d. %s", i+1, ev.Name)
		if ev.StartTime != "" {
			d += "\n   Time: " + ev.StartTime
			if ev.EndTime != "" {
				d += " to " + ev.EndTime
			}
		}
		if ev.Duration != "" {
			d += "\n   Duration: " + ev.Duration
		}
		if ev.Location != "" {
			d += "\n   Location: " + ev.Location
		}
		details = append(details, d)
	}

	return fmt.Sprintf("Found %d pilot operation(s):\n\n%s", len(pilots), strings.Join(details, "\n"))
}

func summaryResponse(ctx *DocumentContext) string {
	var operations []string
	if arrivals := eventsOfType(ctx.Events, extraction.EventArrival); len(arrivals) > 0 {
		operations = append(operations, "- Arrival: "+orUnspecified(arrivals[0].StartTime))
	}
	if berthings := eventsOfType(ctx.Events, extraction.EventBerthing); len(berthings) > 0 {
		operations = append(operations, "- Berthing: "+orUnspecified(berthings[0].StartTime))
	}
	if ctx.Summary.ByType[extraction.EventLoading] > 0 {
		operations = append(operations, fmt.Sprintf("- Loading: %.1f+ hours", ctx.Summary.LoadingHours))
	}
	if departures := eventsOfType(ctx.Events, extraction.EventDeparture); len(departures) > 0 {
		operations = append(operations, "- Departure: "+orUnspecified(departures[0].StartTime))
	}
	if len(operations) == 0 {
		operations = append(operations, "- No headline operations identified")
	}

	var issues []string
	if n := ctx.Summary.ByType[extraction.EventWeather]; n > 0 {
		issues = append(issues, fmt.Sprintf("- %d weather delay(s)", n))
	}
	issues = append(issues,
		"- All operations completed successfully",
		fmt.Sprintf("- Average confidence %.0f%%", ctx.Summary.AvgConfidence*100))

	return fmt.Sprintf("Here's a summary of your Statement of Facts:\n\nTotal events: %d\n\nVessel operations:\n%s\n\nKey observations:\n%s",
		ctx.Summary.TotalEvents, strings.Join(operations, "\n"), strings.Join(issues, "\n"))
}

func demurrageResponse(ctx *DocumentContext) string {
	hours := ctx.Summary.WeatherDelayHours
	weatherDelays := fmt.Sprintf("%dh %02dm", int(hours), int(hours*60)%60)

	return fmt.Sprintf("Based on the extracted events, here's the laytime picture:\n\nDocumented events: %d\nOperating window: %s to %s\nWeather delays: %s\n\nNote: demurrage depends on your specific charter terms. Please consult your commercial team for final calculations.",
		ctx.Summary.TotalEvents,
		orUnspecified(ctx.Summary.FirstStart),
		orUnspecified(ctx.Summary.LastStart),
		weatherDelays)
}

func (s *Service) generalContextualResponse(message string, ctx *DocumentContext) string {
	timeRange := "over the documented period"
	if ctx.Summary.FirstStart != "" {
		timeRange = fmt.Sprintf("from %s to %s", dateOf(ctx.Summary.FirstStart), dateOf(ctx.Summary.LastStart))
	}
	total := ctx.Summary.TotalEvents

	s.mu.Lock()
	pick := s.rng.Intn(numGeneralResponses)
	s.mu.Unlock()

	switch pick {
	case 0:
		return fmt.Sprintf("I'm analyzing your question about %q.\n\nBased on the extracted events, I can see operations spanning %s with %d total events.\n\nCould you be more specific about what you'd like to know?",
			message, timeRange, total)
	case 1:
		return fmt.Sprintf("That's an interesting question about your Statement of Facts.\n\nI have data on %d events spanning %s, including arrivals, cargo operations, and departures.\n\nCould you rephrase your question, or try one of the suggested queries?",
			total, timeRange)
	default:
		return fmt.Sprintf("I'd be happy to help with that!\n\nYour document contains detailed information about vessel operations spanning %s, %d events in all.\n\nTry asking about specific events, timelines, or operational aspects.",
			timeRange, total)
	}
}

func orUnspecified(s string) string {
	if s == "" {
		return "time not specified"
	}
	return s
}
