package extraction

import (
	"regexp"

	"github.com/qikCode/marithon-project/pkg/logger"
)

// Service is the event extraction engine. All tables are compiled once at
// construction and read-only afterwards, so a single Service is safe for
// concurrent use. The engine is pure computation over the input string: no
// I/O, no persistence, no state across calls. Callers bound input size before
// handing text over; the engine applies no internal limits or timeouts.
type Service struct {
	patterns   []typeRules
	locations  []*regexp.Regexp
	classifier []typeKeywords
	logger     *logger.Logger
}

// NewService builds an engine with the default pattern catalog.
func NewService(log *logger.Logger) *Service {
	return &Service{
		patterns:   defaultPatternLibrary(),
		locations:  defaultLocationPatterns(),
		classifier: defaultClassifierKeywords(),
		logger:     log.Named("extraction"),
	}
}

// Extract runs the full pipeline over the document text and returns the
// consolidated event list. It never panics and never returns nil: a failure
// anywhere in the pipeline degrades to the fixed fallback set, well-formed
// input that yields nothing returns an empty list.
func (s *Service) Extract(text string) (events []Event) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Extraction pipeline failed, degrading to fallback events",
				logger.Any("panic", r))
			events = FallbackEvents()
		}
	}()

	normalized := Normalize(text)

	candidates := s.matchPatterns(normalized)
	candidates = append(candidates, s.classifySentences(normalized)...)

	events = Consolidate(candidates, normalized)

	s.logger.Debug("Extraction completed",
		logger.Int("candidates", len(candidates)),
		logger.Int("events", len(events)))

	return events
}
