package extraction

// FallbackEvents returns the fixed sample set the engine degrades to when the
// pipeline fails outright: a known-good port call (arrival at anchorage,
// pilot embarkation, commencement of berthing), visibly tagged so callers can
// tell it apart from real extractions.
func FallbackEvents() []Event {
	return []Event{
		{
			Type:       EventArrival,
			Name:       "Vessel Arrived at Anchorage",
			StartTime:  "2024-03-15 06:45",
			EndTime:    "2024-03-15 07:10",
			Duration:   "0:25:00",
			Location:   "Singapore Anchorage",
			Remarks:    "Weather conditions fair, sea moderate",
			Confidence: 0.95,
			Method:     MethodFallback,
		},
		{
			Type:       EventPilot,
			Name:       "Pilot Embarked",
			StartTime:  "2024-03-15 08:30",
			EndTime:    "2024-03-15 08:45",
			Duration:   "0:15:00",
			Location:   "Pilot Station",
			Confidence: 0.92,
			Method:     MethodFallback,
		},
		{
			Type:       EventBerthing,
			Name:       "Commenced Berthing",
			StartTime:  "2024-03-15 09:15",
			EndTime:    "2024-03-15 10:30",
			Duration:   "1:15:00",
			Location:   "Berth 7, PSA Terminal",
			Remarks:    "All fast - both ends",
			Confidence: 0.88,
			Method:     MethodFallback,
		},
	}
}
