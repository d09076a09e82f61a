package extraction

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	timeTokenRE = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	dateTokenRE = regexp.MustCompile(`\b(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})\b`)
)

// resolveTemporal fills StartTime, EndTime and Duration on ev from the
// matched span. It never fails: components that do not parse are simply
// omitted. The first HH:MM token becomes the start, the second (if any) the
// end; the first date token, when present, is prefixed onto both.
func resolveTemporal(ev *Event, span string) {
	times := timeTokenRE.FindAllStringSubmatch(span, -1)
	if len(times) > 0 {
		ev.StartTime = padHour(times[0][1]) + ":" + times[0][2]
		if len(times) > 1 {
			ev.EndTime = padHour(times[1][1]) + ":" + times[1][2]
		}
	}

	if date := dateTokenRE.FindStringSubmatch(span); date != nil {
		dateStr := fmt.Sprintf("%s-%s-%s", expandYear(date[3]), pad2(date[2]), pad2(date[1]))
		if ev.StartTime != "" {
			ev.StartTime = dateStr + " " + ev.StartTime
		}
		if ev.EndTime != "" {
			ev.EndTime = dateStr + " " + ev.EndTime
		}
	}

	if ev.StartTime != "" && ev.EndTime != "" {
		ev.Duration = computeDuration(ev.StartTime, ev.EndTime)
	}
}

// expandYear widens two-digit years with a pivot at 50: 24 -> 2024, 75 -> 1975.
func expandYear(year string) string {
	if len(year) == 4 {
		return year
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return year
	}
	if y < 50 {
		return strconv.Itoa(2000 + y)
	}
	return strconv.Itoa(1900 + y)
}

func padHour(h string) string {
	if len(h) == 1 {
		return "0" + h
	}
	return h
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// computeDuration returns the "H:MM:00" interval between two timestamps,
// comparing only the time-of-day components. An end numerically earlier than
// its start is assumed to cross midnight and gains a day (the rollover rule),
// so the result is never negative. Unparseable input yields "".
func computeDuration(startTime, endTime string) string {
	startMin, ok := minutesOfDay(startTime)
	if !ok {
		return ""
	}
	endMin, ok := minutesOfDay(endTime)
	if !ok {
		return ""
	}

	if endMin < startMin {
		endMin += 24 * 60
	}

	total := endMin - startMin
	return fmt.Sprintf("%d:%02d:00", total/60, total%60)
}

// minutesOfDay parses the trailing HH:MM token of a timestamp that may or
// may not carry a date prefix.
func minutesOfDay(ts string) (int, bool) {
	fields := strings.Fields(ts)
	if len(fields) == 0 {
		return 0, false
	}
	clock := fields[len(fields)-1]

	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return hour*60 + minute, true
}
