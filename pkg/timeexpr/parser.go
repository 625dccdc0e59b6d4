// Package timeexpr converts loose duration expressions such as "2h30m",
// "1.5 hours" or "45 min" into whole minutes.
package timeexpr

import (
	"math"
	"regexp"
	"strconv"
)

// DefaultMinutes is returned when the text holds no duration expression.
const DefaultMinutes = 30

var (
	hourPattern   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*h`)
	minutePattern = regexp.MustCompile(`(?i)(\d+)\s*m`)
	barePattern   = regexp.MustCompile(`(?i)^\s*(?:\d+(?:\.\d+)?\s*h\w*)?\s*(?:and\s*)?(?:\d+\s*m\w*)?\s*$`)
)

// Parse returns the number of minutes described by text, or DefaultMinutes
// when neither an hour nor a minute component is present.
func Parse(text string) int {
	minutes, ok := Match(text)
	if !ok {
		return DefaultMinutes
	}
	return minutes
}

// Match reports the minutes described by text and whether any hour or minute
// component was found. The hour and minute components are matched
// independently, so "30m 2h" and "2h30m" are equivalent.
func Match(text string) (int, bool) {
	total := 0
	matched := false

	if m := hourPattern.FindStringSubmatch(text); m != nil {
		hours, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			total += int(math.Round(hours * 60))
			matched = true
		}
	}

	if m := minutePattern.FindStringSubmatch(text); m != nil {
		mins, err := strconv.Atoi(m[1])
		if err == nil {
			total += mins
			matched = true
		}
	}

	return total, matched
}

// IsBare reports whether text is nothing but a duration, e.g. "2h",
// "1.5 hours" or "2 hours and 15 minutes". "Reviewed 4 motions" is not.
func IsBare(text string) bool {
	if !barePattern.MatchString(text) {
		return false
	}
	_, ok := Match(text)
	return ok
}

// Format renders minutes the way summaries show durations, e.g. "2h 30m".
func Format(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return strconv.Itoa(minutes/60) + "h " + strconv.Itoa(minutes%60) + "m"
}
