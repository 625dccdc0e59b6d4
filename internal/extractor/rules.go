package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"timesheet-assistant/internal/model"
	"timesheet-assistant/pkg/timeexpr"
)

var unbracket = strings.NewReplacer("[", "", "]", "")

var (
	leadingNumber    = regexp.MustCompile(`^\d+`)
	trailingDuration = regexp.MustCompile(`(?i)\s+(?:for|about|around)\s+(?:an?|one|half an|\d+(?:\.\d+)?)\s*(?:hours?|hrs?|h|minutes?|mins?|m)(?:\b|\d).*$`)
)

// source restricts which transcript turns a rule reads.
type source int

const (
	// anyTurn rules read the structured summary lines, which usually come
	// from the assistant.
	anyTurn source = iota
	// userTurns rules read free text the user wrote. Assistant questions
	// such as "billable, non-billable or personal?" would match them.
	userTurns
)

// textRule captures a field value. When value is set it maps the match to a
// fixed vocabulary word instead of the captured group.
type textRule struct {
	from    source
	pattern *regexp.Regexp
	value   string
}

// durationRule captures a duration and converts it to minutes.
type durationRule struct {
	from    source
	pattern *regexp.Regexp
	minutes func(m []string) (int, bool)
}

// summaryLine matches "- Label: value" lines, tolerating bullets and the
// square brackets the summary template uses.
func summaryLine(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^[ \t]*(?:[-•*][ \t]*)?` + label + `[ \t]*:[ \t]*(.+?)[ \t]*$`)
}

var taskRules = []textRule{
	{from: anyTurn, pattern: summaryLine(`task`)},
	{from: userTurns, pattern: regexp.MustCompile(`(?i)\bworked on\s+([^.,;!?\n]+)`)},
	{from: userTurns, pattern: regexp.MustCompile(`(?i)\b(?:i was|i've been|i have been|i am|i'm)\s+(\w+ing\b[^.,;!?\n]*)`)},
	{from: userTurns, pattern: regexp.MustCompile(`(?i)\btask (?:was|is)\s+([^.,;!?\n]+)`)},
}

var durationRules = []durationRule{
	{from: anyTurn, pattern: summaryLine(`duration`), minutes: summaryMinutes},
	{from: userTurns, pattern: regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:hours?|hrs?|h)\s*(?:and\s*)?(\d+)\s*(?:minutes?|mins?|m)\b`), minutes: hoursAndMinutes},
	{from: userTurns, pattern: regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:hours?|hrs?|h)\b`), minutes: hoursOnly},
	{from: userTurns, pattern: regexp.MustCompile(`(?i)\b(an|one|half an) hour\b`), minutes: wordHours},
	{from: userTurns, pattern: regexp.MustCompile(`(?i)(\d+)\s*(?:minutes?|mins?|m)\b`), minutes: minutesOnly},
}

var workTypeRules = []textRule{
	{from: anyTurn, pattern: regexp.MustCompile(`(?im)^\s*(?:[-•*]\s*)?work type\s*:\s*\[?\s*(non[-_ ]?billable)`), value: string(model.WorkTypeNonBillable)},
	{from: anyTurn, pattern: regexp.MustCompile(`(?im)^\s*(?:[-•*]\s*)?work type\s*:\s*\[?\s*(personal)`), value: string(model.WorkTypePersonal)},
	{from: anyTurn, pattern: regexp.MustCompile(`(?im)^\s*(?:[-•*]\s*)?work type\s*:\s*\[?\s*(billable)`), value: string(model.WorkTypeBillable)},
	{from: userTurns, pattern: regexp.MustCompile(`(?i)\b(non[-_ ]?billable|not billable|internal work)\b`), value: string(model.WorkTypeNonBillable)},
	{from: userTurns, pattern: regexp.MustCompile(`(?i)\b(billable|bill (?:it|this) to)\b`), value: string(model.WorkTypeBillable)},
	{from: userTurns, pattern: regexp.MustCompile(`(?i)\b(personal|private|my own time)\b`), value: string(model.WorkTypePersonal)},
}

var matterRules = []textRule{
	{from: anyTurn, pattern: summaryLine(`matter(?:/client)?`)},
	{from: userTurns, pattern: regexp.MustCompile(`(?i)\b(?:the )?(?:client|matter) (?:is|was|name is)\s+([^.,;!?\n]+)`)},
	{from: userTurns, pattern: regexp.MustCompile(`(?i)\bfor (?:the )?client\s+([^.,;!?\n]+)`)},
}

var costCentreRules = []textRule{
	{from: anyTurn, pattern: summaryLine(`cost cent(?:re|er)`)},
	{from: userTurns, pattern: regexp.MustCompile(`(?i)\bcost cent(?:re|er)\s*(?:is|was|:)?\s+([^.,;!?\n]+)`)},
}

var businessAreaRules = []textRule{
	{from: anyTurn, pattern: summaryLine(`business area`)},
	{from: userTurns, pattern: regexp.MustCompile(`(?i)\bbusiness area\s*(?:is|was|:)?\s+([^.,;!?\n]+)`)},
}

var subcategoryRules = []textRule{
	{from: anyTurn, pattern: summaryLine(`sub-?category`)},
	{from: userTurns, pattern: regexp.MustCompile(`(?i)\bsub-?category\s*(?:is|was|:)?\s+([^.,;!?\n]+)`)},
}

var enjoymentRules = []textRule{
	{from: anyTurn, pattern: summaryLine(`enjoyment(?: level)?`)},
	{from: userTurns, pattern: regexp.MustCompile(`(?i)\b(hated|hate|disliked|boring|tedious)\b`), value: EnjoymentLow},
	{from: userTurns, pattern: regexp.MustCompile(`(?i)\b(loved|love|enjoyed|enjoy|liked|fun)\b`), value: EnjoymentHigh},
}

var energyRules = []textRule{
	{from: anyTurn, pattern: summaryLine(`energy(?: impact)?`)},
	{from: userTurns, pattern: regexp.MustCompile(`(?i)\b(drain\w*|exhaust\w*|tiring|tired)\b`), value: EnergyDraining},
	{from: userTurns, pattern: regexp.MustCompile(`(?i)\b(energi[sz]\w*|gave me energy|motivat\w*)\b`), value: EnergyEnergizing},
}

var goalRules = []textRule{
	{from: anyTurn, pattern: summaryLine(`(?:future )?goal`)},
	{from: userTurns, pattern: regexp.MustCompile(`(?i)\b(delegate to ai|delegate to (?:a )?person|transfer to someone|keep doing it)\b`)},
	{from: userTurns, pattern: regexp.MustCompile(`(?i)\b(?:goal|aim|objective) (?:is|was) (?:to )?([^.,;!?\n]+)`)},
}

// summaryMinutes reads "2h 30m", "1.5 hours" or a bare minute count.
func summaryMinutes(m []string) (int, bool) {
	v := unbracket.Replace(m[1])
	if mins, ok := timeexpr.Match(v); ok {
		return mins, true
	}
	bare := leadingNumber.FindString(strings.TrimSpace(v))
	if bare == "" {
		return 0, false
	}
	mins, err := strconv.Atoi(bare)
	return mins, err == nil
}

func hoursAndMinutes(m []string) (int, bool) {
	h, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	mins, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}
	return toMinutes(h) + mins, true
}

func hoursOnly(m []string) (int, bool) {
	h, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return toMinutes(h), true
}

func wordHours(m []string) (int, bool) {
	if strings.EqualFold(m[1], "half an") {
		return 30, true
	}
	return 60, true
}

func minutesOnly(m []string) (int, bool) {
	mins, err := strconv.Atoi(m[1])
	return mins, err == nil
}

func toMinutes(hours float64) int {
	return int(hours*60 + 0.5)
}
