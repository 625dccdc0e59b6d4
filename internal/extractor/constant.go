package extractor

// Defaults used when no rule matches a field.
const (
	DefaultTaskDescription = "General work"
	DefaultDurationMinutes = 30
	DefaultWorkType        = "billable"
	DefaultMatter          = "General"
	DefaultCostCentre      = "Development"
	DefaultBusinessArea    = "Software Development"
	DefaultSubcategory     = "General Work"
	DefaultEnjoyment       = "neutral"
	DefaultEnergy          = "neutral"
	DefaultGoal            = "Productivity"
)

// Enjoyment and energy vocabularies.
const (
	EnjoymentHigh    = "high"
	EnjoymentNeutral = "neutral"
	EnjoymentLow     = "low"

	EnergyEnergizing = "energizing"
	EnergyNeutral    = "neutral"
	EnergyDraining   = "draining"
)

// CompletionWindow is how many trailing turns completion detection scans.
const CompletionWindow = 3

// CompletionTriggers are the phrases that mark a conversation as finished.
var CompletionTriggers = []string{
	"finished",
	"completed",
	"log the time",
	"save this entry",
	"i've logged this as",
	"that's everything",
}

// SummaryHeader opens the structured block the assistant is asked to end with.
const SummaryHeader = "I've logged this as:"
