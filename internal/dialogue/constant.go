package dialogue

// Prompt texts.
const (
	PromptGreeting     = "Hi! I'm here to help you log your time. Let me ask you a few questions to update your timesheet. What task did you work on?"
	PromptDuration     = "Great! How long did you spend on this task? You can tell me in hours/minutes or give me start and end times."
	PromptDurationMore = "Perfect! How long did you spend on this task? You can tell me in hours/minutes or give me start and end times."
	PromptWorkType     = "Thanks! Was this billable work, non-billable work, or personal time?"
	PromptMatter       = "Which matter/client is this for?"
	PromptCostCentre   = "What cost centre should this be assigned to?"
	PromptBusinessArea = "Which business area does this fall under?"
	PromptSubcategory  = "What subcategory best describes this work?"
	PromptEnjoyment    = "How do you feel about this task?"
	PromptEnergy       = "Did this task give you energy, drain energy, or feel neutral?"
	PromptGoal         = "What would you like to do with this type of task in the future?"
	PromptConfirmation = "Here's a summary of your time entry:\n\n%s\n\nDoes this look correct? Should I save this to your timesheet?"
	PromptSaving       = "Saving your time entry now. I'll let you know as soon as it has been sent."
	PromptStartOver    = "No problem! Let's start over. What task did you work on?"
)

var (
	WorkTypeOptions     = []string{"Billable", "Non-billable", "Personal"}
	EnjoymentOptions    = []string{"Love it/Great at it", "Like it/Good at it", "Hate it/Good at it", "Hate it/Bad at it"}
	EnergyOptions       = []string{"Gave me energy", "Drained energy", "Neutral"}
	GoalOptions         = []string{"Delegate to AI", "Delegate to person", "Transfer to someone", "Keep doing it"}
	ConfirmationOptions = []string{"Yes, save it", "No, let me start over"}
)
