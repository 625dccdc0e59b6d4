package conversation

import "timesheet-assistant/internal/submission"

// Assistant texts that are not part of the guided question sequence.
const (
	OpenGreeting    = "Hi! Tell me about the work you'd like to log. When we're done I'll summarize it and save it to your timesheet."
	GeneratorFailed = "Sorry, I couldn't come up with a reply just now. Please try again."
	RetryNotice     = "Retrying delivery of your last time entry."
	SavedNotice     = "Perfect! I've successfully sent your time entry for processing. Your timesheet will be updated shortly. Is there anything else you'd like to log?"
	FailedNotice    = "I'm sorry, there was an issue saving your time entry. Please try again or contact your administrator."
	SkippedNotice   = "Great! I've saved your time entry. Your timesheet will be updated shortly. Is there anything else you'd like to log?"
	MissingNotice   = "I still need a few details before I can save this entry."
)

// NoticeFor picks the user-facing text for a finished delivery.
func NoticeFor(status submission.Status) string {
	switch status {
	case submission.StatusDelivered:
		return SavedNotice
	case submission.StatusSkipped:
		return SkippedNotice
	default:
		return FailedNotice
	}
}
