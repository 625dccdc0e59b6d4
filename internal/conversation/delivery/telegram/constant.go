package telegram

const (
	WelcomeText = "👋 Welcome to the timesheet assistant!\n\nI'll ask a few quick questions and log your time entry.\n/chat lets you describe your work freely instead."
	HelpText    = "Commands:\n/start - log an entry step by step\n/chat - describe your work in your own words\n/restart - discard the current entry\n/retry - resend your last saved entry\n/help - show this message\n\nYou can also send a voice note."

	ErrorText       = "Something went wrong while processing your message. Please try again."
	VoiceFailedText = "Sorry, I couldn't understand that voice note. Could you type it instead?"
	NoVoiceText     = "Voice notes aren't available right now. Please type your answer."
	NothingToRetry  = "There's no saved entry to resend yet."
	ForbiddenText   = "This conversation belongs to someone else. Send /start to begin your own."
	WrongModeText   = "This conversation isn't in free-chat mode. Send /chat to start one."
)

// Commands understood by the bot.
const (
	cmdStart   = "/start"
	cmdChat    = "/chat"
	cmdRestart = "/restart"
	cmdRetry   = "/retry"
	cmdHelp    = "/help"
)
