package conversation

import (
	"time"

	"timesheet-assistant/internal/dialogue"
	"timesheet-assistant/internal/extractor"
	"timesheet-assistant/internal/model"
)

// Mode selects how a session collects the entry.
type Mode string

const (
	// ModeGuided walks the fixed question sequence.
	ModeGuided Mode = "guided"
	// ModeOpen chats freely with the text generator and extracts the entry
	// once the conversation signals completion.
	ModeOpen Mode = "open"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeGuided || m == ModeOpen
}

// Session is the persisted snapshot of one conversation. It is always
// written whole.
type Session struct {
	ID         string           `json:"id"`
	Mode       Mode             `json:"mode"`
	Owner      model.Scope      `json:"owner"`
	State      dialogue.State   `json:"state"`
	Transcript []model.Turn     `json:"transcript"`
	Concluded  bool             `json:"concluded"`
	LastEntry  *model.TimeEntry `json:"last_entry,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// StartInput opens a session. An empty SessionID gets a generated one.
type StartInput struct {
	SessionID string `json:"session_id"`
	Mode      Mode   `json:"mode"`
}

// MessageInput is one user utterance for a session.
type MessageInput struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// Reply is what a transport shows the user after a turn.
type Reply struct {
	SessionID string           `json:"session_id"`
	Mode      Mode             `json:"mode"`
	Step      dialogue.Step    `json:"step"`
	Notice    string           `json:"notice,omitempty"`
	Prompt    dialogue.Prompt  `json:"prompt"`
	Submitted *model.TimeEntry `json:"submitted,omitempty"`
	Missing   []string         `json:"missing,omitempty"`
}

// ExtractInput is a transcript to run through the extractor.
type ExtractInput struct {
	Turns []model.Turn `json:"turns"`
}

// ExtractOutput is the extraction result for a transcript.
type ExtractOutput struct {
	Entry    model.TimeEntry      `json:"entry"`
	Raw      extractor.Extraction `json:"-"`
	Defaults []string             `json:"defaulted_fields"`
	Complete bool                 `json:"complete"`
	Missing  []string             `json:"missing,omitempty"`
}
