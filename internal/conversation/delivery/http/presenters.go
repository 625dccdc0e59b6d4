package http

import (
	"errors"
	"strings"
	"time"

	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/dialogue"
	"timesheet-assistant/internal/model"
	"timesheet-assistant/internal/notification"
	"timesheet-assistant/internal/submission"
	"timesheet-assistant/pkg/response"
)

// --- Request DTOs ---

type startReq struct {
	SessionID string `json:"session_id"`
	Mode      string `json:"mode"`
}

func (r startReq) validate() error {
	if r.Mode != "" && !conversation.Mode(r.Mode).Valid() {
		return conversation.ErrInvalidMode
	}
	return nil
}

func (r startReq) toInput() conversation.StartInput {
	return conversation.StartInput{
		SessionID: strings.TrimSpace(r.SessionID),
		Mode:      conversation.Mode(r.Mode),
	}
}

type messageReq struct {
	ID   string `json:"-"`
	Text string `json:"text"`
}

func (r messageReq) validate() error {
	if r.ID == "" {
		return errIDRequired
	}
	return nil
}

func (r messageReq) toInput() conversation.MessageInput {
	return conversation.MessageInput{SessionID: r.ID, Text: r.Text}
}

type turnReq struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type extractReq struct {
	Turns []turnReq `json:"turns"`
}

func (r extractReq) validate() error {
	if len(r.Turns) == 0 {
		return conversation.ErrEmptyTranscript
	}
	for _, t := range r.Turns {
		switch model.Role(t.Role) {
		case model.RoleUser, model.RoleAssistant, model.RoleSystem:
		default:
			return errInvalidRole
		}
	}
	return nil
}

func (r extractReq) toInput() conversation.ExtractInput {
	turns := make([]model.Turn, 0, len(r.Turns))
	for _, t := range r.Turns {
		turns = append(turns, model.Turn{Role: model.Role(t.Role), Content: t.Content})
	}
	return conversation.ExtractInput{Turns: turns}
}

var (
	errIDRequired  = errors.New("session id is required")
	errInvalidRole = errors.New("turn role must be user, assistant or system")
)

// --- Response DTOs ---

type promptResp struct {
	Text    string              `json:"text"`
	Kind    dialogue.PromptKind `json:"kind"`
	Options []string            `json:"options,omitempty"`
}

type replyResp struct {
	SessionID string           `json:"session_id"`
	Mode      string           `json:"mode"`
	Step      string           `json:"step"`
	Notice    string           `json:"notice,omitempty"`
	Prompt    promptResp       `json:"prompt"`
	Submitted *model.TimeEntry `json:"submitted,omitempty"`
	Missing   []string         `json:"missing,omitempty"`
}

func (h *handler) newReplyResp(r conversation.Reply) replyResp {
	return replyResp{
		SessionID: r.SessionID,
		Mode:      string(r.Mode),
		Step:      string(r.Step),
		Notice:    r.Notice,
		Prompt: promptResp{
			Text:    r.Prompt.Text,
			Kind:    r.Prompt.Kind,
			Options: r.Prompt.Options,
		},
		Submitted: r.Submitted,
		Missing:   r.Missing,
	}
}

type turnResp struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type sessionResp struct {
	ID         string            `json:"id"`
	Mode       string            `json:"mode"`
	Step       string            `json:"step"`
	Draft      model.TimeEntry   `json:"draft"`
	Transcript []turnResp        `json:"transcript"`
	LastEntry  *model.TimeEntry  `json:"last_entry,omitempty"`
	CreatedAt  response.DateTime `json:"created_at"`
	UpdatedAt  response.DateTime `json:"updated_at"`
}

func (h *handler) newSessionResp(s conversation.Session) sessionResp {
	turns := make([]turnResp, 0, len(s.Transcript))
	for _, t := range s.Transcript {
		turns = append(turns, turnResp{Role: string(t.Role), Content: t.Content})
	}
	return sessionResp{
		ID:         s.ID,
		Mode:       string(s.Mode),
		Step:       string(s.State.Step),
		Draft:      s.State.Entry,
		Transcript: turns,
		LastEntry:  s.LastEntry,
		CreatedAt:  response.DateTime(s.CreatedAt),
		UpdatedAt:  response.DateTime(s.UpdatedAt),
	}
}

type extractResp struct {
	Entry           model.TimeEntry `json:"entry"`
	DefaultedFields []string        `json:"defaulted_fields"`
	Complete        bool            `json:"complete"`
	Missing         []string        `json:"missing,omitempty"`
}

func (h *handler) newExtractResp(o conversation.ExtractOutput) extractResp {
	defaults := o.Defaults
	if defaults == nil {
		defaults = []string{}
	}
	return extractResp{
		Entry:           o.Entry,
		DefaultedFields: defaults,
		Complete:        o.Complete,
		Missing:         o.Missing,
	}
}

type notificationResp struct {
	DeliveryID string            `json:"delivery_id"`
	Status     string            `json:"status"`
	Attempts   int               `json:"attempts"`
	Message    string            `json:"message"`
	Error      string            `json:"error,omitempty"`
	Entry      model.TimeEntry   `json:"time_entry"`
	CreatedAt  response.DateTime `json:"created_at"`
}

func (h *handler) newNotificationsResp(list []notification.Notification) []notificationResp {
	out := make([]notificationResp, 0, len(list))
	for _, n := range list {
		out = append(out, notificationResp{
			DeliveryID: n.DeliveryID,
			Status:     string(n.Status),
			Attempts:   n.Attempts,
			Message:    n.Message,
			Error:      n.Error,
			Entry:      n.Entry,
			CreatedAt:  response.DateTime(n.CreatedAt),
		})
	}
	return out
}

type pingResp struct {
	DeliveryID string            `json:"delivery_id"`
	Status     string            `json:"status"`
	Error      string            `json:"error,omitempty"`
	CheckedAt  response.DateTime `json:"checked_at"`
}

func (h *handler) newPingResp(o submission.Outcome, at time.Time) pingResp {
	r := pingResp{
		DeliveryID: o.DeliveryID,
		Status:     string(o.Status),
		CheckedAt:  response.DateTime(at),
	}
	if o.Err != nil {
		r.Error = o.Err.Error()
	}
	return r
}
