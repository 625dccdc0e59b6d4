package model

// Scope identifies who is talking to the assistant and through which channel.
type Scope struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	ChatID   int64  `json:"chat_id,omitempty"` // Telegram chat, zero for other transports
}

// Actor is the person a time entry is reported for.
type Actor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Actor returns the delivery actor for this scope.
func (sc Scope) Actor() Actor {
	return Actor{
		ID:    sc.UserID,
		Name:  sc.Username,
		Email: sc.Email,
	}
}
