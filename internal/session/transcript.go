package session

import (
	"time"

	"github.com/google/uuid"

	"advisordesk/internal/logging"
	"advisordesk/internal/perception"
)

// Role identifies who authored a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one recorded conversation turn. User turns carry the command the
// perception layer derived from them; assistant turns carry raw reply text
// (segments are re-derivable from it).
type Turn struct {
	ID      string    `json:"id"`
	Role    Role      `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`

	Command *perception.Command `json:"command,omitempty"`
}

// Transcript is an in-memory, append-only record of one conversation.
// Nothing is persisted; the transcript dies with the process.
type Transcript struct {
	turns []Turn
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// AddUser appends a user turn with its understood command.
func (tr *Transcript) AddUser(content string, cmd perception.Command) Turn {
	turn := Turn{
		ID:      uuid.NewString(),
		Role:    RoleUser,
		Content: content,
		At:      time.Now(),
		Command: &cmd,
	}
	tr.turns = append(tr.turns, turn)
	logging.Session("user turn %s intent=%s", turn.ID, cmd.Intent.Intent)
	return turn
}

// AddAssistant appends an assistant turn.
func (tr *Transcript) AddAssistant(content string) Turn {
	turn := Turn{
		ID:      uuid.NewString(),
		Role:    RoleAssistant,
		Content: content,
		At:      time.Now(),
	}
	tr.turns = append(tr.turns, turn)
	logging.Session("assistant turn %s (%d bytes)", turn.ID, len(content))
	return turn
}

// Turns returns a copy of the recorded turns in order.
func (tr *Transcript) Turns() []Turn {
	out := make([]Turn, len(tr.turns))
	copy(out, tr.turns)
	return out
}

// Len returns the number of recorded turns.
func (tr *Transcript) Len() int {
	return len(tr.turns)
}
