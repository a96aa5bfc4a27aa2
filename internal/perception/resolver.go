package perception

// ConversationFocus is the ambient "what we were just talking about"
// snapshot. It is owned and mutated by the surrounding application (the
// session layer updates it as cards are shown); this package only ever
// reads it.
type ConversationFocus struct {
	FocusedTaskID   string `json:"focusedTaskId,omitempty"`
	FocusedClientID string `json:"focusedClientId,omitempty"`
}

// IsEmpty reports whether nothing is in focus.
func (f ConversationFocus) IsEmpty() bool {
	return f == ConversationFocus{}
}

// Resolve fills anaphoric references in entities from the conversational
// focus. "Approve it" carries no task id of its own; when the utterance
// used an anaphor, the focused task and client ids stand in for it.
//
// Resolve never overwrites an id the caller already set, does not mutate
// its inputs, and with a nil or empty focus returns the entities unchanged.
// Single-turn anaphora only — there is no multi-turn discourse tracking.
func Resolve(entities Entities, focus *ConversationFocus) Entities {
	resolved := entities

	if focus == nil || focus.IsEmpty() {
		return resolved
	}
	if !entities.HasReference {
		return resolved
	}

	if resolved.TaskID == "" && focus.FocusedTaskID != "" {
		resolved.TaskID = focus.FocusedTaskID
	}
	if resolved.ClientID == "" && focus.FocusedClientID != "" {
		resolved.ClientID = focus.FocusedClientID
	}

	return resolved
}
