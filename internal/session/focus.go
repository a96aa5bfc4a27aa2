// Package session owns the per-conversation mutable state the pure analysis
// packages deliberately refuse to hold: the conversational focus and the
// turn transcript. perception.Resolve reads focus via a value snapshot and
// never mutates it; this package is the one place it changes.
package session

import (
	"advisordesk/internal/articulation"
	"advisordesk/internal/logging"
	"advisordesk/internal/perception"
)

// FocusTracker maintains the "what we were just talking about" state. The
// chat loop feeds it every reply's parsed segments; showing a task card
// focuses that task, showing a client card focuses that client.
type FocusTracker struct {
	focus perception.ConversationFocus
}

// NewFocusTracker returns a tracker with nothing in focus.
func NewFocusTracker() *FocusTracker {
	return &FocusTracker{}
}

// taskCardTypes are cards whose payload id shifts the task focus.
var taskCardTypes = map[string]bool{
	"task":            true,
	"review":          true,
	"workflow-status": true,
}

// clientCardTypes are cards whose payload id shifts the client focus.
var clientCardTypes = map[string]bool{
	"client":           true,
	"portfolio-review": true,
}

// Observe updates the focus from the card segments of one assistant reply.
// Later cards win within a reply, mirroring what ends up lowest on the
// advisor's screen.
func (t *FocusTracker) Observe(segments []articulation.MessageSegment) {
	for _, seg := range segments {
		if seg.Kind != articulation.KindCard {
			continue
		}
		switch {
		case taskCardTypes[seg.CardType]:
			if id := payloadID(seg.Data, "taskId", "workflowId", "id"); id != "" {
				t.focus.FocusedTaskID = id
				logging.SessionDebug("focus: task %s (%s card)", id, seg.CardType)
			}
		case clientCardTypes[seg.CardType]:
			if id := payloadID(seg.Data, "clientId", "id"); id != "" {
				t.focus.FocusedClientID = id
				logging.SessionDebug("focus: client %s (%s card)", id, seg.CardType)
			}
		}
	}
}

// Clear drops all focus, e.g. when the advisor changes topic explicitly.
func (t *FocusTracker) Clear() {
	t.focus = perception.ConversationFocus{}
}

// Snapshot returns a copy of the current focus for the resolver. Mutating
// the returned value does not affect the tracker.
func (t *FocusTracker) Snapshot() perception.ConversationFocus {
	return t.focus
}

// payloadID digs a string id out of a card payload, trying keys in order
// and descending one level into nested objects (a task card carries its id
// at data.task.id).
func payloadID(data map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := data[key].(string); ok && s != "" {
			return s
		}
	}
	for _, v := range data {
		nested, ok := v.(map[string]any)
		if !ok {
			continue
		}
		for _, key := range keys {
			if s, ok := nested[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
