package perception

import "advisordesk/internal/logging"

// Command is the routable result of understanding one utterance: what the
// advisor wants plus everything we could pull out of how they said it.
type Command struct {
	Intent   ParsedIntent `json:"intent"`
	Entities Entities     `json:"entities"`
}

// Understand runs the full perception pass over one utterance: classify,
// extract, then resolve references against the supplied focus. Classify and
// Extract are independent reads over the same string; Resolve consumes the
// extractor's output. Total for any input, like its parts.
func Understand(utterance string, focus *ConversationFocus) Command {
	intent := Classify(utterance)
	entities := Resolve(Extract(utterance), focus)

	logging.PerceptionDebug("understood %q -> intent=%s conf=%.2f entities=%+v",
		utterance, intent.Intent, intent.Confidence, entities)

	return Command{Intent: intent, Entities: entities}
}
