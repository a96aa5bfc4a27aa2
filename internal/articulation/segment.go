// Package articulation handles assistant output -> renderable structure.
// Assistant replies are free prose with zero or more inline card directives
// of the form <<<CARD:<type>:<json>>>>; this package splits a reply into an
// ordered sequence of text and card segments, tolerating malformed input
// instead of failing on it.
package articulation

import (
	"encoding/json"
	"fmt"
	"strings"

	"advisordesk/internal/logging"
)

// Segment kinds.
const (
	KindText = "text"
	KindCard = "card"
)

// Directive fences. markerOpen is followed by "<type>:<json>" and closed by
// markerClose; triple angle brackets were picked because they do not occur
// in natural prose.
const (
	markerOpen  = "<<<CARD:"
	markerClose = ">>>"
)

// MessageSegment is one renderable piece of an assistant reply. It is a
// tagged union: Kind is either KindText (Content set) or KindCard (CardType
// and Data set). Consumers must switch on Kind.
type MessageSegment struct {
	Kind     string         `json:"kind"`
	Content  string         `json:"content,omitempty"`
	CardType string         `json:"cardType,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// TextSegment builds a text segment.
func TextSegment(content string) MessageSegment {
	return MessageSegment{Kind: KindText, Content: content}
}

// CardSegment builds a card segment.
func CardSegment(cardType string, data map[string]any) MessageSegment {
	return MessageSegment{Kind: KindCard, CardType: cardType, Data: data}
}

// ParseSegments splits an assistant reply into its ordered segments.
//
// The scan is a single left-to-right pass. Prose between directives becomes
// text segments, trimmed of surrounding whitespace; empty text is dropped.
// A directive whose payload decodes as a JSON object becomes a card segment.
// A directive that cannot be decoded is kept verbatim as a text segment so
// the failure is visible to the user rather than silently erased. Unknown
// card types pass through untouched — whether a type is renderable is the
// registry consumer's call, not the parser's.
//
// ParseSegments is total: it never panics and every byte of the input is
// accounted for by exactly one segment (modulo trimming and the fences
// themselves).
func ParseSegments(message string) []MessageSegment {
	var segments []MessageSegment

	appendText := func(s string) {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			segments = append(segments, TextSegment(trimmed))
		}
	}

	rest := message
	for {
		open := strings.Index(rest, markerOpen)
		if open == -1 {
			appendText(rest)
			break
		}

		appendText(rest[:open])
		marker := rest[open:]

		seg, consumed, ok := parseDirective(marker)
		if !ok {
			// No closing fence at all: the rest of the message is prose.
			appendText(marker)
			break
		}
		segments = append(segments, seg)
		rest = marker[consumed:]
	}

	return segments
}

// parseDirective decodes one directive starting at the opening fence.
// It returns the resulting segment (card on success, raw text on a payload
// that will not decode), the number of bytes consumed, and whether a closing
// fence was found at all.
func parseDirective(marker string) (MessageSegment, int, bool) {
	body := marker[len(markerOpen):]

	colon := strings.Index(body, ":")
	payloadStart := len(markerOpen) + colon + 1

	var payload string
	var end int // index just past the closing fence, relative to marker

	if colon >= 0 && payloadStart < len(marker) && marker[payloadStart] == '{' {
		// JSON object payload: walk it with the brace scanner so a ">>>"
		// inside a string value cannot truncate it.
		objLen, balanced := scanJSONObject(marker[payloadStart:])
		if balanced && strings.HasPrefix(marker[payloadStart+objLen:], markerClose) {
			payload = marker[payloadStart : payloadStart+objLen]
			end = payloadStart + objLen + len(markerClose)
		}
	}

	if end == 0 {
		// Not a well-formed object; fall back to the nearest closing fence.
		closeIdx := strings.Index(marker, markerClose)
		if closeIdx == -1 {
			return MessageSegment{}, 0, false
		}
		if colon >= 0 && payloadStart <= closeIdx {
			payload = marker[payloadStart:closeIdx]
		}
		end = closeIdx + len(markerClose)
	}

	raw := marker[:end]

	cardType := ""
	if colon > 0 {
		cardType = strings.TrimSpace(body[:colon])
	}
	if cardType == "" {
		logging.ArticulationWarn("directive with empty card type kept as text: %q", raw)
		return TextSegment(raw), end, true
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		logging.ArticulationWarn("undecodable %s payload kept as text: %v", cardType, err)
		return TextSegment(raw), end, true
	}

	return CardSegment(cardType, data), end, true
}

// scanJSONObject walks one top-level JSON object starting at s[0] == '{'
// and returns its length in bytes. It tracks string and escape state so
// braces and fence characters inside string values are skipped. balanced is
// false when the object never closes.
//
// Iterating bytes is safe for the ASCII delimiters involved: UTF-8
// guarantees ASCII bytes never occur inside a multi-byte sequence.
func scanJSONObject(s string) (length int, balanced bool) {
	var depth int
	var inString, escape bool

	for i := 0; i < len(s); i++ {
		b := s[i]

		if escape {
			escape = false
			continue
		}
		if inString {
			if b == '\\' {
				escape = true
			} else if b == '"' {
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return len(s), false
}

// ComposeCard renders a card directive that ParseSegments round-trips.
// data must marshal to a JSON object.
func ComposeCard(cardType string, data any) (string, error) {
	if strings.TrimSpace(cardType) == "" {
		return "", fmt.Errorf("compose card: empty card type")
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("compose %s card: %w", cardType, err)
	}
	if len(raw) == 0 || raw[0] != '{' {
		return "", fmt.Errorf("compose %s card: payload must be a JSON object", cardType)
	}
	return markerOpen + cardType + ":" + string(raw) + markerClose, nil
}
