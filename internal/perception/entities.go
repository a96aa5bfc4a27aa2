package perception

import (
	"regexp"
	"strings"
	"unicode"
)

// Entities is the sparse set of structured values pulled out of one
// utterance. A zero field means "not mentioned" — never a default.
// TaskID and ClientID are never produced by Extract; they are filled in
// exclusively by Resolve from the conversational focus.
type Entities struct {
	ClientName   string `json:"clientName,omitempty"`
	Date         string `json:"date,omitempty"`
	Action       string `json:"action,omitempty"`
	TaskID       string `json:"taskId,omitempty"`
	ClientID     string `json:"clientId,omitempty"`
	HasReference bool   `json:"hasReference,omitempty"`
}

// IsEmpty reports whether nothing recognizable was found.
func (e Entities) IsEmpty() bool {
	return e == Entities{}
}

// Canonical date tokens.
const (
	DateToday     = "today"
	DateTomorrow  = "tomorrow"
	DateYesterday = "yesterday"
	DateWeek      = "week"
	DateNextWeek  = "next_week"
	DateMonth     = "month"
)

// Canonical actions.
const (
	ActionApprove  = "approve"
	ActionReject   = "reject"
	ActionComplete = "complete"
)

// datePhrases maps surface phrases to canonical date tokens. Multi-word
// phrases come first so "this week" wins over the bare "week", and the
// first entry that matches wins outright — an utterance carrying both
// "this week" and "today" canonicalizes to week. That priority is part of
// the contract and covered by tests.
var datePhrases = []struct {
	Phrase string
	Token  string
}{
	{"this week", DateWeek},
	{"next week", DateNextWeek},
	{"this month", DateMonth},
	{"tomorrow", DateTomorrow},
	{"yesterday", DateYesterday},
	{"today", DateToday},
}

// actionCues maps cue phrases to canonical actions. Reject cues are checked
// before approve and complete cues so negated phrasings ("don't send it")
// resolve to reject instead of whatever verb follows the negation. The rule
// sets are deliberately disjoint; a genuinely conflicting utterance
// ("approve and cancel it") takes the first match and is not reconciled.
var actionCues = []struct {
	Cues    []string
	Pattern *regexp.Regexp
	Action  string
}{
	{Cues: []string{"reject", "cancel", "decline", "don't", "dont", "do not"}, Action: ActionReject},
	{Cues: []string{"approve", "confirm", "go ahead", "sign off"}, Action: ActionApprove},
	{Cues: []string{"complete", "finish"}, Pattern: regexp.MustCompile(`\bmark\b.*\bdone\b`), Action: ActionComplete},
}

// anaphorPattern matches a standalone "it", "that" or "this".
var anaphorPattern = regexp.MustCompile(`(?i)\b(it|that|this)\b`)

// commonWords are capitalized tokens that never start or extend a client
// name: sentence starters, verbs the corpus recognizes, and assorted
// function words that get capitalized at the head of an utterance.
var commonWords = map[string]bool{
	"a": true, "an": true, "the": true, "this": true, "that": true,
	"i": true, "it": true, "my": true, "me": true, "we": true,
	"what": true, "what's": true, "who": true, "when": true, "where": true,
	"why": true, "how": true, "which": true, "is": true, "are": true,
	"can": true, "could": true, "would": true, "should": true, "please": true,
	"show": true, "tell": true, "give": true, "pull": true, "list": true,
	"approve": true, "reject": true, "cancel": true, "confirm": true,
	"complete": true, "finish": true, "mark": true, "send": true,
	"review": true, "check": true, "status": true, "task": true,
	"tasks": true, "client": true, "email": true, "today": true,
	"tomorrow": true, "yesterday": true, "yes": true, "no": true,
	"ok": true, "okay": true, "hi": true, "hello": true, "hey": true,
	"thanks": true, "thank": true, "don't": true, "dont": true,
	"about": true, "for": true, "of": true, "on": true, "in": true,
	"do": true, "does": true, "did": true, "go": true, "get": true,
}

// Extract pulls structured entities out of one utterance. The name, date,
// action and anaphor sub-extractions run independently over the same string
// and merge into a single Entities value; nothing recognizable yields the
// zero value. This is a heuristic pass, not NER — all-lowercase names are
// not recognized, which is an accepted limitation.
func Extract(utterance string) Entities {
	var e Entities
	e.ClientName = extractClientName(utterance)
	e.Date = extractDate(utterance)
	e.Action = extractAction(utterance)
	e.HasReference = anaphorPattern.MatchString(utterance)
	return e
}

// extractClientName finds the first contiguous run of capitalized tokens
// that are not common sentence words, joining adjacent capitalized tokens
// across a single "and" so "David and Emily Williams" stays one name.
func extractClientName(utterance string) string {
	tokens := strings.Fields(utterance)

	var run []string
	flush := func() string {
		// A trailing "and" never ends a name.
		for len(run) > 0 && run[len(run)-1] == "and" {
			run = run[:len(run)-1]
		}
		if len(run) == 0 {
			return ""
		}
		return strings.Join(run, " ")
	}

	for _, tok := range tokens {
		word := strings.Trim(tok, `.,!?;:'"()`)
		if word == "" {
			if name := flush(); name != "" {
				return name
			}
			run = nil
			continue
		}

		if len(run) > 0 && strings.EqualFold(word, "and") {
			run = append(run, "and")
			continue
		}

		if isNameToken(word) {
			run = append(run, word)
			continue
		}

		if name := flush(); name != "" {
			return name
		}
		run = nil
	}

	return flush()
}

func isNameToken(word string) bool {
	r := []rune(word)
	if !unicode.IsUpper(r[0]) {
		return false
	}
	return !commonWords[strings.ToLower(word)]
}

func extractDate(utterance string) string {
	lower := strings.ToLower(utterance)
	for _, d := range datePhrases {
		if strings.Contains(lower, d.Phrase) {
			return d.Token
		}
	}
	return ""
}

func extractAction(utterance string) string {
	lower := strings.ToLower(utterance)
	for _, a := range actionCues {
		for _, cue := range a.Cues {
			if strings.Contains(lower, cue) {
				return a.Action
			}
		}
		if a.Pattern != nil && a.Pattern.MatchString(lower) {
			return a.Action
		}
	}
	return ""
}
