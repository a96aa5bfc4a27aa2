// Package perception turns raw advisor utterances into structured commands.
// It is the NL -> command transduction layer: classification, entity
// extraction, and reference resolution. Everything in this package is a pure
// function over its inputs; nothing here touches the network, disk, or any
// process-wide state.
package perception

import (
	"regexp"
	"strings"
)

// Intent is the closed set of commands the assistant understands.
type Intent string

const (
	IntentShowTodaysTasks    Intent = "show_todays_tasks"
	IntentShowTaskStatus     Intent = "show_task_status"
	IntentShowPendingReviews Intent = "show_pending_reviews"
	IntentApproveTask        Intent = "approve_task"
	IntentRejectTask         Intent = "reject_task"
	IntentCompleteTask       Intent = "complete_task"
	IntentShowClientInfo     Intent = "show_client_info"
	IntentGeneralQuestion    Intent = "general_question"
)

// ParsedIntent is the classifier's verdict for one utterance. Confidence
// reflects how lexically specific the winning rule was, not a model
// probability: action verbs score higher than broad question patterns.
type ParsedIntent struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// fallbackConfidence is returned when no rule matches and the utterance
// degrades to general_question.
const fallbackConfidence = 0.4

// intentRule binds one intent to its lexical cues. A rule matches when any
// pattern matches or any synonym substring is present in the lowercased
// utterance.
type intentRule struct {
	Intent     Intent
	Confidence float64
	Synonyms   []string
	Patterns   []*regexp.Regexp
}

// intentCorpus is evaluated top to bottom and the first matching rule wins.
// The ordering is load-bearing: explicit action verbs are checked before
// listing requests, which are checked before the broad "tell me about"
// patterns, so an utterance like "approve the review for Sarah" lands on
// approve_task rather than show_pending_reviews or show_client_info.
// Reordering entries changes classification results.
var intentCorpus = []intentRule{
	{
		Intent:     IntentRejectTask,
		Confidence: 0.9,
		Synonyms:   []string{"reject", "decline", "don't send", "dont send", "do not send"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bcancel\b`),
			regexp.MustCompile(`\bturn (it|that|this) down\b`),
		},
	},
	{
		Intent:     IntentApproveTask,
		Confidence: 0.9,
		Synonyms:   []string{"go ahead", "sign off", "looks good, send"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bapprove\b`),
			regexp.MustCompile(`\bconfirm\b`),
		},
	},
	{
		Intent:     IntentCompleteTask,
		Confidence: 0.9,
		Synonyms:   []string{"mark as done", "mark it done", "mark complete"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bcomplete\b`),
			regexp.MustCompile(`\bmark\b.*\bdone\b`),
			regexp.MustCompile(`\bfinish(ed)?\b`),
		},
	},
	{
		Intent:     IntentShowPendingReviews,
		Confidence: 0.85,
		Synonyms:   []string{"pending review", "pending reviews", "awaiting review", "need my review", "waiting on me"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bwhat('s| is) pending\b`),
		},
	},
	{
		Intent:     IntentShowTodaysTasks,
		Confidence: 0.85,
		Synonyms:   []string{"today's tasks", "todays tasks", "my tasks", "task list", "to-do", "todo list"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bwhat (do i have|is) (on )?(for )?today\b`),
			regexp.MustCompile(`\bwhat('s| is) on my plate\b`),
		},
	},
	{
		Intent:     IntentShowTaskStatus,
		Confidence: 0.8,
		Synonyms:   []string{"status of", "progress on", "where are we", "how far along"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bstatus\b`),
		},
	},
	{
		Intent:     IntentShowClientInfo,
		Confidence: 0.8,
		Synonyms:   []string{"tell me about", "who is", "client info", "client profile", "pull up"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bshow me [A-Z]`),
		},
	},
}

// Classify maps a free-text utterance to an intent with a confidence score.
// It is total: any string, including empty or garbage input, resolves to
// general_question with a low confidence rather than an error.
func Classify(utterance string) ParsedIntent {
	lower := strings.ToLower(strings.TrimSpace(utterance))
	if lower == "" {
		return ParsedIntent{Intent: IntentGeneralQuestion, Confidence: fallbackConfidence}
	}

	for _, rule := range intentCorpus {
		if ruleMatches(rule, utterance, lower) {
			return ParsedIntent{Intent: rule.Intent, Confidence: rule.Confidence}
		}
	}

	return ParsedIntent{Intent: IntentGeneralQuestion, Confidence: fallbackConfidence}
}

func ruleMatches(rule intentRule, original, lower string) bool {
	for _, syn := range rule.Synonyms {
		if strings.Contains(lower, syn) {
			return true
		}
	}
	for _, pattern := range rule.Patterns {
		// The show_client_info name pattern needs the original casing;
		// everything else matches on the lowercased form.
		if pattern.MatchString(lower) || pattern.MatchString(original) {
			return true
		}
	}
	return false
}
