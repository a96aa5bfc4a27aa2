package perception

import (
	"strings"
	"testing"
)

func TestClassify_ActionVerbs(t *testing.T) {
	tests := []struct {
		input string
		want  Intent
	}{
		{"approve the Sarah Chen email", IntentApproveTask},
		{"Approve it!", IntentApproveTask},
		{"please confirm the renewal", IntentApproveTask},
		{"go ahead and send it", IntentApproveTask},
		{"reject that proposal", IntentRejectTask},
		{"cancel the draft", IntentRejectTask},
		{"don't send the email", IntentRejectTask},
		{"complete the onboarding task", IntentCompleteTask},
		{"mark the review as done", IntentCompleteTask},
	}

	for _, tt := range tests {
		got := Classify(tt.input)
		if got.Intent != tt.want {
			t.Errorf("Classify(%q).Intent = %s, want %s", tt.input, got.Intent, tt.want)
		}
		if got.Confidence < 0.8 {
			t.Errorf("Classify(%q).Confidence = %.2f, want >= 0.8", tt.input, got.Confidence)
		}
	}
}

func TestClassify_Queries(t *testing.T) {
	tests := []struct {
		input string
		want  Intent
	}{
		{"what are my pending reviews?", IntentShowPendingReviews},
		{"anything awaiting review?", IntentShowPendingReviews},
		{"show me today's tasks", IntentShowTodaysTasks},
		{"what's on my plate?", IntentShowTodaysTasks},
		{"what's the status of the Chen renewal?", IntentShowTaskStatus},
		{"where are we on the proposal", IntentShowTaskStatus},
		{"tell me about Michael Torres", IntentShowClientInfo},
		{"who is Sarah Chen", IntentShowClientInfo},
	}

	for _, tt := range tests {
		got := Classify(tt.input)
		if got.Intent != tt.want {
			t.Errorf("Classify(%q).Intent = %s, want %s", tt.input, got.Intent, tt.want)
		}
	}
}

func TestClassify_Fallback(t *testing.T) {
	tests := []string{
		"hello world",
		"how's the weather",
		"",
		"   ",
		"asdf qwerty",
	}

	for _, input := range tests {
		got := Classify(input)
		if got.Intent != IntentGeneralQuestion {
			t.Errorf("Classify(%q).Intent = %s, want general_question", input, got.Intent)
		}
		if got.Confidence >= 0.8 {
			t.Errorf("Classify(%q).Confidence = %.2f, want < 0.8", input, got.Confidence)
		}
	}
}

// Rule order is part of the contract: action verbs beat the broader query
// patterns when both could match.
func TestClassify_FirstMatchWins(t *testing.T) {
	tests := []struct {
		input string
		want  Intent
	}{
		// "approve" beats the pending-reviews cue
		{"approve the pending review", IntentApproveTask},
		// "cancel" (reject) beats "complete"
		{"cancel the completed task", IntentRejectTask},
		// "tell me about" only wins when no action verb is present
		{"tell me about the status of the review", IntentShowTaskStatus},
	}

	for _, tt := range tests {
		got := Classify(tt.input)
		if got.Intent != tt.want {
			t.Errorf("Classify(%q).Intent = %s, want %s", tt.input, got.Intent, tt.want)
		}
	}
}

func TestClassify_PunctuationAndCase(t *testing.T) {
	variants := []string{
		"APPROVE!!!",
		"Approve.",
		"  approve?  ",
	}
	for _, input := range variants {
		if got := Classify(input); got.Intent != IntentApproveTask {
			t.Errorf("Classify(%q).Intent = %s, want approve_task", input, got.Intent)
		}
	}
}

// Classify must be total: arbitrary garbage never panics and always yields
// a well-formed result.
func TestClassify_NeverPanics(t *testing.T) {
	inputs := []string{
		strings.Repeat("a", 10000),
		"\x00\xff\xfe",
		"日本語のテキスト",
		"{{{}}}((()))",
		strings.Repeat("approve ", 500),
	}
	for _, input := range inputs {
		got := Classify(input)
		if got.Confidence <= 0 || got.Confidence > 1 {
			t.Errorf("Classify(%q) confidence out of range: %.2f", input, got.Confidence)
		}
		if got.Intent == "" {
			t.Errorf("Classify(%q) returned empty intent", input)
		}
	}
}
