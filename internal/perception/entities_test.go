package perception

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtract_FullUtterance(t *testing.T) {
	got := Extract("Approve the Sarah Chen email today")
	want := Entities{
		ClientName: "Sarah Chen",
		Action:     ActionApprove,
		Date:       DateToday,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_NothingRecognizable(t *testing.T) {
	for _, input := range []string{"hello world", "", "the quick brown fox"} {
		got := Extract(input)
		if !got.IsEmpty() {
			t.Errorf("Extract(%q) = %+v, want empty", input, got)
		}
	}
}

func TestExtract_ClientNames(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"tell me about Michael Torres", "Michael Torres"},
		{"pull up David and Emily Williams", "David and Emily Williams"},
		{"show me Sarah Chen's portfolio", "Sarah Chen's"},
		{"who is Priya?", "Priya"},
		// Sentence-initial common words never start a name.
		{"Show my tasks", ""},
		{"Approve the email", ""},
		// All-lowercase names are not recognized: accepted limitation.
		{"tell me about michael torres", ""},
		// A name at utterance start still counts when it is not a common word.
		{"Sarah Chen called this morning", "Sarah Chen"},
		// A trailing "and" is not part of the name.
		{"email Michael and the team", "Michael"},
	}

	for _, tt := range tests {
		got := Extract(tt.input)
		if got.ClientName != tt.want {
			t.Errorf("Extract(%q).ClientName = %q, want %q", tt.input, got.ClientName, tt.want)
		}
	}
}

func TestExtract_Dates(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"what do I have today", DateToday},
		{"schedule it for tomorrow", DateTomorrow},
		{"what happened yesterday", DateYesterday},
		{"reviews due this week", DateWeek},
		{"book it for next week", DateNextWeek},
		{"renewals this month", DateMonth},
		{"no dates here", ""},
	}

	for _, tt := range tests {
		if got := Extract(tt.input).Date; got != tt.want {
			t.Errorf("Extract(%q).Date = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// Two date cues in one utterance: the phrase table is ordered multi-word
// first, and the first match wins. This pins the chosen tie-break policy.
func TestExtract_DatePriority(t *testing.T) {
	got := Extract("what's due today and this week")
	if got.Date != DateWeek {
		t.Errorf("Date = %q, want %q (multi-word phrase wins)", got.Date, DateWeek)
	}
}

func TestExtract_Actions(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"approve the email", ActionApprove},
		{"confirm the change", ActionApprove},
		{"go ahead", ActionApprove},
		{"reject the draft", ActionReject},
		{"cancel that", ActionReject},
		{"mark it as done", ActionComplete},
		{"finish the task", ActionComplete},
		{"complete the review", ActionComplete},
		{"show my tasks", ""},
	}

	for _, tt := range tests {
		if got := Extract(tt.input).Action; got != tt.want {
			t.Errorf("Extract(%q).Action = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// Reject cues are checked first, so negated verbs resolve to reject rather
// than the verb that follows the negation.
func TestExtract_NegationBeatsVerb(t *testing.T) {
	for _, input := range []string{"don't approve it", "do not send that", "don't mark it done"} {
		if got := Extract(input).Action; got != ActionReject {
			t.Errorf("Extract(%q).Action = %q, want reject", input, got)
		}
	}
}

func TestExtract_AnaphorFlag(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"approve it", true},
		{"reject that", true},
		{"complete this", true},
		{"approve the Sarah Chen email", false},
		{"show my profits", false}, // "it" inside a word does not count
	}

	for _, tt := range tests {
		if got := Extract(tt.input).HasReference; got != tt.want {
			t.Errorf("Extract(%q).HasReference = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// Extract never emits explicit ids; those only come from Resolve.
func TestExtract_NeverProducesIDs(t *testing.T) {
	for _, input := range []string{"approve task-123", "show client client-9"} {
		got := Extract(input)
		if got.TaskID != "" || got.ClientID != "" {
			t.Errorf("Extract(%q) produced ids: %+v", input, got)
		}
	}
}
