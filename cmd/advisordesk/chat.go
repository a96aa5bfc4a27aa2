package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"advisordesk/internal/articulation"
	"advisordesk/internal/perception"
	"advisordesk/internal/session"
)

// Chat loop styling.
var (
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f2f2f2"))
	cardStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2196F3")).
			Padding(0, 1)
	metaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7a90")).Italic(true)
)

// runChat runs the interactive loop: read an utterance, understand it,
// produce a reply, parse the reply into segments, render them, and let the
// tracker update the conversational focus from the cards shown.
func runChat() error {
	tracker := session.NewFocusTracker()
	transcript := session.NewTranscript()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println(assistantStyle.Render(cfg.Assistant.Greeting))
	fmt.Println(metaStyle.Render(`(type "exit" to quit)`))

	for {
		fmt.Print(promptStyle.Render("you> "))
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}

		focus := tracker.Snapshot()
		command := perception.Understand(input, &focus)
		transcript.AddUser(input, command)

		if verbose {
			fmt.Println(metaStyle.Render(fmt.Sprintf("  intent=%s confidence=%.2f entities=%+v",
				command.Intent.Intent, command.Intent.Confidence, command.Entities)))
		}

		reply := respond(command)
		transcript.AddAssistant(reply)

		segments := articulation.ParseSegments(reply)
		tracker.Observe(segments)
		renderSegments(segments)
	}

	return scanner.Err()
}

func renderSegments(segments []articulation.MessageSegment) {
	for _, seg := range segments {
		switch seg.Kind {
		case articulation.KindText:
			fmt.Println(assistantStyle.Render(seg.Content))
		case articulation.KindCard:
			label := seg.CardType
			if !articulation.KnownCardType(seg.CardType) {
				label += " (unknown type)"
			}
			fmt.Println(cardStyle.Render(fmt.Sprintf("[%s] %v", label, seg.Data)))
		}
	}
}

// respond is the canned, offline responder used by the demo loop. It stands
// in for the real assistant backend: given a resolved command it authors a
// reply string in exactly the format the segment parser consumes, card
// directives included.
func respond(command perception.Command) string {
	e := command.Entities

	switch command.Intent.Intent {
	case perception.IntentShowTodaysTasks:
		card, _ := articulation.ComposeCard("task", map[string]any{
			"task":        map[string]any{"id": "task-2041", "title": "Renewal email for Sarah Chen"},
			"showActions": true,
		})
		return "Here is your first task for today. " + card

	case perception.IntentShowPendingReviews:
		card, _ := articulation.ComposeCard("review", map[string]any{
			"review":      map[string]any{"id": "task-2041", "kind": "email"},
			"showActions": true,
		})
		return "One item is waiting on you. " + card

	case perception.IntentShowTaskStatus:
		card, _ := articulation.ComposeCard("workflow-status", map[string]any{
			"workflowId": orDefault(e.TaskID, "task-2041"),
			"state":      "in_review",
		})
		return card

	case perception.IntentApproveTask, perception.IntentRejectTask, perception.IntentCompleteTask:
		if command.Intent.Confidence < cfg.Assistant.MinActionConfidence {
			return "I want to be sure before acting on that — could you rephrase?"
		}
		if e.TaskID == "" {
			card, _ := articulation.ComposeCard("select-entity", map[string]any{
				"options": []any{},
			})
			return "Which task do you mean? " + card
		}
		card, _ := articulation.ComposeCard("confirmation", map[string]any{
			"message": fmt.Sprintf("Recorded %s for %s.", e.Action, e.TaskID),
		})
		return card

	case perception.IntentShowClientInfo:
		card, _ := articulation.ComposeCard("client", map[string]any{
			"client": map[string]any{
				"id":   "client-114",
				"name": orDefault(e.ClientName, "Unknown"),
			},
			"clientId": "client-114",
		})
		return "Here's what I have. " + card

	default:
		return "I can show your tasks and reviews, act on them, or pull up a client. What do you need?"
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
