package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"pm-studio-be/internal/constant"
	"pm-studio-be/pkg/llm"
	"pm-studio-be/pkg/phases"
	"pm-studio-be/pkg/review"
	"pm-studio-be/pkg/store"

	"github.com/fatih/color"
)

// scriptedProvider replays canned model output so the whole exercise can be
// walked through offline, without Ollama running.
type scriptedProvider struct {
	replies []string
	i       int
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if p.i >= len(p.replies) {
		return "", fmt.Errorf("script exhausted after %d replies", len(p.replies))
	}
	reply := p.replies[p.i]
	p.i++
	return reply, nil
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}})
}

var (
	header  = color.New(color.FgCyan, color.Bold)
	ok      = color.New(color.FgGreen)
	warn    = color.New(color.FgYellow)
	comment = color.New(color.FgMagenta)
)

func main() {
	header.Println("=== PM Studio Exercise Simulation ===")

	sess := &store.Session{
		ID:          "simulation",
		Document:    constant.ScenarioDocumentV1,
		Revision:    1,
		Phases:      phases.NewMachine(phases.DefaultPhases()),
		Roster:      constant.DefaultRoster(),
		Transcripts: map[string][]llm.Message{},
		StartedAt:   time.Now(),
	}

	ok.Printf("Session started, phase: %s\n", sess.Phases.CurrentPhase().Title)

	// The briefing allows skipping ahead, the way the frontend's continue
	// button does.
	sess.Phases.CompleteAction("read_brief")
	if sess.Phases.CanManuallyAdvance() {
		sess.Phases.ForceAdvance()
	}
	ok.Printf("Skipped ahead to: %s\n", sess.Phases.CurrentPhase().Title)

	// Research completes on its own once both actions are done.
	sess.Phases.CompleteAction("interview_stakeholder")
	sess.Phases.CompleteAction("review_metrics")
	ok.Printf("Now in: %s\n", sess.Phases.CurrentPhase().Title)

	// Planning auto-advances once the draft and metrics are in.
	sess.Phases.CompleteAction("draft_document")
	sess.Phases.CompleteAction("define_metrics")
	ok.Printf("Now in: %s\n", sess.Phases.CurrentPhase().Title)

	provider := &scriptedProvider{replies: []string{
		`{"comments":[{"text_excerpt":"checkout abandonment","comment":"Do we know which checkout step loses the most users? The payment form times out under load."},{"text_excerpt":"guest checkout","comment":"Guest checkout touches the fraud rules, loop in the risk team early."}]}`,
		"```json\n{\"comments\":[{\"text_excerpt\":\"success metric\",\"comment\":\"Pick one primary metric. Conversion rate and abandonment rate move together anyway.\"}]}\n```",
		`{"comments":[{"text_excerpt":"not in this document","comment":"The launch window clashes with the holiday code freeze."}]}`,
	}}

	runner := review.NewRunner(provider, log.New(os.Stderr, "[simulation] ", log.LstdFlags), review.WithDelay(0))

	header.Println("\n--- Review pass ---")
	result, err := runner.Run(context.Background(), sess.Document, sess.Roster)
	if err != nil {
		log.Fatalf("review pass failed: %v", err)
	}

	for _, c := range result.Comments {
		comment.Printf("%s (%s) @%d+%d: %s\n", c.Author, c.Perspective, c.Position, c.Length, c.Text)
	}
	for _, f := range result.Failures {
		warn.Printf("%s failed: %v\n", f.Reviewer, f.Err)
	}

	sess.Phases.CompleteAction("request_review")
	sess.Phases.CompleteAction("resolve_feedback")
	ok.Printf("\nNow in: %s\n", sess.Phases.CurrentPhase().Title)

	sess.Phases.CompleteAction("finalize_document")
	if sess.Phases.IsComplete() {
		header.Println("\nExercise complete 🎉")
	} else {
		warn.Printf("\nExercise not complete, outstanding: %s\n", sess.Phases.AdvancementRequirements())
	}
}
