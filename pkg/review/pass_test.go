package review

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"pm-studio-be/pkg/annotate"
	"pm-studio-be/pkg/llm"
	"pm-studio-be/pkg/store"
)

const passDoc = "ShopSphere checkout abandonment is high. Guest checkout is still missing."

// fakeProvider returns one scripted reply (or error) per Chat call, in order.
type fakeProvider struct {
	replies []string
	errs    []error
	calls   int
	history [][]llm.Message
}

func (p *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	i := p.calls
	p.calls++
	p.history = append(p.history, history)
	if i < len(p.errs) && p.errs[i] != nil {
		return "", p.errs[i]
	}
	if i < len(p.replies) {
		return p.replies[i], nil
	}
	return "", fmt.Errorf("unexpected call %d", i)
}

func (p *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}})
}

func testRoster() []store.ReviewerPersona {
	return []store.ReviewerPersona{
		{Id: "eng-lead", Name: "Maya Chen", Role: "Engineering Lead", Status: store.StatusOnline},
		{Id: "analyst", Name: "Priya Nair", Role: "Data Analyst", Status: store.StatusAway},
		{Id: "support", Name: "Lena Fischer", Role: "Support Lead", Status: store.StatusOffline},
	}
}

func testLogger() *log.Logger {
	return log.New(os.Stderr, "", 0)
}

func TestRunSkipsOfflineReviewers(t *testing.T) {
	provider := &fakeProvider{replies: []string{
		`{"comments":[{"text_excerpt":"checkout abandonment","comment":"Which step?"}]}`,
		`{"comments":[{"text_excerpt":"guest checkout","comment":"Fraud rules apply."}]}`,
	}}
	runner := NewRunner(provider, testLogger(), WithDelay(0))

	result, err := runner.Run(context.Background(), passDoc, testRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Attempted != 2 {
		t.Errorf("Attempted = %d, want 2 (offline reviewer skipped)", result.Attempted)
	}
	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want 2", provider.calls)
	}
	if len(result.Comments) != 2 {
		t.Fatalf("comments = %d, want 2", len(result.Comments))
	}

	// Batches arrive in roster order and carry the persona identity.
	if result.Comments[0].Author != "Maya Chen" || result.Comments[1].Author != "Priya Nair" {
		t.Errorf("authors = %q, %q", result.Comments[0].Author, result.Comments[1].Author)
	}
	if result.Comments[0].Perspective != "Engineering Lead" {
		t.Errorf("Perspective = %q", result.Comments[0].Perspective)
	}
	if result.Comments[0].Position != 11 || result.Comments[0].Length != 20 {
		t.Errorf("anchor = %d+%d, want 11+20", result.Comments[0].Position, result.Comments[0].Length)
	}
}

func TestRunNoEligibleReviewers(t *testing.T) {
	provider := &fakeProvider{}
	runner := NewRunner(provider, testLogger(), WithDelay(0))

	roster := []store.ReviewerPersona{
		{Id: "support", Name: "Lena Fischer", Status: store.StatusOffline},
	}
	_, err := runner.Run(context.Background(), passDoc, roster)
	if !errors.Is(err, ErrNoEligibleReviewers) {
		t.Errorf("err = %v, want ErrNoEligibleReviewers", err)
	}
	if provider.calls != 0 {
		t.Errorf("provider must not be called, got %d calls", provider.calls)
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	provider := &fakeProvider{
		errs: []error{errors.New("backend unreachable"), nil},
		replies: []string{
			"",
			`{"comments":[{"text_excerpt":"guest checkout","comment":"Still matters."}]}`,
		},
	}
	runner := NewRunner(provider, testLogger(), WithDelay(0))

	result, err := runner.Run(context.Background(), passDoc, testRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Failures) != 1 {
		t.Fatalf("failures = %d, want 1", len(result.Failures))
	}
	if result.Failures[0].ReviewerId != "eng-lead" {
		t.Errorf("failed reviewer = %s", result.Failures[0].ReviewerId)
	}
	if len(result.Comments) != 1 {
		t.Errorf("comments = %d, want 1 (second reviewer unaffected)", len(result.Comments))
	}
	if result.AllFailed() {
		t.Error("AllFailed = true with one success")
	}
}

func TestRunAllFailed(t *testing.T) {
	provider := &fakeProvider{
		errs: []error{errors.New("down"), errors.New("down")},
	}
	runner := NewRunner(provider, testLogger(), WithDelay(0))

	result, err := runner.Run(context.Background(), passDoc, testRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.AllFailed() {
		t.Error("AllFailed = false, want true")
	}
}

func TestRunUnparseablePayloadIsFailure(t *testing.T) {
	provider := &fakeProvider{replies: []string{
		"I would rather not give structured feedback.",
		`{"comments":[]}`,
	}}
	runner := NewRunner(provider, testLogger(), WithDelay(0))

	result, err := runner.Run(context.Background(), passDoc, testRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Failures) != 1 {
		t.Errorf("failures = %d, want 1", len(result.Failures))
	}
	// A parseable reply with zero comments is a success, not a failure.
	if len(result.Comments) != 0 {
		t.Errorf("comments = %d, want 0", len(result.Comments))
	}
}

func TestRunContextExpiryBetweenReviewers(t *testing.T) {
	provider := &fakeProvider{replies: []string{
		`{"comments":[{"text_excerpt":"checkout abandonment","comment":"ok"}]}`,
	}}
	runner := NewRunner(provider, testLogger(), WithDelay(50*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	result, err := runner.Run(ctx, passDoc, testRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Comments) != 1 {
		t.Errorf("comments = %d, want 1 from the first reviewer", len(result.Comments))
	}
	if len(result.Failures) != 1 {
		t.Fatalf("failures = %d, want the remaining reviewer marked failed", len(result.Failures))
	}
	if !errors.Is(result.Failures[0].Err, context.Canceled) {
		t.Errorf("failure err = %v, want context.Canceled", result.Failures[0].Err)
	}
}

func TestRunDropPolicy(t *testing.T) {
	provider := &fakeProvider{replies: []string{
		`{"comments":[{"text_excerpt":"checkout abandonment","comment":"kept"},{"text_excerpt":"completely absent words here now","comment":"dropped"}]}`,
	}}
	runner := NewRunner(provider, testLogger(), WithDelay(0), WithPolicy(annotate.PolicyDropUnmatched))

	roster := testRoster()[:1]
	result, err := runner.Run(context.Background(), passDoc, roster)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Comments) != 1 {
		t.Fatalf("comments = %d, want 1", len(result.Comments))
	}
	if result.Comments[0].Text != "kept" {
		t.Errorf("Text = %q", result.Comments[0].Text)
	}
}

func TestRunPromptContainsDocument(t *testing.T) {
	provider := &fakeProvider{replies: []string{`{"comments":[]}`, `{"comments":[]}`}}
	runner := NewRunner(provider, testLogger(), WithDelay(0))

	if _, err := runner.Run(context.Background(), passDoc, testRoster()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	history := provider.history[0]
	if len(history) != 2 {
		t.Fatalf("history len = %d, want system + user", len(history))
	}
	if history[0].Role != "system" {
		t.Errorf("first message role = %q", history[0].Role)
	}
	if !strings.Contains(history[1].Content, passDoc) {
		t.Error("user prompt must embed the document")
	}
	if !strings.Contains(history[0].Content, "Maya Chen") {
		t.Error("system prompt must name the persona")
	}
}
