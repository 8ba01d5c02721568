package review

import (
	"context"
	"errors"
	"log"
	"time"

	"pm-studio-be/pkg/annotate"
	"pm-studio-be/pkg/llm"
	"pm-studio-be/pkg/store"

	"github.com/google/uuid"
)

// ErrNoEligibleReviewers means the roster has nobody online or away; the
// pass returns without invoking generation at all.
var ErrNoEligibleReviewers = errors.New("no eligible reviewers in roster")

// Failure records one reviewer whose generation or extraction failed. The
// pass continues past individual failures.
type Failure struct {
	ReviewerId string
	Reviewer   string
	Err        error
}

// Result is the outcome of one review pass.
type Result struct {
	Comments  []annotate.Comment
	Failures  []Failure
	Attempted int
}

// AllFailed reports whether every attempted reviewer failed.
func (r *Result) AllFailed() bool {
	return r.Attempted > 0 && len(r.Failures) == r.Attempted
}

// Option configures a Runner.
type Option func(*Runner)

// WithDelay sets the pause between reviewer generation requests. This is a
// rate-limiting courtesy towards the backend, not a correctness requirement.
func WithDelay(d time.Duration) Option {
	return func(r *Runner) {
		r.delay = d
	}
}

// WithPolicy sets the anchoring policy for unmatched excerpts.
func WithPolicy(p annotate.AnchorPolicy) Option {
	return func(r *Runner) {
		r.policy = p
	}
}

// Runner drives one review pass: one generation request per eligible
// reviewer, sequentially, each reviewer's feedback extracted, anchored and
// collected as one batch. A reviewer failing never aborts the others.
type Runner struct {
	provider llm.LLMProvider
	logger   *log.Logger
	delay    time.Duration
	policy   annotate.AnchorPolicy
}

func NewRunner(provider llm.LLMProvider, logger *log.Logger, opts ...Option) *Runner {
	r := &Runner{
		provider: provider,
		logger:   logger,
		delay:    800 * time.Millisecond,
		policy:   annotate.PolicyFallback,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the pass over the eligible part of the roster. The returned
// comments are grouped per reviewer in roster order; reviewer batches never
// interleave. There is no cancellation mid-pass beyond ctx expiry between
// reviewers.
func (r *Runner) Run(ctx context.Context, document string, roster []store.ReviewerPersona) (*Result, error) {
	var eligible []store.ReviewerPersona
	for _, persona := range roster {
		if persona.Eligible() {
			eligible = append(eligible, persona)
		}
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleReviewers
	}

	idx := annotate.NewPositionIndex(document)
	result := &Result{Attempted: len(eligible)}

	for i, persona := range eligible {
		if i > 0 {
			if err := r.pause(ctx); err != nil {
				// Context expired between reviewers; report the rest as failed.
				for _, rest := range eligible[i:] {
					result.Failures = append(result.Failures, Failure{
						ReviewerId: rest.Id,
						Reviewer:   rest.Name,
						Err:        err,
					})
				}
				return result, nil
			}
		}

		batch, err := r.reviewOne(ctx, idx, document, persona)
		if err != nil {
			r.logger.Printf("[REVIEW] reviewer %s (%s) failed: %v", persona.Name, persona.Id, err)
			result.Failures = append(result.Failures, Failure{
				ReviewerId: persona.Id,
				Reviewer:   persona.Name,
				Err:        err,
			})
			continue
		}
		r.logger.Printf("[REVIEW] reviewer %s contributed %d comments", persona.Name, len(batch))
		result.Comments = append(result.Comments, batch...)
	}

	return result, nil
}

func (r *Runner) reviewOne(ctx context.Context, idx *annotate.PositionIndex, document string, persona store.ReviewerPersona) ([]annotate.Comment, error) {
	builder := NewPromptBuilder(persona, document)

	raw, err := r.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: builder.SystemPrompt()},
		{Role: "user", Content: builder.Build()},
	})
	if err != nil {
		return nil, err
	}

	items, err := annotate.ExtractFeedback(raw)
	if err != nil {
		var extractErr *annotate.ExtractError
		if errors.As(err, &extractErr) {
			r.logger.Printf("[REVIEW] unparseable payload from %s: %q", persona.Name, extractErr.Raw)
		}
		return nil, err
	}

	now := time.Now()
	batch := make([]annotate.Comment, 0, len(items))
	for i, item := range items {
		anchor, keep := annotate.AnchorExcerpt(idx, item.Excerpt, i, len(items), r.policy)
		if !keep {
			continue
		}
		batch = append(batch, annotate.Comment{
			Id:          uuid.New(),
			Author:      persona.Name,
			Perspective: persona.Role,
			Avatar:      persona.Avatar,
			Text:        item.CommentText,
			Excerpt:     anchor.Excerpt,
			Position:    anchor.Position,
			Length:      anchor.Length,
			CreatedAt:   now,
		})
	}
	return batch, nil
}

func (r *Runner) pause(ctx context.Context) error {
	if r.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(r.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
