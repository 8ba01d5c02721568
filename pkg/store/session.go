package store

import (
	"sync"
	"time"

	"pm-studio-be/pkg/annotate"
	"pm-studio-be/pkg/llm"
	"pm-studio-be/pkg/phases"
)

// PersonaStatus is a reviewer's availability.
type PersonaStatus string

const (
	StatusOnline  PersonaStatus = "online"
	StatusAway    PersonaStatus = "away"
	StatusOffline PersonaStatus = "offline"
)

// ReviewerPersona is one member of the immutable reviewer roster.
type ReviewerPersona struct {
	Id     string        `json:"id"`
	Name   string        `json:"name"`
	Role   string        `json:"role"`
	Avatar string        `json:"avatar,omitempty"`
	Status PersonaStatus `json:"status"`
}

// Eligible reports whether the persona may generate feedback. Offline
// personas never do.
func (p ReviewerPersona) Eligible() bool {
	return p.Status == StatusOnline || p.Status == StatusAway
}

// SharedDocument models a knowledge hand-off from a persona to the user.
type SharedDocument struct {
	Id         string    `json:"id"`
	ReviewerId string    `json:"reviewer_id"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary,omitempty"`
	SharedAt   time.Time `json:"shared_at"`
}

// Session is the whole in-memory state of one exercise. There is exactly one
// document, one comment set and one phase machine per session. All mutation
// goes through the session lock; the engines underneath are unsynchronized.
type Session struct {
	mu sync.Mutex

	ID               string
	ParticipantName  string
	ParticipantEmail string

	Document string
	Revision int

	Comments *annotate.CommentSet
	Phases   *phases.Machine

	Roster []ReviewerPersona
	Shared []SharedDocument

	// Per-reviewer chat transcripts, keyed by reviewer id.
	Transcripts map[string][]llm.Message

	// Guards against a second review pass starting while one is running.
	Reviewing bool

	StartedAt time.Time
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// FindReviewer looks a persona up by id.
func (s *Session) FindReviewer(id string) (ReviewerPersona, bool) {
	for _, r := range s.Roster {
		if r.Id == id {
			return r, true
		}
	}
	return ReviewerPersona{}, false
}
