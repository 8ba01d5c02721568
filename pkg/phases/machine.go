package phases

import (
	"fmt"
	"strings"
	"time"
)

// Progress describes completion of the current phase's required actions.
type Progress struct {
	PhaseId    string `json:"phase_id"`
	Completed  int    `json:"completed"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

// Machine tracks progression through an ordered, fixed sequence of phases.
// Phases are only ever visited forward; the last phase is terminal. The
// completed-action set is shared across phases and only grows; completing an
// action id the curriculum never mentions is a silent no-op addition.
//
// Machine is not synchronized; the owning session serializes access.
type Machine struct {
	phases    []Phase
	idx       int
	completed map[string]struct{}
	startedAt map[string]time.Time
	now       func() time.Time
}

func NewMachine(phaseList []Phase, opts ...Option) *Machine {
	m := &Machine{
		phases:    phaseList,
		completed: make(map[string]struct{}),
		startedAt: make(map[string]time.Time),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.startedAt[m.phases[0].Id] = m.now()
	return m
}

func (m *Machine) CurrentPhase() Phase {
	return m.phases[m.idx]
}

func (m *Machine) Phases() []Phase {
	return m.phases
}

// CompleteAction records the action as done and advances to the next phase
// when every required action of the current phase is complete. Returns the
// progress of whatever phase is current afterwards.
func (m *Machine) CompleteAction(actionId string) Progress {
	m.completed[actionId] = struct{}{}
	if m.CanAdvance() && m.idx < len(m.phases)-1 {
		m.advance()
	}
	return m.Progress()
}

// ActionCompleted reports whether a given action id was ever completed.
func (m *Machine) ActionCompleted(actionId string) bool {
	_, ok := m.completed[actionId]
	return ok
}

func (m *Machine) Progress() Progress {
	phase := m.CurrentPhase()
	done := 0
	for _, a := range phase.RequiredActions {
		if _, ok := m.completed[a.Id]; ok {
			done++
		}
	}
	total := len(phase.RequiredActions)
	pct := 100
	if total > 0 {
		pct = done * 100 / total
	}
	return Progress{PhaseId: phase.Id, Completed: done, Total: total, Percentage: pct}
}

// CanAdvance reports whether all required actions of the current phase are
// complete.
func (m *Machine) CanAdvance() bool {
	for _, a := range m.CurrentPhase().RequiredActions {
		if _, ok := m.completed[a.Id]; !ok {
			return false
		}
	}
	return true
}

// CanManuallyAdvance reports whether the user may move on voluntarily.
func (m *Machine) CanManuallyAdvance() bool {
	return m.CurrentPhase().AllowManualAdvancement || m.CanAdvance()
}

// AdvancementRequirements returns a human-readable reason for the current
// advancement state.
func (m *Machine) AdvancementRequirements() string {
	if m.CanAdvance() {
		return "all requirements completed"
	}
	if m.CurrentPhase().AllowManualAdvancement {
		return "ready to advance when you are"
	}
	var unmet []string
	for _, a := range m.CurrentPhase().RequiredActions {
		if _, ok := m.completed[a.Id]; !ok {
			unmet = append(unmet, a.Label)
		}
	}
	return fmt.Sprintf("still to do: %s", strings.Join(unmet, ", "))
}

// ForceAdvance unconditionally moves to the next phase. Returns false if the
// machine is already at the terminal phase.
func (m *Machine) ForceAdvance() bool {
	if m.idx >= len(m.phases)-1 {
		return false
	}
	m.advance()
	return true
}

// TimeInPhase returns the elapsed wall-clock time since the phase was
// entered, or 0 if it was never entered. An empty id means the current phase.
func (m *Machine) TimeInPhase(phaseId string) time.Duration {
	if phaseId == "" {
		phaseId = m.CurrentPhase().Id
	}
	started, ok := m.startedAt[phaseId]
	if !ok {
		return 0
	}
	return m.now().Sub(started)
}

// IsComplete reports whether the terminal phase's required actions are done.
func (m *Machine) IsComplete() bool {
	return m.idx == len(m.phases)-1 && m.CanAdvance()
}

func (m *Machine) advance() {
	m.idx++
	m.startedAt[m.phases[m.idx].Id] = m.now()
}
