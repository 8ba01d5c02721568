package phases

import (
	"testing"
	"time"
)

func twoPhases() []Phase {
	return []Phase{
		{
			Id: "FIRST",
			RequiredActions: []Action{
				{Id: "a1", Label: "Do the first thing"},
				{Id: "a2", Label: "Do the second thing"},
			},
			AllowManualAdvancement: true,
		},
		{
			Id: "LAST",
			RequiredActions: []Action{
				{Id: "b1", Label: "Finish up"},
			},
		},
	}
}

func TestCompleteActionAutoAdvances(t *testing.T) {
	m := NewMachine(twoPhases())

	p := m.CompleteAction("a1")
	if m.CurrentPhase().Id != "FIRST" {
		t.Fatal("must not advance with requirements outstanding")
	}
	if p.Completed != 1 || p.Total != 2 || p.Percentage != 50 {
		t.Errorf("progress = %+v", p)
	}

	p = m.CompleteAction("a2")
	if m.CurrentPhase().Id != "LAST" {
		t.Fatal("must auto-advance once all requirements are done")
	}
	if p.PhaseId != "LAST" {
		t.Errorf("progress reports %s, want the phase after advancing", p.PhaseId)
	}
}

func TestCompleteActionUnknownIdIsNoOp(t *testing.T) {
	m := NewMachine(twoPhases())

	m.CompleteAction("something_the_frontend_made_up")
	if m.CurrentPhase().Id != "FIRST" {
		t.Error("unknown action must not advance the phase")
	}
	if !m.ActionCompleted("something_the_frontend_made_up") {
		t.Error("unknown actions are still recorded")
	}
	if got := m.Progress(); got.Completed != 0 {
		t.Errorf("Completed = %d, want 0", got.Completed)
	}
}

func TestCompleteActionIsIdempotent(t *testing.T) {
	m := NewMachine(twoPhases())

	m.CompleteAction("a1")
	p := m.CompleteAction("a1")
	if p.Completed != 1 {
		t.Errorf("Completed = %d, want 1", p.Completed)
	}
}

func TestTerminalPhaseNeverAdvances(t *testing.T) {
	m := NewMachine(twoPhases())
	m.CompleteAction("a1")
	m.CompleteAction("a2")

	m.CompleteAction("b1")
	if m.CurrentPhase().Id != "LAST" {
		t.Error("terminal phase must hold")
	}
	if !m.IsComplete() {
		t.Error("IsComplete = false after finishing the terminal phase")
	}
	if m.ForceAdvance() {
		t.Error("ForceAdvance must refuse at the terminal phase")
	}
}

func TestManualAdvancement(t *testing.T) {
	m := NewMachine(twoPhases())

	if !m.CanManuallyAdvance() {
		t.Fatal("first phase allows manual advancement")
	}
	if m.CanAdvance() {
		t.Fatal("requirements are not met yet")
	}
	if !m.ForceAdvance() {
		t.Fatal("ForceAdvance failed")
	}
	if m.CurrentPhase().Id != "LAST" {
		t.Errorf("phase = %s", m.CurrentPhase().Id)
	}

	// The last phase has no manual escape hatch until its work is done.
	if m.CanManuallyAdvance() {
		t.Error("terminal phase with unmet requirements must not be manually advanceable")
	}
}

func TestAdvancementRequirements(t *testing.T) {
	m := NewMachine(twoPhases())

	if got := m.AdvancementRequirements(); got != "ready to advance when you are" {
		t.Errorf("got %q", got)
	}

	m.ForceAdvance()
	if got := m.AdvancementRequirements(); got != "still to do: Finish up" {
		t.Errorf("got %q", got)
	}

	m.CompleteAction("b1")
	if got := m.AdvancementRequirements(); got != "all requirements completed" {
		t.Errorf("got %q", got)
	}
}

func TestProgressWithNoRequiredActions(t *testing.T) {
	m := NewMachine([]Phase{{Id: "EMPTY"}})

	p := m.Progress()
	if p.Percentage != 100 {
		t.Errorf("Percentage = %d, want 100 for an empty requirement list", p.Percentage)
	}
	if !m.IsComplete() {
		t.Error("a single empty phase is complete immediately")
	}
}

func TestTimeInPhase(t *testing.T) {
	current := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	m := NewMachine(twoPhases(), WithClock(func() time.Time { return current }))

	current = current.Add(5 * time.Minute)
	if got := m.TimeInPhase(""); got != 5*time.Minute {
		t.Errorf("TimeInPhase current = %v", got)
	}

	m.ForceAdvance()
	current = current.Add(2 * time.Minute)

	if got := m.TimeInPhase("FIRST"); got != 7*time.Minute {
		t.Errorf("TimeInPhase FIRST = %v", got)
	}
	if got := m.TimeInPhase(""); got != 2*time.Minute {
		t.Errorf("TimeInPhase LAST = %v", got)
	}
	if got := m.TimeInPhase("NEVER_ENTERED"); got != 0 {
		t.Errorf("TimeInPhase unknown = %v", got)
	}
}

func TestDefaultPhasesShape(t *testing.T) {
	list := DefaultPhases()
	if len(list) != 5 {
		t.Fatalf("len = %d, want 5", len(list))
	}

	wantOrder := []string{PhaseAssignment, PhaseResearch, PhasePlanning, PhaseCollaboration, PhaseFinalization}
	for i, id := range wantOrder {
		if list[i].Id != id {
			t.Errorf("phase[%d] = %s, want %s", i, list[i].Id, id)
		}
	}

	for _, p := range list {
		if len(p.RequiredActions) == 0 {
			t.Errorf("phase %s has no required actions", p.Id)
		}
	}

	if !list[0].AllowManualAdvancement || !list[1].AllowManualAdvancement {
		t.Error("briefing and research must allow manual advancement")
	}
	if list[2].AllowManualAdvancement || list[3].AllowManualAdvancement || list[4].AllowManualAdvancement {
		t.Error("later phases must not allow manual advancement")
	}
}
