package phases

// Phase ids, in exercise order.
const (
	PhaseAssignment    = "ASSIGNMENT"
	PhaseResearch      = "RESEARCH"
	PhasePlanning      = "PLANNING"
	PhaseCollaboration = "COLLABORATION"
	PhaseFinalization  = "FINALIZATION"
)

// Action is a user activity that must occur before a phase is complete.
type Action struct {
	Id    string `json:"id"`
	Label string `json:"label"`
}

// Phase is a statically defined, immutable stage of the exercise.
type Phase struct {
	Id                     string   `json:"id"`
	Title                  string   `json:"title"`
	Icon                   string   `json:"icon,omitempty"`
	EstimatedTime          string   `json:"estimated_time,omitempty"`
	Objectives             []string `json:"objectives,omitempty"`
	RequiredActions        []Action `json:"required_actions"`
	AllowManualAdvancement bool     `json:"allow_manual_advancement"`
}

// DefaultPhases returns the fixed five-phase curriculum in order.
func DefaultPhases() []Phase {
	return []Phase{
		{
			Id:            PhaseAssignment,
			Title:         "Assignment Briefing",
			Icon:          "📋",
			EstimatedTime: "10 min",
			Objectives: []string{
				"Understand the product scenario and your role",
				"Get to know the team you will collaborate with",
			},
			RequiredActions: []Action{
				{Id: "read_brief", Label: "Read the assignment brief"},
				{Id: "meet_team", Label: "Review the team roster"},
			},
			AllowManualAdvancement: true,
		},
		{
			Id:            PhaseResearch,
			Title:         "Research & Discovery",
			Icon:          "🔍",
			EstimatedTime: "20 min",
			Objectives: []string{
				"Gather context from stakeholders",
				"Review the available product metrics",
			},
			RequiredActions: []Action{
				{Id: "interview_stakeholder", Label: "Interview at least one stakeholder"},
				{Id: "review_metrics", Label: "Review the product metrics"},
			},
			AllowManualAdvancement: true,
		},
		{
			Id:            PhasePlanning,
			Title:         "Planning",
			Icon:          "📝",
			EstimatedTime: "30 min",
			Objectives: []string{
				"Draft the one-pager for the initiative",
				"Define measurable success metrics",
			},
			RequiredActions: []Action{
				{Id: "draft_document", Label: "Draft the planning document"},
				{Id: "define_metrics", Label: "Define success metrics in the document"},
			},
			AllowManualAdvancement: false,
		},
		{
			Id:            PhaseCollaboration,
			Title:         "Collaboration & Review",
			Icon:          "💬",
			EstimatedTime: "20 min",
			Objectives: []string{
				"Collect feedback from the team",
				"Work reviewer comments into the draft",
			},
			RequiredActions: []Action{
				{Id: "request_review", Label: "Request a team review of the document"},
				{Id: "resolve_feedback", Label: "Resolve the feedback you received"},
			},
			AllowManualAdvancement: false,
		},
		{
			Id:            PhaseFinalization,
			Title:         "Finalization",
			Icon:          "🚀",
			EstimatedTime: "10 min",
			Objectives: []string{
				"Polish and finalize the document",
			},
			RequiredActions: []Action{
				{Id: "finalize_document", Label: "Finalize the document"},
			},
			AllowManualAdvancement: false,
		},
	}
}
