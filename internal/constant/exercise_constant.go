package constant

import (
	"pm-studio-be/pkg/store"
)

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
	ChatRoleSystem    = "system"
)

// ScenarioDocumentV1 seeds the participant's working document when an
// exercise starts.
const ScenarioDocumentV1 = `# ShopSphere Checkout Initiative

## Problem
ShopSphere checkout abandonment is high. Roughly 68% of shoppers who add an
item to the cart never finish paying, well above the 45% industry median.

## Proposal
Reduce checkout to a single page, add guest checkout, and support one-tap
wallet payments.

## Success Metrics
TBD.

## Risks
TBD.
`

// ChatPersonaPromptV1 frames a persona for free-form conversation with the
// participant. Kept separate from the review prompt, which demands JSON.
const ChatPersonaPromptV1 = `You are %s, a %s at ShopSphere, chatting with a product manager colleague inside the company messenger.

Stay in character. Answer from your role's perspective, keep replies short and conversational (1-3 sentences), and never mention that you are an AI.`

// UnavailableChatReplyV1 is returned without a generation call when the
// persona is offline.
const UnavailableChatReplyV1 = "%s is offline right now. Try again later or pick another teammate."

// SharedDocumentTemplates maps a reviewer id to the knowledge document that
// persona hands off when the participant asks. One per persona; sharing is
// idempotent.
func SharedDocumentTemplates() map[string]struct{ Title, Summary string } {
	return map[string]struct{ Title, Summary string }{
		"eng-lead":  {Title: "Checkout Service Architecture Notes", Summary: "Current checkout flow, payment gateway constraints, and known latency hotspots."},
		"designer":  {Title: "Checkout Usability Test Findings", Summary: "Session recordings summary: where shoppers hesitate or abandon."},
		"analyst":   {Title: "Funnel Metrics Q2", Summary: "Step-by-step conversion funnel with abandonment percentages per device."},
		"marketing": {Title: "Competitor Checkout Teardown", Summary: "How the top three competitors structure their checkout and guest flows."},
		"support":   {Title: "Top Checkout Complaints", Summary: "Most frequent support tickets mentioning payment or checkout."},
	}
}

// DefaultRoster returns the fixed reviewer personas for the ShopSphere
// scenario. Availability is part of the scenario: the data analyst is away
// and the support lead is offline.
func DefaultRoster() []store.ReviewerPersona {
	return []store.ReviewerPersona{
		{Id: "eng-lead", Name: "Maya Chen", Role: "Engineering Lead", Avatar: "👩‍💻", Status: store.StatusOnline},
		{Id: "designer", Name: "Jonas Richter", Role: "Product Designer", Avatar: "🎨", Status: store.StatusOnline},
		{Id: "analyst", Name: "Priya Nair", Role: "Data Analyst", Avatar: "📊", Status: store.StatusAway},
		{Id: "marketing", Name: "Sam Okafor", Role: "Marketing Manager", Avatar: "📣", Status: store.StatusOnline},
		{Id: "support", Name: "Lena Fischer", Role: "Support Lead", Avatar: "🎧", Status: store.StatusOffline},
	}
}
