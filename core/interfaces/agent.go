// ABOUTME: Browsing agent capability consumed by the core, never implemented by it
// ABOUTME: The history is polymorphic; only this minimal surface may be relied on

package interfaces

import "context"

// AgentTask is the input bundle for one autonomous browsing run.
type AgentTask struct {
	// StartingURL is where the browsing session begins
	StartingURL string

	// Task is the user's request, contextualized for the agent
	Task string

	// SystemPrompt carries site knowledge plus the security contract
	SystemPrompt string
}

// AgentHistory is the minimal required surface of an agent run's result.
// Concrete agent engines return richer shapes; adapt them at the boundary
// rather than depending on any specific one.
type AgentHistory interface {
	// FinalText returns the agent's final free-text answer.
	FinalText() string

	// VisitedURLs returns the pages the agent navigated to, in order.
	VisitedURLs() []string

	// Errors returns any per-step error messages.
	Errors() []string
}

// BrowsingAgent runs an autonomous browsing session.
type BrowsingAgent interface {
	Run(ctx context.Context, task AgentTask) (AgentHistory, error)
}
