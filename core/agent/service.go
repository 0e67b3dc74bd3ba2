// ABOUTME: Agent task service: routes the starting URL, builds prompts, runs the
// ABOUTME: browsing agent and post-processes its history into a safe report

package agent

import (
	"context"
	"fmt"
	"strings"

	"navassist-api/core/domain"
	coreerrors "navassist-api/core/errors"
	"navassist-api/core/interfaces"
	"navassist-api/core/navigation"
	"navassist-api/core/security"
)

// Service prepares and executes browsing sessions. The browsing engine is
// injected; the core only shapes its inputs and sanitizes its outputs.
type Service struct {
	agent  interfaces.BrowsingAgent
	router *navigation.Router
	logger interfaces.Logger
}

// NewService creates the agent service. agent may be nil when the
// deployment only maps queries without running browsing sessions.
func NewService(agent interfaces.BrowsingAgent, router *navigation.Router, logger interfaces.Logger) *Service {
	return &Service{agent: agent, router: router, logger: logger}
}

// PrepareTask assembles the agent inputs for one query: the routed
// starting URL, the combined security-plus-site system prompt, and the
// phrased task.
func (s *Service) PrepareTask(site *domain.SiteStructure, candidates []domain.RelevanceCandidate, query, baseURL string) interfaces.AgentTask {
	startingURL := s.router.ChooseStart(candidates, baseURL)
	startsOnRelevantPage := startingURL != baseURL

	return interfaces.AgentTask{
		StartingURL:  startingURL,
		Task:         navigation.TaskPrompt(startingURL, query),
		SystemPrompt: navigation.AgentSystemPrompt(baseURL, navigation.SystemPrompt(site), startsOnRelevantPage),
	}
}

// Run executes task and returns the sanitized markdown report. A breach
// sentinel in the agent's answer becomes a SecurityBreachError; the raw
// output is never returned in that case.
func (s *Service) Run(ctx context.Context, task interfaces.AgentTask) (string, error) {
	if s.agent == nil {
		return "", &coreerrors.EngineUnavailableError{Cause: fmt.Errorf("no browsing agent configured")}
	}

	history, err := s.agent.Run(ctx, task)
	if err != nil {
		return "", coreerrors.WrapError(err, "agent run failed")
	}

	final := history.FinalText()
	if strings.Contains(final, security.BreachSentinel) {
		reason := strings.TrimSpace(strings.TrimPrefix(final[strings.Index(final, security.BreachSentinel)+len(security.BreachSentinel):], ":"))
		if reason == "" {
			reason = "breach sentinel in agent output"
		}
		s.logger.Warn("Agent reported security breach", map[string]interface{}{"reason": reason})
		return "", &coreerrors.SecurityBreachError{Reason: reason}
	}

	return CleanResult(BuildReport(history, task)), nil
}

// SecurityAlert is the user-facing text shown instead of agent output
// when a breach was detected. The adversarial query is never echoed.
func SecurityAlert(reason string) string {
	return fmt.Sprintf(`**SECURITY ALERT**

The system has detected a potential security issue with your request. Processing has been halted for your protection.

**Details**: %s

For your safety, please:
- Focus your query on legitimate website information
- Avoid including code, commands, or unusual instructions in your queries
- Use natural language to ask about website content

If you believe this is an error, please try rephrasing your request in simpler terms.`, reason)
}
