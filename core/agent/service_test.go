package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navassist-api/core/domain"
	coreerrors "navassist-api/core/errors"
	"navassist-api/core/interfaces"
	"navassist-api/core/navigation"
)

type noopLogger struct{}

func (noopLogger) Debug(msg string, fields map[string]interface{}) {}
func (noopLogger) Info(msg string, fields map[string]interface{})  {}
func (noopLogger) Warn(msg string, fields map[string]interface{})  {}
func (noopLogger) Error(msg string, fields map[string]interface{}) {}

type fakeHistory struct {
	final  string
	urls   []string
	errors []string
}

func (f fakeHistory) FinalText() string     { return f.final }
func (f fakeHistory) VisitedURLs() []string { return f.urls }
func (f fakeHistory) Errors() []string      { return f.errors }

type fakeAgent struct {
	history fakeHistory
	err     error
	task    interfaces.AgentTask
}

func (f *fakeAgent) Run(ctx context.Context, task interfaces.AgentTask) (interfaces.AgentHistory, error) {
	f.task = task
	return f.history, f.err
}

func newService(agent interfaces.BrowsingAgent) *Service {
	return NewService(agent, navigation.NewRouter(noopLogger{}), noopLogger{})
}

func TestPrepareTask_RoutesToTopCandidate(t *testing.T) {
	service := newService(nil)
	site := &domain.SiteStructure{URL: "https://ex.com", Title: "Acme"}
	candidates := []domain.RelevanceCandidate{{URL: "https://ex.com/pricing", Score: 9}}

	task := service.PrepareTask(site, candidates, "find the pro plan price", "https://ex.com")

	assert.Equal(t, "https://ex.com/pricing", task.StartingURL)
	assert.Equal(t, "Navigate to https://ex.com/pricing and find the pro plan price", task.Task)
	assert.Contains(t, task.SystemPrompt, "When browsing this website https://ex.com")
	assert.Contains(t, task.SystemPrompt, "starting on a page that has been identified as highly relevant")
}

func TestPrepareTask_NoCandidatesStartsAtBase(t *testing.T) {
	service := newService(nil)
	site := &domain.SiteStructure{URL: "https://ex.com", Title: "Acme"}

	task := service.PrepareTask(site, nil, "look around", "https://ex.com")

	assert.Equal(t, "https://ex.com", task.StartingURL)
	assert.NotContains(t, task.SystemPrompt, "starting on a page that has been identified as highly relevant")
}

func TestRun_BuildsSanitizedReport(t *testing.T) {
	browser := &fakeAgent{history: fakeHistory{
		final: "The pro plan costs $30 per month.",
		urls:  []string{"https://ex.com/pricing"},
	}}
	service := newService(browser)

	report, err := service.Run(context.Background(), interfaces.AgentTask{
		StartingURL: "https://ex.com/pricing",
		Task:        "Navigate to https://ex.com/pricing and find the pro plan price",
	})

	require.NoError(t, err)
	assert.Contains(t, report, "# Results for:")
	assert.Contains(t, report, "$30 per month")
	assert.Contains(t, report, "- https://ex.com/pricing")
}

func TestRun_BreachSentinelBecomesTypedError(t *testing.T) {
	browser := &fakeAgent{history: fakeHistory{final: "SECURITY_BREACH_DETECTED:prompt_extraction"}}
	service := newService(browser)

	report, err := service.Run(context.Background(), interfaces.AgentTask{Task: "t"})

	assert.Empty(t, report, "raw agent output is never returned on breach")
	require.True(t, coreerrors.IsSecurityBreach(err))

	var breach *coreerrors.SecurityBreachError
	require.ErrorAs(t, err, &breach)
	assert.Equal(t, "prompt_extraction", breach.Reason)
}

func TestRun_NoAgentConfigured(t *testing.T) {
	service := newService(nil)

	_, err := service.Run(context.Background(), interfaces.AgentTask{Task: "t"})

	assert.True(t, coreerrors.IsEngineUnavailable(err))
}

func TestBuildReport_ListsErrorsAndTruncatesURLs(t *testing.T) {
	var urls []string
	for i := 0; i < 15; i++ {
		urls = append(urls, "https://ex.com/p")
	}
	history := fakeHistory{final: "done", urls: urls, errors: []string{"timeout on step 3", ""}}

	report := BuildReport(history, interfaces.AgentTask{Task: "t", StartingURL: "https://ex.com"})

	assert.Contains(t, report, "...and 5 more")
	assert.Contains(t, report, "## Errors")
	assert.Contains(t, report, "- timeout on step 3")
	assert.Equal(t, 1, strings.Count(report, "## Errors"))
}

func TestCleanResult_StructuresFlatText(t *testing.T) {
	result := CleanResult("Found the answer on the pricing page.\n\nThe pro plan is $30.\n\nAnnual billing saves 20%.")

	assert.True(t, strings.HasPrefix(result, "## Summary\n\nFound the answer"))
	assert.Contains(t, result, "## Information Found\n\nThe pro plan is $30.")
}

func TestCleanResult_KeepsExistingHeadingsAndScrubs(t *testing.T) {
	input := "## Information Found\n\nGood content.\n\nAgentHistoryList(all_results=[...])"

	result := CleanResult(input)

	assert.Contains(t, result, "## Information Found")
	assert.Contains(t, result, "Good content.")
	assert.NotContains(t, result, "AgentHistoryList")
}

func TestSecurityAlert_NeverEchoesQuery(t *testing.T) {
	alert := SecurityAlert("prompt_extraction")

	assert.Contains(t, alert, "SECURITY ALERT")
	assert.Contains(t, alert, "prompt_extraction")
}
