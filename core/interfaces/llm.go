// ABOUTME: LLM client interface for chat-style completions
// ABOUTME: Completions are untrusted text; callers must validate before use

package interfaces

import "context"

// LLMClient performs a single chat completion. The returned text is
// untrusted: callers must run sentinel and whitelist checks on it and
// must never execute it.
type LLMClient interface {
	// Complete sends a system prompt and user prompt and returns the
	// model's completion text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
