// ABOUTME: Relevance engine: semantic strategy first, keyword fallback on failure
// ABOUTME: Breaches are never swallowed by the fallback path

package relevance

import (
	"context"

	"navassist-api/core/domain"
	coreerrors "navassist-api/core/errors"
	"navassist-api/core/interfaces"
)

// Engine combines both strategies. The semantic strategy is attempted
// first when configured; every failure except a security breach degrades
// to the deterministic keyword ranking so the caller always gets a list.
type Engine struct {
	semantic *SemanticStrategy
	keyword  *KeywordStrategy
	logger   interfaces.Logger
}

// NewEngine creates an engine. semantic may be nil, in which case only
// the keyword strategy runs.
func NewEngine(semantic *SemanticStrategy, keyword *KeywordStrategy, logger interfaces.Logger) *Engine {
	return &Engine{semantic: semantic, keyword: keyword, logger: logger}
}

// MapQuery ranks the inventory for query. The only error it returns is a
// SecurityBreachError, which callers must surface, never retry.
func (e *Engine) MapQuery(ctx context.Context, query string, inventory []domain.InventoryPage) ([]domain.RelevanceCandidate, error) {
	if e.semantic != nil {
		candidates, err := e.semantic.Score(ctx, query, inventory)
		if err == nil {
			return candidates, nil
		}
		if coreerrors.IsSecurityBreach(err) {
			return nil, err
		}
		e.logger.Warn("Semantic ranking failed, falling back to keyword strategy", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return e.keyword.Score(query, inventory), nil
}
