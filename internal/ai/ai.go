package ai

import "context"

// Generator produces a free-text completion for a system instruction plus a
// user message. Implementations are shared by the screener, drafter and
// evaluator agents.
type Generator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}
