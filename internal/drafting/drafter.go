package drafting

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/dnzbykshn/career-responder/internal/ai"
	"github.com/dnzbykshn/career-responder/internal/profile"
	"github.com/dnzbykshn/career-responder/internal/utils"
	"go.uber.org/zap"
)

//go:embed system_prompt.md
var personaTemplate string

const defaultMaxLogLength = 200

// Drafter composes email replies on behalf of the candidate.
type Drafter struct {
	generator    ai.Generator
	systemPrompt string
	logger       *zap.Logger
	maxLogLen    int
}

func NewDrafter(generator ai.Generator, candidate *profile.Profile, logger *zap.Logger, maxLogLength int) *Drafter {
	if candidate == nil {
		candidate = profile.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Drafter{
		generator:    generator,
		systemPrompt: strings.ReplaceAll(personaTemplate, "{{PROFILE}}", candidate.Text()),
		logger:       logger,
		maxLogLen:    maxLogLength,
	}
}

// Generate produces the initial reply draft. The conversation context block,
// when present, precedes the compose instruction; it is omitted entirely for
// first contact.
func (d *Drafter) Generate(ctx context.Context, employerMessage, conversationContext string) (string, error) {
	var prompt strings.Builder
	if conversationContext != "" {
		prompt.WriteString(conversationContext)
		prompt.WriteString("\n---\n")
	}
	fmt.Fprintf(&prompt, "Please compose a professional email response to the following employer message:\n\n%s", employerMessage)

	return d.complete(ctx, prompt.String())
}

// Revise produces a corrected draft addressing every evaluator feedback point.
func (d *Drafter) Revise(ctx context.Context, employerMessage, priorDraft, feedback string) (string, error) {
	prompt := fmt.Sprintf(`Original employer message:
%s

Your previous response was evaluated and needs improvement.

## Previous Response
%s

## Evaluator Feedback
%s

## Instructions
Please revise the response addressing ALL the feedback points above.
Maintain the same professional tone and accuracy standards.
Respond ONLY with the revised email body text.
`, employerMessage, priorDraft, feedback)

	return d.complete(ctx, prompt)
}

func (d *Drafter) complete(ctx context.Context, prompt string) (string, error) {
	d.logger.Debug("drafting request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, d.maxLogLen)),
	)

	raw, err := d.generator.GenerateContent(ctx, d.systemPrompt, prompt)
	if err != nil {
		return "", err
	}

	draft := strings.TrimSpace(raw)

	d.logger.Debug("drafting response",
		zap.Int("draft_length", utf8.RuneCountInString(draft)),
		zap.String("draft_preview", utils.TruncateForLog(draft, d.maxLogLen)),
	)

	return draft, nil
}
