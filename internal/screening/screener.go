package screening

import (
	"context"
	"fmt"
	"unicode/utf8"

	_ "embed"

	"github.com/dnzbykshn/career-responder/internal/ai"
	"github.com/dnzbykshn/career-responder/internal/utils"
	"go.uber.org/zap"
)

//go:embed prompt.md
var policyPrompt string

// lowConfidenceFloor forces a message into the flagged path whenever the
// model is unsure of its own verdict, whatever that verdict was.
const lowConfidenceFloor = 0.3

const defaultMaxLogLength = 200

// Categories a screening verdict can carry.
const (
	CategorySalary      = "salary"
	CategoryLegal       = "legal"
	CategoryOutOfDomain = "out_of_domain"
	CategoryAmbiguous   = "ambiguous"
	CategorySensitive   = "sensitive"
	CategorySafe        = "safe"
)

// Result is the screening verdict for an inbound employer message.
type Result struct {
	IsUnknown  bool    `json:"is_unknown"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
	Category   string  `json:"category"`
}

// Screener classifies inbound messages as safe to auto-answer or requiring
// human escalation.
type Screener struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
}

func NewScreener(generator ai.Generator, logger *zap.Logger, maxLogLength int) *Screener {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Screener{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Check analyzes a message and returns the screening verdict. An unparseable
// model response falls back to a cautious flag rather than an error; only a
// completion failure is surfaced as an error.
func (s *Screener) Check(ctx context.Context, message string) (*Result, error) {
	prompt := fmt.Sprintf("Analyze this employer message:\n\n%s", message)

	s.logger.Debug("screening request",
		zap.Int("message_length", utf8.RuneCountInString(message)),
		zap.String("message_preview", utils.TruncateForLog(message, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, policyPrompt, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("screening response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, s.maxLogLen)),
	)

	var result Result
	if err := ai.DecodeJSON(raw, &result); err != nil {
		s.logger.Warn("screening response not parseable, flagging for review", zap.Error(err))
		return &Result{
			IsUnknown:  true,
			Confidence: 0.5,
			Reason:     "Failed to analyze message — flagging for human review.",
			Category:   CategoryAmbiguous,
		}, nil
	}

	if !result.IsUnknown && result.Confidence < lowConfidenceFloor {
		reason := result.Reason
		if reason == "" {
			reason = "Uncertain analysis"
		}
		result.IsUnknown = true
		result.Reason = fmt.Sprintf("Low confidence (%v): %s", result.Confidence, reason)

		s.logger.Debug("screening overridden by confidence floor",
			zap.Float64("confidence", result.Confidence),
			zap.Float64("floor", lowConfidenceFloor),
		)
	}

	return &result, nil
}
