package evaluation

import (
	"context"
	"fmt"
	"math"
	"unicode/utf8"

	_ "embed"

	"github.com/dnzbykshn/career-responder/internal/ai"
	"github.com/dnzbykshn/career-responder/internal/utils"
	"go.uber.org/zap"
)

//go:embed system_prompt.md
var rubricPrompt string

const (
	defaultThreshold    = 7
	defaultMaxLogLength = 200
	neutralScore        = 5
	rawPreviewLimit     = 200
)

// Result carries the five rubric sub-scores plus the aggregate verdict.
// Overall and Approved are recomputed from the sub-scores; the model's
// self-reported values are not trusted.
type Result struct {
	ToneScore         int     `json:"tone_score"`
	ClarityScore      int     `json:"clarity_score"`
	CompletenessScore int     `json:"completeness_score"`
	SafetyScore       int     `json:"safety_score"`
	RelevanceScore    int     `json:"relevance_score"`
	OverallScore      float64 `json:"overall_score"`
	Feedback          string  `json:"feedback"`
	Approved          bool    `json:"approved"`
}

// Evaluator is the LLM-as-a-judge pass over drafted replies.
type Evaluator struct {
	generator ai.Generator
	threshold int
	logger    *zap.Logger
	maxLogLen int
}

func NewEvaluator(generator ai.Generator, threshold int, logger *zap.Logger, maxLogLength int) *Evaluator {
	if threshold <= 0 {
		threshold = defaultThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Evaluator{
		generator: generator,
		threshold: threshold,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (e *Evaluator) Threshold() int { return e.threshold }

// Evaluate scores a draft against the rubric. An unparseable model response
// yields the neutral unapproved fallback rather than an error; only a
// completion failure is surfaced as an error.
func (e *Evaluator) Evaluate(ctx context.Context, employerMessage, draft string) (*Result, error) {
	prompt := fmt.Sprintf(`## Employer's Original Message
%s

## Career Agent's Response
%s

## Threshold
The response is approved if overall_score >= %d. Set "approved" accordingly.

Evaluate now and respond with ONLY the JSON object.
`, employerMessage, draft, e.threshold)

	e.logger.Debug("evaluation request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("draft_preview", utils.TruncateForLog(draft, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, rubricPrompt, prompt)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("evaluation response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	var result Result
	if err := ai.DecodeJSON(raw, &result); err != nil {
		e.logger.Warn("evaluation response not parseable, using neutral fallback", zap.Error(err))
		return &Result{
			ToneScore:         neutralScore,
			ClarityScore:      neutralScore,
			CompletenessScore: neutralScore,
			SafetyScore:       neutralScore,
			RelevanceScore:    neutralScore,
			OverallScore:      float64(neutralScore),
			Feedback:          fmt.Sprintf("Failed to parse evaluator response. Raw: %s", utils.TruncateForLog(raw, rawPreviewLimit)),
			Approved:          false,
		}, nil
	}

	e.recompute(&result)

	return &result, nil
}

// recompute derives the aggregate verdict from the sub-scores, closing the
// trust gap where the model could report low sub-scores yet claim approval.
func (e *Evaluator) recompute(result *Result) {
	sum := result.ToneScore + result.ClarityScore + result.CompletenessScore +
		result.SafetyScore + result.RelevanceScore
	overall := math.Round(float64(sum)/5*10) / 10
	approved := overall >= float64(e.threshold)

	if result.OverallScore != overall || result.Approved != approved {
		e.logger.Debug("model-reported verdict overridden",
			zap.Float64("reported_overall", result.OverallScore),
			zap.Bool("reported_approved", result.Approved),
			zap.Float64("recomputed_overall", overall),
			zap.Bool("recomputed_approved", approved),
		)
	}

	result.OverallScore = overall
	result.Approved = approved
}
