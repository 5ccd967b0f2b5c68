package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dnzbykshn/career-responder/internal/auditlog"
	"github.com/dnzbykshn/career-responder/internal/conversation"
	"github.com/dnzbykshn/career-responder/internal/delivery"
	"github.com/dnzbykshn/career-responder/internal/evaluation"
	"github.com/dnzbykshn/career-responder/internal/screening"
	"go.uber.org/zap"
)

// Terminal statuses of a pipeline run.
const (
	StatusApproved       = conversation.StatusApproved
	StatusSentUnapproved = conversation.StatusSentUnapproved
	StatusFlaggedUnknown = conversation.StatusFlaggedUnknown
)

const defaultMaxRevisions = 3

// Message is one inbound employer message.
type Message struct {
	SenderName  string
	SenderEmail string
	Subject     string
	Body        string
}

// Outcome is the result of processing one message end to end.
type Outcome struct {
	Status             string
	ResponseText       string
	Evaluation         *evaluation.Result
	RevisionCount      int
	Screening          *screening.Result
	EmailResult        *delivery.Result
	NotificationResult *delivery.Result
	History            []conversation.Entry
}

// Screener classifies an inbound message before any draft is produced.
type Screener interface {
	Check(ctx context.Context, message string) (*screening.Result, error)
}

// Drafter produces and revises reply drafts.
type Drafter interface {
	Generate(ctx context.Context, employerMessage, conversationContext string) (string, error)
	Revise(ctx context.Context, employerMessage, priorDraft, feedback string) (string, error)
}

// Evaluator judges a draft against the rubric.
type Evaluator interface {
	Evaluate(ctx context.Context, employerMessage, draft string) (*evaluation.Result, error)
}

// EmailSender delivers the final reply.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) *delivery.Result
}

// Notifier pushes status updates to the candidate.
type Notifier interface {
	NewMessage(ctx context.Context, senderName, subject string) *delivery.Result
	ResponseSent(ctx context.Context, senderName string, score float64) *delivery.Result
	HumanNeeded(ctx context.Context, senderName, reason string) *delivery.Result
}

// Deps aggregates the collaborators a Pipeline sequences.
type Deps struct {
	Screener      Screener
	Drafter       Drafter
	Evaluator     Evaluator
	Email         EmailSender
	Notifier      Notifier
	Conversations conversation.Store
	Logs          auditlog.Store
	Logger        *zap.Logger
}

// Pipeline runs the screen → draft → evaluate/revise → deliver sequence for
// each inbound message. Runs for the same sender are serialized so one
// sender's exchanges land in arrival order; unrelated senders proceed
// concurrently.
type Pipeline struct {
	deps         Deps
	maxRevisions int
	now          func() time.Time

	mu          sync.Mutex
	senderLocks map[string]*sync.Mutex
}

func New(deps Deps, maxRevisions int) *Pipeline {
	if maxRevisions < 0 {
		maxRevisions = defaultMaxRevisions
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Pipeline{
		deps:         deps,
		maxRevisions: maxRevisions,
		now:          time.Now,
		senderLocks:  make(map[string]*sync.Mutex),
	}
}

// Process handles one inbound message to a terminal outcome. Completion
// failures abort with an error; delivery failures are folded into the outcome
// and never block the conversation or audit writes.
func (p *Pipeline) Process(ctx context.Context, msg Message) (*Outcome, error) {
	logger := p.deps.Logger.With(zap.String("sender", msg.SenderEmail))
	logger.Info("processing inbound message", zap.String("subject", msg.Subject))

	// The new-message notification fires before screening, unconditionally.
	p.deps.Notifier.NewMessage(ctx, msg.SenderName, msg.Subject)

	screen, err := p.deps.Screener.Check(ctx, msg.Body)
	if err != nil {
		return nil, fmt.Errorf("screening: %w", err)
	}

	lock := p.senderLock(msg.SenderEmail)
	lock.Lock()
	defer lock.Unlock()

	if screen.IsUnknown {
		return p.flag(ctx, msg, screen, logger)
	}

	history, err := p.deps.Conversations.History(msg.SenderEmail)
	if err != nil {
		return nil, fmt.Errorf("loading conversation history: %w", err)
	}

	draft, err := p.deps.Drafter.Generate(ctx, msg.Body, conversation.ContextPrompt(history))
	if err != nil {
		return nil, fmt.Errorf("drafting: %w", err)
	}

	revisions := 0
	var eval *evaluation.Result

	for attempt := 0; attempt <= p.maxRevisions; attempt++ {
		eval, err = p.deps.Evaluator.Evaluate(ctx, msg.Body, draft)
		if err != nil {
			return nil, fmt.Errorf("evaluating: %w", err)
		}

		logger.Debug("draft evaluated",
			zap.Int("attempt", attempt+1),
			zap.Float64("overall_score", eval.OverallScore),
			zap.Bool("approved", eval.Approved),
		)

		if eval.Approved {
			break
		}

		if attempt < p.maxRevisions {
			revisions++
			draft, err = p.deps.Drafter.Revise(ctx, msg.Body, draft, eval.Feedback)
			if err != nil {
				return nil, fmt.Errorf("revising: %w", err)
			}
		}
	}

	status := StatusApproved
	if !eval.Approved {
		status = StatusSentUnapproved
		logger.Warn("revision attempts exhausted, sending best-effort draft",
			zap.Int("revisions", revisions),
			zap.Float64("overall_score", eval.OverallScore),
		)
	}

	emailResult := p.deps.Email.Send(ctx, msg.SenderEmail, fmt.Sprintf("Re: %s", msg.Subject), draft)
	notifResult := p.deps.Notifier.ResponseSent(ctx, msg.SenderName, eval.OverallScore)

	if err := p.deps.Conversations.Append(msg.SenderEmail, conversation.Entry{
		EmployerMessage: msg.Body,
		AgentResponse:   draft,
		Status:          status,
		Timestamp:       p.now(),
	}); err != nil {
		return nil, fmt.Errorf("recording conversation: %w", err)
	}

	if err := p.deps.Logs.Append(auditlog.Entry{
		Timestamp:       p.now(),
		SenderName:      msg.SenderName,
		SenderEmail:     msg.SenderEmail,
		Subject:         msg.Subject,
		EmployerMessage: msg.Body,
		ResponseText:    draft,
		Evaluation:      eval,
		RevisionCount:   revisions,
		Status:          status,
		Screening:       screen,
	}); err != nil {
		return nil, fmt.Errorf("recording audit log: %w", err)
	}

	history, err = p.deps.Conversations.History(msg.SenderEmail)
	if err != nil {
		return nil, fmt.Errorf("loading conversation history: %w", err)
	}

	logger.Info("response sent",
		zap.String("status", status),
		zap.Int("revisions", revisions),
		zap.Float64("overall_score", eval.OverallScore),
		zap.Bool("email_delivered", emailResult.Success),
	)

	return &Outcome{
		Status:             status,
		ResponseText:       draft,
		Evaluation:         eval,
		RevisionCount:      revisions,
		Screening:          screen,
		EmailResult:        emailResult,
		NotificationResult: notifResult,
		History:            history,
	}, nil
}

// flag is the early-exit path for messages the agent cannot safely answer.
// It is a terminal success, not an error: no draft exists and no email goes
// out, but the exchange is still recorded and the candidate is paged.
func (p *Pipeline) flag(ctx context.Context, msg Message, screen *screening.Result, logger *zap.Logger) (*Outcome, error) {
	logger.Info("message flagged for human review",
		zap.String("category", screen.Category),
		zap.Float64("confidence", screen.Confidence),
	)

	notifResult := p.deps.Notifier.HumanNeeded(ctx, msg.SenderName, screen.Reason)

	if err := p.deps.Conversations.Append(msg.SenderEmail, conversation.Entry{
		EmployerMessage: msg.Body,
		AgentResponse:   "",
		Status:          StatusFlaggedUnknown,
		Timestamp:       p.now(),
	}); err != nil {
		return nil, fmt.Errorf("recording conversation: %w", err)
	}

	if err := p.deps.Logs.Append(auditlog.Entry{
		Timestamp:       p.now(),
		SenderName:      msg.SenderName,
		SenderEmail:     msg.SenderEmail,
		Subject:         msg.Subject,
		EmployerMessage: msg.Body,
		Status:          StatusFlaggedUnknown,
		Screening:       screen,
	}); err != nil {
		return nil, fmt.Errorf("recording audit log: %w", err)
	}

	history, err := p.deps.Conversations.History(msg.SenderEmail)
	if err != nil {
		return nil, fmt.Errorf("loading conversation history: %w", err)
	}

	return &Outcome{
		Status:             StatusFlaggedUnknown,
		Screening:          screen,
		NotificationResult: notifResult,
		History:            history,
	}, nil
}

func (p *Pipeline) senderLock(sender string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()

	lock, ok := p.senderLocks[sender]
	if !ok {
		lock = &sync.Mutex{}
		p.senderLocks[sender] = lock
	}
	return lock
}
