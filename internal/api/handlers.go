package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dnzbykshn/career-responder/internal/auditlog"
	"github.com/dnzbykshn/career-responder/internal/conversation"
	"github.com/dnzbykshn/career-responder/internal/delivery"
	"github.com/dnzbykshn/career-responder/internal/evaluation"
	"github.com/dnzbykshn/career-responder/internal/pipeline"
	"github.com/dnzbykshn/career-responder/internal/screening"
)

// pipelineTimeout bounds one full pipeline run, including the whole
// evaluate/revise loop.
const pipelineTimeout = 120 * time.Second

// Processor runs one inbound message through the full response pipeline.
type Processor interface {
	Process(ctx context.Context, msg pipeline.Message) (*pipeline.Outcome, error)
}

// Handler exposes the pipeline and its stores over HTTP.
type Handler struct {
	processor     Processor
	conversations conversation.Store
	logs          auditlog.Store
	logger        *zap.Logger
}

func NewHandler(processor Processor, conversations conversation.Store, logs auditlog.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		processor:     processor,
		conversations: conversations,
		logs:          logs,
		logger:        logger,
	}
}

// MessageRequest is one inbound employer message.
type MessageRequest struct {
	SenderName  string `json:"sender_name" binding:"required"`
	SenderEmail string `json:"sender_email" binding:"required,email"`
	Subject     string `json:"subject" binding:"required"`
	Message     string `json:"message" binding:"required"`
}

// MessageResponse mirrors the pipeline outcome on the wire.
type MessageResponse struct {
	Status              string               `json:"status"`
	ResponseText        string               `json:"response_text"`
	Evaluation          *evaluation.Result   `json:"evaluation,omitempty"`
	RevisionCount       int                  `json:"revision_count"`
	Confidence          *screening.Result    `json:"confidence,omitempty"`
	EmailResult         *delivery.Result     `json:"email_result,omitempty"`
	NotificationResult  *delivery.Result     `json:"notification_result,omitempty"`
	ConversationHistory []conversation.Entry `json:"conversation_history"`
}

// Health reports service liveness.
// GET /api/health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Career Assistant AI Agent",
	})
}

// ProcessMessage runs an employer message through the full pipeline and
// returns the terminal outcome.
// POST /api/message
func (h *Handler) ProcessMessage(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), pipelineTimeout)
	defer cancel()

	outcome, err := h.processor.Process(ctx, pipeline.Message{
		SenderName:  req.SenderName,
		SenderEmail: req.SenderEmail,
		Subject:     req.Subject,
		Body:        req.Message,
	})
	if err != nil {
		h.logger.Error("pipeline failed",
			zap.String("sender", req.SenderEmail),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}

	history := outcome.History
	if history == nil {
		history = []conversation.Entry{}
	}

	c.JSON(http.StatusOK, MessageResponse{
		Status:              outcome.Status,
		ResponseText:        outcome.ResponseText,
		Evaluation:          outcome.Evaluation,
		RevisionCount:       outcome.RevisionCount,
		Confidence:          outcome.Screening,
		EmailResult:         outcome.EmailResult,
		NotificationResult:  outcome.NotificationResult,
		ConversationHistory: history,
	})
}

// GetLogs returns all audit log entries, most recent first.
// GET /api/logs
func (h *Handler) GetLogs(c *gin.Context) {
	entries, err := h.logs.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if entries == nil {
		entries = []auditlog.Entry{}
	}

	c.JSON(http.StatusOK, gin.H{
		"total": len(entries),
		"logs":  entries,
	})
}

// ClearLogs wipes the audit log.
// DELETE /api/logs
func (h *Handler) ClearLogs(c *gin.Context) {
	if err := h.logs.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logs cleared successfully"})
}

// GetConversations returns every conversation thread grouped by sender.
// GET /api/conversations
func (h *Handler) GetConversations(c *gin.Context) {
	conversations, err := h.conversations.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if conversations == nil {
		conversations = map[string][]conversation.Entry{}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_employers": len(conversations),
		"conversations":   conversations,
	})
}

// GetConversationByEmail returns the thread for one sender. An unknown
// sender yields an empty history, not a 404.
// GET /api/conversations/:email
func (h *Handler) GetConversationByEmail(c *gin.Context) {
	email := c.Param("email")

	history, err := h.conversations.History(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if history == nil {
		history = []conversation.Entry{}
	}

	c.JSON(http.StatusOK, gin.H{
		"email":          email,
		"total_messages": len(history),
		"history":        history,
	})
}

// ClearConversations wipes every conversation thread.
// DELETE /api/conversations
func (h *Handler) ClearConversations(c *gin.Context) {
	if err := h.conversations.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Conversation history cleared successfully"})
}
