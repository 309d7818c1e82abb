package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"invoice-extract/bot"
	"invoice-extract/logger"
	"invoice-extract/whatsapp"
)

// EventRouter handles one inbound chat message.
type EventRouter interface {
	Handle(ctx context.Context, msg bot.Message) bot.Outcome
}

// WebhookHandler is the Cloud API callback endpoint.
type WebhookHandler struct {
	router      EventRouter
	verifyToken string
	logger      *zap.Logger
}

// NewWebhookHandler creates a WebhookHandler.
func NewWebhookHandler(router EventRouter, verifyToken string, log *zap.Logger) *WebhookHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WebhookHandler{router: router, verifyToken: verifyToken, logger: log}
}

// Verify answers the subscription handshake.
// GET /webhook?hub.mode=subscribe&hub.verify_token=...&hub.challenge=...
func (h *WebhookHandler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	if mode != "subscribe" || h.verifyToken == "" || token != h.verifyToken {
		logger.FromGin(c, h.logger).Warn("webhook verification rejected", zap.String("mode", mode))
		c.String(http.StatusForbidden, "forbidden")
		return
	}
	c.String(http.StatusOK, c.Query("hub.challenge"))
}

// Receive handles POST /webhook. It answers 200 whatever happens so the
// platform never redelivers an event.
func (h *WebhookHandler) Receive(c *gin.Context) {
	log := logger.FromGin(c, h.logger)

	body, err := c.GetRawData()
	if err != nil {
		log.Warn("failed to read webhook body", zap.Error(err))
		c.String(http.StatusOK, "ok")
		return
	}

	h.dispatch(context.WithoutCancel(c.Request.Context()), log, body)
	c.String(http.StatusOK, "ok")
}

func (h *WebhookHandler) dispatch(ctx context.Context, log *zap.Logger, body []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic while handling webhook", zap.Any("error", r), zap.Stack("stacktrace"))
		}
	}()

	env, err := whatsapp.ParseEnvelope(body)
	if err != nil {
		log.Warn("ignoring malformed webhook", zap.Error(err))
		return
	}
	msg, ok := env.FirstMessage()
	if !ok {
		log.Debug("webhook has no message")
		return
	}

	outcome := h.router.Handle(ctx, msg)
	logOutcome(log, msg, outcome)
}

func logOutcome(log *zap.Logger, msg bot.Message, outcome bot.Outcome) {
	fields := []zap.Field{
		zap.String("sender", msg.Sender),
		zap.String("message_id", msg.ID),
		zap.String("type", msg.Type),
		zap.Stringer("outcome", outcome.Kind),
		zap.Bool("replied", outcome.Reply != ""),
	}
	if outcome.Err != nil {
		fields = append(fields, zap.Error(outcome.Err))
	}

	switch outcome.Kind {
	case bot.OutcomeFatal:
		log.Error("message dropped", fields...)
	case bot.OutcomeRecovered:
		log.Warn("message handled with recovery", fields...)
	default:
		log.Info("message handled", fields...)
	}
}
