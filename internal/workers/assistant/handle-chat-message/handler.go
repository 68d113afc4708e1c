// internal/workers/assistant/handle-chat-message/handler.go
package handlechatmessage

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"dealer-assistant/internal/assistant"
	commonerrors "dealer-assistant/internal/common/errors"
	"dealer-assistant/internal/common/logger"
	"dealer-assistant/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "handle-chat-message"
)

// Responder answers one chat turn. *assistant.Assistant satisfies it.
type Responder interface {
	Respond(ctx context.Context, message, sessionID string) (*assistant.Reply, error)
}

type Handler struct {
	config       *Config
	logger       logger.Logger
	assistant    Responder
	errorHandler *commonerrors.ErrorHandler
	locks        *sessionLocks
	newSessionID func() string
}

func NewHandler(config *Config, a Responder, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		logger:       log,
		assistant:    a,
		errorHandler: commonerrors.NewErrorHandler(log),
		locks:        newSessionLocks(),
		newSessionID: uuid.NewString,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	started := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := parseInput(job.Variables)
	if err != nil {
		h.failJob(ctx, client, job, err, started)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.failJob(ctx, client, job, err, started)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.JobCompleted(TaskType, started)
}

// Execute answers the message. A missing session ID starts a new conversation.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, commonerrors.NewValidationError("message must not be blank", nil)
	}

	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = h.newSessionID()
	}

	unlock := h.locks.lock(sessionID)
	defer unlock()

	reply, err := h.assistant.Respond(ctx, message, sessionID)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("message answered", map[string]interface{}{
		"sessionId": sessionID,
		"intent":    string(reply.Intent),
	})

	return &Output{
		Reply:     reply.Text,
		Intent:    string(reply.Intent),
		SessionID: sessionID,
	}, nil
}

func parseInput(variables string) (*Input, error) {
	result, err := inputSchema.ValidateJSON(variables)
	if err != nil {
		return nil, commonerrors.NewValidationError("job variables are not valid JSON", err)
	}
	if !result.Valid {
		return nil, commonerrors.NewValidationError(result.Summary(), nil)
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, commonerrors.NewValidationError("parse input", err)
	}
	return &input, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error, started time.Time) {
	metrics.JobFailed(TaskType, string(commonerrors.Normalize(err).Code), started)
	h.errorHandler.HandleJobError(ctx, client, job, err)
}
