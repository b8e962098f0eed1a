// internal/workers/budget/evaluate-budget-health/handler.go
package evaluatebudgethealth

import (
	"context"
	"encoding/json"
	"time"

	"planora-workers/internal/common/errors"
	"planora-workers/internal/common/logger"
	"planora-workers/internal/common/metrics"
	"planora-workers/internal/engine/budget"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "evaluate-budget-health"
)

type Handler struct {
	config       *Config
	guide        budget.Guide
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, guide budget.Guide, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		guide:        guide,
		errorHandler: errors.NewErrorHandler(l),
		logger:       l,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.ErrCodeValidationFailed)).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, errors.NewValidationFailedError(err.Error()))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "UNKNOWN").Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	health := budget.EvaluateHealth(h.guide, input.EventType, input.BudgetMin, input.BudgetMax)
	if health == nil {
		h.logger.Info("no guidance for event type", map[string]interface{}{
			"eventId":   input.EventID,
			"eventType": input.EventType,
		})
		return &Output{Known: false}, nil
	}

	entry := h.guide.Lookup(input.EventType)
	plan := budget.DistributionPlan(h.guide, input.EventType)

	h.logger.Info("budget health evaluated", map[string]interface{}{
		"eventId":   input.EventID,
		"eventType": input.EventType,
		"status":    string(health.Status),
	})

	return &Output{
		Known:             true,
		Status:            string(health.Status),
		Label:             health.Label,
		Description:       health.Description,
		SuggestedServices: entry.SuggestedServices,
		Distribution:      budget.PlanAmounts(plan, input.BudgetMin, input.BudgetMax),
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
