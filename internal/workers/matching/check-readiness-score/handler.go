// internal/workers/matching/check-readiness-score/handler.go
package checkreadinessscore

import (
	"context"
	"encoding/json"
	"time"

	"planora-workers/internal/common/errors"
	"planora-workers/internal/common/logger"
	"planora-workers/internal/common/metrics"
	"planora-workers/internal/engine/budget"
	"planora-workers/internal/engine/lifecycle"
	"planora-workers/internal/engine/readiness"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "check-readiness-score"
)

type Handler struct {
	config       *Config
	guide        budget.Guide
	tracker      *lifecycle.Tracker
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler builds the readiness worker. The tracker may be nil; vendor
// counts then always come from the input.
func NewHandler(config *Config, guide budget.Guide, tracker *lifecycle.Tracker, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		guide:        guide,
		tracker:      tracker,
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	in := readiness.Input{
		EventType:              input.EventType,
		SelectedServiceCount:   input.SelectedServiceCount,
		ConfirmedVendorCount:   input.ConfirmedVendorCount,
		ShortlistedVendorCount: input.ShortlistedVendorCount,
		InquiryCount:           input.InquiryCount,
		BudgetMin:              input.BudgetMin,
		BudgetMax:              input.BudgetMax,
		EventDate:              input.EventDate,
	}

	if h.tracker != nil && input.EventID != "" {
		counts, err := h.tracker.CountsForEvent(ctx, input.EventID)
		if err != nil {
			// Lifecycle data is advisory; fall back to the input counts.
			h.logger.Warn("failed to load tracked vendor counts", map[string]interface{}{
				"eventId": input.EventID,
				"error":   err,
			})
		} else {
			in.ConfirmedVendorCount = counts[lifecycle.StatusConfirmed]
			in.ShortlistedVendorCount = counts[lifecycle.StatusShortlisted] + counts[lifecycle.StatusNegotiating]
		}
	}

	result := readiness.Calculate(in, h.guide.Lookup(input.EventType))

	h.logger.Info("readiness score calculated", map[string]interface{}{
		"eventId":   input.EventID,
		"eventType": input.EventType,
		"score":     result.Score,
		"label":     result.Label,
	})

	return &Output{
		ReadinessScore: result.Score,
		Label:          result.Label,
		Breakdown:      result.Breakdown,
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
