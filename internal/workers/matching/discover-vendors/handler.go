// internal/workers/matching/discover-vendors/handler.go
package discovervendors

import (
	"context"
	"encoding/json"
	"time"

	"planora-workers/internal/common/errors"
	"planora-workers/internal/common/logger"
	"planora-workers/internal/common/metrics"
	"planora-workers/internal/engine/discovery"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "discover-vendors"
)

type Handler struct {
	config       *Config
	pipeline     *discovery.Pipeline
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, pipeline *discovery.Pipeline, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		pipeline:     pipeline,
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
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode(err)).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	event := discovery.Event{
		EventID:            input.EventID,
		City:               input.City,
		EventType:          input.EventType,
		RequiredServiceIDs: input.RequiredServiceIDs,
		BudgetMin:          input.BudgetMin,
		BudgetMax:          input.BudgetMax,
	}
	opts := discovery.Options{
		SortBy:      input.SortBy,
		ServiceName: input.ServiceName,
		Page:        input.Page,
	}

	page, err := h.pipeline.Discover(ctx, event, opts)
	if err != nil {
		return nil, err
	}

	metrics.VendorsDiscovered.WithLabelValues(input.EventType).Observe(float64(page.FilteredCount))
	h.logger.Info("vendors discovered", map[string]interface{}{
		"eventId":       input.EventID,
		"city":          input.City,
		"filteredCount": page.FilteredCount,
		"page":          page.Page,
		"totalPages":    page.TotalPages,
	})

	return &Output{
		Vendors:       page.Vendors,
		Page:          page.Page,
		TotalPages:    page.TotalPages,
		FilteredCount: page.FilteredCount,
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

func errorCode(err error) string {
	if stdErr, ok := err.(*errors.StandardError); ok {
		return string(stdErr.Code)
	}
	return "UNKNOWN"
}
