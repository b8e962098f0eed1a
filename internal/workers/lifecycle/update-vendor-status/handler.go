// internal/workers/lifecycle/update-vendor-status/handler.go
package updatevendorstatus

import (
	"context"
	"encoding/json"
	"time"

	"planora-workers/internal/common/errors"
	"planora-workers/internal/common/logger"
	"planora-workers/internal/common/metrics"
	"planora-workers/internal/engine/lifecycle"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "update-vendor-status"
)

type Handler struct {
	config       *Config
	tracker      *lifecycle.Tracker
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, tracker *lifecycle.Tracker, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
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

	raw := []byte(job.Variables)
	if err := validateInput(raw); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.ErrCodeValidationFailed)).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	var input Input
	if err := json.Unmarshal(raw, &input); err != nil {
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
	output := &Output{
		EventID:  input.EventID,
		VendorID: input.VendorID,
	}

	if input.Remove {
		if err := h.tracker.Remove(ctx, input.EventID, input.VendorID); err != nil {
			return nil, err
		}
		output.Removed = true
	} else {
		status, err := lifecycle.ParseStatus(input.Status)
		if err != nil {
			return nil, errors.NewInvalidLifecycleStatusError(input.Status)
		}
		if err := h.tracker.Set(ctx, input.EventID, input.VendorID, status, input.VendorName); err != nil {
			return nil, err
		}
		output.Status = string(status)
	}

	counts, err := h.tracker.CountsForEvent(ctx, input.EventID)
	if err != nil {
		return nil, err
	}
	output.Counts = make(map[string]int, len(counts))
	for status, n := range counts {
		output.Counts[string(status)] = n
	}

	h.logger.Info("vendor status updated", map[string]interface{}{
		"eventId":  input.EventID,
		"vendorId": input.VendorID,
		"status":   output.Status,
		"removed":  output.Removed,
	})

	return output, nil
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
