// internal/workers/outreach/send-bulk-inquiries/handler.go
package sendbulkinquiries

import (
	"context"
	"encoding/json"
	"time"

	"planora-workers/internal/common/errors"
	"planora-workers/internal/common/logger"
	"planora-workers/internal/common/metrics"
	"planora-workers/internal/engine/discovery"
	"planora-workers/internal/inquiry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "send-bulk-inquiries"
)

// InquiryLog supplies the vendors already contacted for an event, used to
// seed the dedup set before dispatch.
type InquiryLog interface {
	SentVendorIDs(ctx context.Context, eventID string) ([]string, error)
}

type Handler struct {
	config       *Config
	dispatcher   inquiry.Dispatcher
	log          InquiryLog
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, dispatcher inquiry.Dispatcher, inquiryLog InquiryLog, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		dispatcher:   dispatcher,
		log:          inquiryLog,
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
	sent, err := h.log.SentVendorIDs(ctx, input.EventID)
	if err != nil {
		return nil, err
	}
	dedup := discovery.NewDedupSet(sent...)

	result, err := discovery.SendBulkInquiries(ctx, h.dispatcher, dedup,
		input.EventID, input.UserID, input.VendorIDs, input.Message)
	if err != nil {
		return nil, err
	}

	metrics.InquiriesDispatched.WithLabelValues("sent").Add(float64(len(result.Sent)))
	metrics.InquiriesDispatched.WithLabelValues("skipped").Add(float64(len(result.Skipped)))
	metrics.InquiriesDispatched.WithLabelValues("failed").Add(float64(len(result.Failed)))

	h.logger.Info("bulk inquiries processed", map[string]interface{}{
		"eventId":       input.EventID,
		"sent":          len(result.Sent),
		"skipped":       len(result.Skipped),
		"failed":        len(result.Failed),
		"nothingToSend": result.NothingToSend,
	})

	return &Output{
		Sent:          result.Sent,
		Skipped:       result.Skipped,
		Failed:        result.Failed,
		NothingToSend: result.NothingToSend,
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
