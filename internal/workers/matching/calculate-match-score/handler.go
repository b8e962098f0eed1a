// internal/workers/matching/calculate-match-score/handler.go
package calculatematchscore

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"planora-workers/internal/catalog"
	"planora-workers/internal/common/errors"
	"planora-workers/internal/common/logger"
	"planora-workers/internal/common/metrics"
	"planora-workers/internal/engine/discovery"
	"planora-workers/internal/engine/matchscore"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "calculate-match-score"
)

type Handler struct {
	config       *Config
	db           *sql.DB
	redis        *redis.Client
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, db *sql.DB, redisClient *redis.Client, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		db:           db,
		redis:        redisClient,
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
	profile := input.VendorProfile
	if profile == nil {
		var err error
		profile, err = h.getVendorProfile(ctx, input.VendorID)
		if err != nil {
			return nil, err
		}
	}
	profile.Normalize()

	event := discovery.Event{
		EventID:            input.EventID,
		EventType:          input.EventType,
		RequiredServiceIDs: input.RequiredServiceIDs,
		BudgetMin:          input.BudgetMin,
		BudgetMax:          input.BudgetMax,
	}

	factors, ok := discovery.FactorsFor(event, *profile)
	if !ok {
		// The vendor fails the hard filters, so there is no score to report.
		return &Output{VendorID: profile.VendorID, Matched: false}, nil
	}

	result := matchscore.Score(factors)

	h.logger.Info("match score calculated", map[string]interface{}{
		"eventId":  input.EventID,
		"vendorId": profile.VendorID,
		"score":    result.Score,
	})

	return &Output{
		VendorID:   profile.VendorID,
		MatchScore: result.Score,
		Reasons:    result.Reasons,
		Matched:    true,
	}, nil
}

func (h *Handler) getVendorProfile(ctx context.Context, vendorID string) (*catalog.VendorProfile, error) {
	cacheKey := "vendor:profile:" + vendorID
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var profile catalog.VendorProfile
		if err := json.Unmarshal([]byte(val), &profile); err == nil {
			return &profile, nil
		}
	}

	row := h.db.QueryRowContext(ctx, `
		SELECT id, name, city, supported_event_types, rating_average, rating_count,
		       response_time_hours, verification_status
		FROM vendors WHERE id = $1`, vendorID)

	var profile catalog.VendorProfile
	var supportedTypes []byte
	var responseTime sql.NullFloat64
	err := row.Scan(&profile.VendorID, &profile.Name, &profile.City, &supportedTypes,
		&profile.RatingAverage, &profile.RatingCount, &responseTime, &profile.VerificationStatus)
	if err == sql.ErrNoRows {
		return nil, errors.NewVendorNotFoundError(vendorID)
	}
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewQueryTimeoutError("vendor profile")
		}
		return nil, errors.NewQueryExecutionFailedError("vendor profile", err)
	}

	if err := json.Unmarshal(supportedTypes, &profile.SupportedEventTypes); err != nil {
		profile.SupportedEventTypes = nil
	}
	if responseTime.Valid {
		profile.ResponseTimeHours = &responseTime.Float64
	}

	if err := h.attachServices(ctx, &profile); err != nil {
		return nil, err
	}

	data, _ := json.Marshal(profile)
	h.redis.Set(ctx, cacheKey, string(data), h.config.CacheTTL)

	return &profile, nil
}

func (h *Handler) attachServices(ctx context.Context, profile *catalog.VendorProfile) error {
	rows, err := h.db.QueryContext(ctx, `
		SELECT service_id, name, price_min, price_max, is_available
		FROM vendor_services
		WHERE vendor_id = ANY($1)`, pq.Array([]string{profile.VendorID}))
	if err != nil {
		return errors.NewQueryExecutionFailedError("vendor services", err)
	}
	defer rows.Close()

	for rows.Next() {
		var svc catalog.VendorService
		if err := rows.Scan(&svc.ServiceID, &svc.Name, &svc.PriceMin, &svc.PriceMax, &svc.IsAvailable); err != nil {
			return errors.NewQueryExecutionFailedError("vendor services scan", err)
		}
		profile.Services = append(profile.Services, svc)
	}
	return rows.Err()
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
