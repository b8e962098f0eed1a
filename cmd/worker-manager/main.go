// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"planora-workers/internal/catalog"
	"planora-workers/internal/common/aws"
	"planora-workers/internal/common/camunda"
	"planora-workers/internal/common/config"
	"planora-workers/internal/common/database"
	"planora-workers/internal/common/logger"
	"planora-workers/internal/common/observability"
	"planora-workers/internal/engine/budget"
	"planora-workers/internal/engine/discovery"
	"planora-workers/internal/engine/lifecycle"
	"planora-workers/internal/inquiry"

	ebh "planora-workers/internal/workers/budget/evaluate-budget-health"
	uvs "planora-workers/internal/workers/lifecycle/update-vendor-status"
	cms "planora-workers/internal/workers/matching/calculate-match-score"
	crs "planora-workers/internal/workers/matching/check-readiness-score"
	dv "planora-workers/internal/workers/matching/discover-vendors"
	sbi "planora-workers/internal/workers/outreach/send-bulk-inquiries"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name, os.Getenv("JAEGER_ENDPOINT"))
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Catalog source: Elasticsearch when an index is configured ---
	var source catalog.Source = catalog.NewPostgresSource(pg.DB)
	if cfg.Database.Elasticsearch.VendorIndex != "" {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		source = catalog.NewSearchSource(esClient.Client, cfg.Database.Elasticsearch.VendorIndex)
		zapLog.Info("Elasticsearch connected successfully",
			zap.String("vendorIndex", cfg.Database.Elasticsearch.VendorIndex))
	}

	// --- Inquiry delivery (SES/SNS) ---
	var sesClient inquiry.SESService
	var snsClient inquiry.SNSService
	region := cfg.Integrations.AWS.Region
	if cfg.Integrations.AWS.SES.Enabled {
		c, err := aws.NewSESClient(ctx, region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
		sesClient = c
	}
	if cfg.Integrations.AWS.SNS.Enabled {
		c, err := aws.NewSNSClient(ctx, region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
		snsClient = c
	}
	dispatcher := inquiry.NewNotifyDispatcher(pg.DB, sesClient, snsClient,
		cfg.Integrations.AWS.SES.FromEmail, log)

	// --- Shared engine state ---
	guide := budget.FromConfig(cfg.Guidance)
	tracker := lifecycle.NewTracker(lifecycle.NewRedisStore(redis.Client))
	pipeline := discovery.NewPipeline(source, log)

	zeebeClient := zeebe.GetClient()

	// --- Register workers ---
	if cfg.Workers[dv.TaskType].Enabled {
		handler := dv.NewHandler(
			&dv.Config{
				Timeout: time.Duration(cfg.Workers[dv.TaskType].Timeout) * time.Millisecond,
			},
			pipeline, log,
		)
		startWorker(zeebeClient, dv.TaskType, cfg.Workers[dv.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[cms.TaskType].Enabled {
		handler := cms.NewHandler(
			&cms.Config{
				CacheTTL: 10 * time.Minute,
				Timeout:  time.Duration(cfg.Workers[cms.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, redis.Client, log,
		)
		startWorker(zeebeClient, cms.TaskType, cfg.Workers[cms.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[crs.TaskType].Enabled {
		handler := crs.NewHandler(
			&crs.Config{
				Timeout: time.Duration(cfg.Workers[crs.TaskType].Timeout) * time.Millisecond,
			},
			guide, tracker, log,
		)
		startWorker(zeebeClient, crs.TaskType, cfg.Workers[crs.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[ebh.TaskType].Enabled {
		handler := ebh.NewHandler(
			&ebh.Config{
				Timeout: time.Duration(cfg.Workers[ebh.TaskType].Timeout) * time.Millisecond,
			},
			guide, log,
		)
		startWorker(zeebeClient, ebh.TaskType, cfg.Workers[ebh.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sbi.TaskType].Enabled {
		handler := sbi.NewHandler(
			&sbi.Config{
				Timeout: time.Duration(cfg.Workers[sbi.TaskType].Timeout) * time.Millisecond,
			},
			dispatcher, dispatcher, log,
		)
		startWorker(zeebeClient, sbi.TaskType, cfg.Workers[sbi.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[uvs.TaskType].Enabled {
		handler := uvs.NewHandler(
			&uvs.Config{
				Timeout: time.Duration(cfg.Workers[uvs.TaskType].Timeout) * time.Millisecond,
			},
			tracker, log,
		)
		startWorker(zeebeClient, uvs.TaskType, cfg.Workers[uvs.TaskType], handler.Handle, zapLog)
	}

	zapLog.Info("All workers registered successfully")

	// --- Health & Metrics server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := zeebe.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
