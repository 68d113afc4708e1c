// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"dealer-assistant/internal/assistant"
	"dealer-assistant/internal/assistant/session"
	"dealer-assistant/internal/common/aws"
	"dealer-assistant/internal/common/camunda"
	"dealer-assistant/internal/common/config"
	"dealer-assistant/internal/common/database"
	"dealer-assistant/internal/common/logger"
	"dealer-assistant/internal/common/metrics"
	"dealer-assistant/internal/common/observability"
	"dealer-assistant/internal/inventory"

	hcm "dealer-assistant/internal/workers/assistant/handle-chat-message"
	cp "dealer-assistant/internal/workers/financing/calculate-payment"
	uas "dealer-assistant/internal/workers/financing/update-application-status"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err,
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrap := logger.New("info", "console")
		bootstrap.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})

	log.Info("Starting worker manager...", map[string]interface{}{
		"inventorySource": cfg.Assistant.InventorySource,
		"sessionStore":    cfg.Assistant.SessionStore,
	})

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		log.Warn("otel metrics disabled", map[string]interface{}{"error": err})
	}

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClient(ctx, cfg.Camunda)
		if err != nil && !camunda.IsTransient(err) {
			log.Warn("zeebe error does not look transient", map[string]interface{}{"error": err})
		}
		return err
	}, 10, 2*time.Second, log, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	log.Info("Zeebe client connected successfully", nil)

	// --- Init data stores with retry ---
	var conns *database.Connections
	err = retryWithBackoff(func() error {
		opened, err := database.Open(cfg)
		if err != nil {
			return err
		}
		if err := opened.Ping(ctx); err != nil {
			_ = opened.Close()
			return err
		}
		conns = opened
		return nil
	}, 15, 2*time.Second, log, "Data store connection")
	if err != nil {
		zapLog.Fatal("data stores failed after retries", zap.Error(err))
	}
	log.Info("Data stores connected successfully", nil)

	// --- Assistant ---
	source, err := inventory.FromConfig(cfg.Assistant, conns, log)
	if err != nil {
		zapLog.Fatal("inventory setup failed", zap.Error(err))
	}

	var store session.Store = session.NewMemoryStore(time.Now)
	if cfg.Assistant.SessionStore == config.SessionStoreRedis {
		store = session.NewRedisStore(conns.Redis.Client, cfg.Assistant.SessionTTLDuration(), time.Now)
	}

	var seed rand.Source
	if cfg.Assistant.RandomSeed != 0 {
		seed = rand.NewSource(cfg.Assistant.RandomSeed)
	}

	chat, err := assistant.New(assistant.Options{
		Inventory: source,
		Store:     store,
		Rand:      seed,
		Logger:    log,
		Metrics:   metrics.AssistantRecorder{},
	})
	if err != nil {
		zapLog.Fatal("assistant setup failed", zap.Error(err))
	}

	// --- Notification clients ---
	var (
		email uas.EmailSender
		sms   uas.SMSSender
	)
	if cfg.Notifications.Email.Enabled {
		sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWSRegion, cfg.Notifications.Email.FromEmail)
		if err != nil {
			zapLog.Fatal("SES client setup failed", zap.Error(err))
		}
		email = sesClient
	}
	if cfg.Notifications.SMS.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWSRegion, cfg.Notifications.SMS.SenderID)
		if err != nil {
			zapLog.Fatal("SNS client setup failed", zap.Error(err))
		}
		sms = snsClient
	}

	// --- Register Workers ---
	workers := camunda.NewWorkers(zeebe.Zeebe(), log)

	chatCfg := config.GetWorkerConfig(cfg, hcm.TaskType)
	chatHandler := hcm.NewHandler(hcm.NewConfig(chatCfg), chat, log)
	workers.Start(hcm.TaskType, chatCfg, obs.Instrument(hcm.TaskType, chatHandler.Handle))

	paymentCfg := config.GetWorkerConfig(cfg, cp.TaskType)
	paymentHandler, err := cp.NewHandler(cp.NewConfig(paymentCfg, cfg.Financing), log)
	if err != nil {
		zapLog.Fatal("failed to create calculate-payment handler", zap.Error(err))
	}
	workers.Start(cp.TaskType, paymentCfg, obs.Instrument(cp.TaskType, paymentHandler.Handle))

	statusCfg := config.GetWorkerConfig(cfg, uas.TaskType)
	statusHandler := uas.NewHandler(uas.NewConfig(statusCfg, cfg.Notifications), conns.Postgres.DB, email, sms, log)
	workers.Start(uas.TaskType, statusCfg, obs.Instrument(uas.TaskType, statusHandler.Handle))

	log.Info("Workers registered", map[string]interface{}{"taskTypes": workers.Running()})

	// --- Health & Metrics Server ---
	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           newServeMux(zeebe, conns),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("Health/Metrics server listening", map[string]interface{}{"address": cfg.Server.Address})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Health/Metrics server failed", map[string]interface{}{"error": err})
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutdown signal received, stopping workers...", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	workers.Close()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Error stopping health server", map[string]interface{}{"error": err})
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Error("Error flushing metrics", map[string]interface{}{"error": err})
	}
	if err := conns.Close(); err != nil {
		log.Error("Error closing data stores", map[string]interface{}{"error": err})
	}
	if err := zeebe.Close(); err != nil {
		log.Error("Error closing Zeebe client", map[string]interface{}{"error": err})
	}

	log.Info("Worker manager stopped gracefully", nil)
}

type readinessChecker interface {
	Ping(ctx context.Context) error
}

type brokerChecker interface {
	HealthCheck(ctx context.Context) error
}

func newServeMux(broker brokerChecker, stores readinessChecker) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy", nil)
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := errors.Join(broker.HealthCheck(ctx), stores.Ping(ctx)); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not ready", err)
			return
		}
		writeStatus(w, http.StatusOK, "ready", nil)
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeStatus(w http.ResponseWriter, code int, status string, err error) {
	body := map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	}
	if err != nil {
		body["error"] = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
