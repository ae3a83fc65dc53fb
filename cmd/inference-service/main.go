package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chronicare-ai/platform/pkg/classifier"
	"github.com/chronicare-ai/platform/pkg/common/config"
	"github.com/chronicare-ai/platform/pkg/common/database"
	"github.com/chronicare-ai/platform/pkg/common/kafka"
	"github.com/chronicare-ai/platform/pkg/common/logger"
	"github.com/chronicare-ai/platform/pkg/inference"
	"github.com/chronicare-ai/platform/pkg/patients"
	"github.com/chronicare-ai/platform/pkg/risk"
	"github.com/chronicare-ai/platform/pkg/terminology"
	"github.com/gorilla/mux"
)

func main() {
	logger.Init()
	log := logger.Service("inference-service")
	cfg := config.Load()

	db, err := database.GetPostgres()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	repository := patients.NewRepository(db)
	if err := repository.AutoMigrate(); err != nil {
		log.WithError(err).Fatal("Failed to migrate patient tables")
	}

	var store patients.Store = repository
	if cfg.PatientCacheTTL > 0 {
		store = patients.NewCachedStore(repository, database.GetRedis(), cfg.PatientCacheTTL)
	}

	catalog, err := terminology.Load(cfg.DiagnosisCatalogPath)
	if err != nil {
		log.WithError(err).WithField("path", cfg.DiagnosisCatalogPath).
			Warn("Falling back to built-in diagnosis catalog")
	}

	var clf classifier.Classifier
	switch cfg.ClassifierBackend {
	case "remote":
		clf = classifier.NewRemoteClassifier(cfg.ClassifierURL, cfg.CollaboratorTimeout)
	default:
		clf = classifier.NewArtifactClassifier(cfg.ModelArtifactDir, cfg.ModelName)
	}
	if !clf.Ready() {
		log.WithField("backend", cfg.ClassifierBackend).
			Warn("Classifier not ready at startup; predictions will fail until the model is available")
	}

	var publisher inference.EventPublisher
	if cfg.EventsEnabled {
		producer := kafka.NewProducer(cfg.PredictionTopic)
		defer producer.Close()
		publisher = producer
	}

	stratifier := risk.NewStratifier(risk.Bands{
		High:     cfg.RiskHighThreshold,
		Moderate: cfg.RiskModerateThreshold,
	})

	service := inference.NewService(clf, store, catalog, stratifier, publisher, cfg.CollaboratorTimeout)
	handler := inference.NewHTTPHandler(service, cfg.MaxRequestBody, cfg.ModelName, cfg.ClassifierBackend)

	router := mux.NewRouter()
	handler.Register(router)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.WithFields(map[string]interface{}{
			"host":    cfg.ServerHost,
			"port":    cfg.ServerPort,
			"backend": cfg.ClassifierBackend,
		}).Info("Inference Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down Inference Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	if err := database.ClosePostgres(); err != nil {
		log.WithError(err).Error("Failed to close database")
	}
	if err := database.CloseRedis(); err != nil {
		log.WithError(err).Error("Failed to close Redis")
	}

	log.Info("Inference Service stopped")
}
