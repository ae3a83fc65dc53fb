package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chronicare-ai/platform/pkg/common/config"
	"github.com/chronicare-ai/platform/pkg/common/logger"
	"github.com/chronicare-ai/platform/pkg/common/models"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Producer publishes completed-prediction events for downstream analytics
// consumers. Publishing is best-effort; a broker failure never fails the
// originating request.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(topic string) *Producer {
	cfg := config.Load()
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Producer{writer: writer}
}

func (p *Producer) PublishPrediction(ctx context.Context, event models.PredictionEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal prediction event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(event.ID),
		Value: eventBytes,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte("prediction.completed")},
			{Key: "risk-level", Value: []byte(event.RiskLevel)},
		},
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		logger.Log.WithError(err).WithFields(map[string]interface{}{
			"event_id":   event.ID,
			"patient_id": event.PatientID,
		}).Error("Failed to publish prediction event")
		return err
	}

	logger.Log.WithFields(map[string]interface{}{
		"event_id": event.ID,
		"topic":    p.writer.Topic,
	}).Debug("Prediction event published")

	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
