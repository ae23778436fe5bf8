package services

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/horizonbank/horizon/internal/logger"
	"github.com/horizonbank/horizon/internal/models"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// TransactionEvent is the message published for every live balance mutation.
// Seeded history is bulk data and is not published.
type TransactionEvent struct {
	EventID     string `json:"event_id"`
	AccountID   int64  `json:"account_id"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Timestamp   int64  `json:"timestamp"`
}

// publishTransaction publishes one stored transaction to Kafka. A nil writer
// disables publishing; failures are logged and never fail the operation.
func publishTransaction(ctx context.Context, w KafkaWriter, eventID string, txn *models.TransactionDB) {
	if w == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", eventID)
		return
	}

	event := TransactionEvent{
		EventID:     eventID,
		AccountID:   txn.AccountID,
		Type:        string(txn.Type),
		Amount:      txn.AmountString(),
		Description: txn.Description,
		Timestamp:   txn.OccurredAt.Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal transaction event for Kafka", "event_id", eventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(eventID),
		Value: data,
	}

	if err := w.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish transaction event to Kafka", "event_id", eventID, "error", err)
	} else {
		logger.Log.Infow("Transaction event published to Kafka", "event_id", eventID, "amount", event.Amount)
	}
}
