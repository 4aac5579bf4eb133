// Package queue handles inventory writes delivered as SQS messages.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"inventory-backend/application/services"
	"inventory-backend/domain/inventory"
	"inventory-backend/pkg/observability"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

// OperationUpdate selects the update path; any other operation creates.
const OperationUpdate = "update"

const operationCreate = "create"

// Message is the body of a queue message
type Message struct {
	Operation string         `json:"operation"`
	Data      map[string]any `json:"data"`
}

// Result summarizes a processed batch
type Result struct {
	Processed int
	Failed    int
}

// Processor applies queue messages to the inventory service
type Processor struct {
	service *services.InventoryService
	logger  *zap.Logger
	metrics *observability.Collector
}

// NewProcessor creates a new Processor
func NewProcessor(service *services.InventoryService, logger *zap.Logger, metrics *observability.Collector) *Processor {
	return &Processor{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// Process handles the batch in order. A failing message is logged and
// skipped; it never stops the rest of the batch.
func (p *Processor) Process(ctx context.Context, event events.SQSEvent) Result {
	var result Result

	for _, record := range event.Records {
		operation, err := p.handle(ctx, record)
		p.metrics.ObserveQueueMessage(operation, err)
		if err != nil {
			result.Failed++
			p.logger.Error("Error processing SQS message",
				zap.String("messageID", record.MessageId),
				zap.String("operation", operation),
				zap.Error(err),
			)
			continue
		}
		result.Processed++
	}

	p.logger.Info("SQS batch processed",
		zap.Int("processed", result.Processed),
		zap.Int("failed", result.Failed),
	)
	return result
}

func (p *Processor) handle(ctx context.Context, record events.SQSMessage) (string, error) {
	var msg Message
	if err := json.Unmarshal([]byte(record.Body), &msg); err != nil {
		return operationCreate, fmt.Errorf("failed to parse message body: %w", err)
	}
	if msg.Data == nil {
		return operationOf(msg), errors.New("message has no data")
	}

	id, hasID := inventory.IDFrom(msg.Data)

	if msg.Operation == OperationUpdate {
		if !hasID {
			return OperationUpdate, errors.New("update message has no record identifier")
		}
		updated, err := p.service.Update(ctx, id, msg.Data)
		if err != nil {
			return OperationUpdate, err
		}
		p.logger.Debug("Item updated", zap.Any("item", updated))
		return OperationUpdate, nil
	}

	created, err := p.service.Create(ctx, msg.Data, !hasID)
	if err != nil {
		return operationCreate, err
	}
	p.logger.Debug("Item created", zap.Any("item", created))
	return operationCreate, nil
}

func operationOf(msg Message) string {
	if msg.Operation == OperationUpdate {
		return OperationUpdate
	}
	return operationCreate
}
