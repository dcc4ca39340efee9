package services

import (
	"context"
	"encoding/json"

	"github.com/plantcare/backend/domain"
	"github.com/plantcare/backend/internal/infrastructure/buffer"
	"github.com/plantcare/backend/usecase"
)

type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferPlant(ctx context.Context, operation string, plant *domain.Plant) error {
	if b.processor == nil || plant == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(plant)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:        plant.ID,
		UserID:    plant.UserID,
		Entity:    buffer.EntityPlant,
		Operation: operation,
		Data:      payload,
		Priority:  3,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferReading(ctx context.Context, reading *domain.Reading) error {
	if b.processor == nil || reading == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(reading)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:        reading.ID,
		UserID:    reading.UserID,
		Entity:    buffer.EntityReading,
		Operation: buffer.OperationCreate,
		Data:      payload,
		Priority:  4,
	}
	return b.processor.BufferOperation(ctx, item)
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
