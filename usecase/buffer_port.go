package usecase

import (
	"context"

	"github.com/plantcare/backend/domain"
)

// Buffered operation kinds.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
)

// OperationBuffer abstracts the offline buffer so use cases stay storage-agnostic.
type OperationBuffer interface {
	BufferPlant(ctx context.Context, operation string, plant *domain.Plant) error
	BufferReading(ctx context.Context, reading *domain.Reading) error
}
