package services

import (
	"context"

	"inventory-backend/application/ports"
	"inventory-backend/domain/inventory"
	apperrors "inventory-backend/pkg/errors"

	"go.uber.org/zap"
)

// InventoryService exposes the record use cases shared by the HTTP and
// queue entry points. Every write goes through the same normalizer.
type InventoryService struct {
	repo       ports.RecordRepository
	normalizer *inventory.Normalizer
	logger     *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	repo ports.RecordRepository,
	normalizer *inventory.Normalizer,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{
		repo:       repo,
		normalizer: normalizer,
		logger:     logger,
	}
}

// Create normalizes payload and stores it as a new record. When generateID
// is false the payload's identifier is kept; callers must ensure one exists.
func (s *InventoryService) Create(ctx context.Context, payload map[string]any, generateID bool) (*inventory.Record, error) {
	record := s.normalizer.Build(payload, generateID)
	if record.ID == "" {
		return nil, apperrors.NewValidationError("record identifier is required")
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, apperrors.Wrap(err, "create record")
	}

	s.logger.Info("Record created",
		zap.String("id", record.ID),
		zap.Float64("inventoryID", record.InventoryID),
	)
	return &record, nil
}

// Get fetches a record by identifier
func (s *InventoryService) Get(ctx context.Context, id string) (*inventory.Record, error) {
	return s.repo.Get(ctx, id)
}

// ListByInventoryID lists records for an inventory_id given in any raw form.
// The value is coerced the same way stored values are.
func (s *InventoryService) ListByInventoryID(ctx context.Context, rawInventoryID any) ([]inventory.Record, error) {
	return s.repo.QueryByInventoryID(ctx, s.normalizer.SanitizeNumber(rawInventoryID))
}

// ListAll returns every record
func (s *InventoryService) ListAll(ctx context.Context) ([]inventory.Record, error) {
	return s.repo.Scan(ctx)
}

// Update applies the mutable fields present in payload to the record id
func (s *InventoryService) Update(ctx context.Context, id string, payload map[string]any) (*inventory.Record, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("record identifier is required")
	}

	update := s.normalizer.BuildUpdate(payload)
	if update.IsEmpty() {
		return nil, apperrors.NewValidationError("update contains no mutable fields")
	}

	record, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Record updated",
		zap.String("id", id),
		zap.Int("fields", len(update.Fields())),
	)
	return record, nil
}

// Delete removes a record
func (s *InventoryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Record deleted", zap.String("id", id))
	return nil
}
