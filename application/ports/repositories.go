package ports

import (
	"context"

	"inventory-backend/domain/inventory"
)

// RecordRepository defines the persistence port for inventory records.
// Every method is a single call against the backing store.
type RecordRepository interface {
	// Create stores a record under its identifier, replacing any existing one
	Create(ctx context.Context, record inventory.Record) error

	// Get returns the record with the given identifier or a not found error
	Get(ctx context.Context, id string) (*inventory.Record, error)

	// Update applies a partial update to an existing record and returns the result
	Update(ctx context.Context, id string, update inventory.RecordUpdate) (*inventory.Record, error)

	// Delete removes a record, returning a not found error if it did not exist
	Delete(ctx context.Context, id string) error

	// QueryByInventoryID lists records whose inventory_id equals the given value
	QueryByInventoryID(ctx context.Context, inventoryID float64) ([]inventory.Record, error)

	// Scan lists every record in the table
	Scan(ctx context.Context) ([]inventory.Record, error)
}
