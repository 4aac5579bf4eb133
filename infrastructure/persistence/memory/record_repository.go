package memory

import (
	"context"
	"sort"
	"sync"

	"inventory-backend/application/ports"
	"inventory-backend/domain/inventory"
	apperrors "inventory-backend/pkg/errors"
)

// RecordRepository keeps records in process memory. It backs local runs
// without AWS access and the handler tests.
type RecordRepository struct {
	mu      sync.RWMutex
	records map[string]inventory.Record
}

var _ ports.RecordRepository = (*RecordRepository)(nil)

// NewRecordRepository creates an empty in-memory repository
func NewRecordRepository() *RecordRepository {
	return &RecordRepository{
		records: make(map[string]inventory.Record),
	}
}

// Create stores a record, replacing any record with the same identifier
func (r *RecordRepository) Create(ctx context.Context, record inventory.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[record.ID] = record
	return nil
}

// Get retrieves a record by identifier
func (r *RecordRepository) Get(ctx context.Context, id string) (*inventory.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[id]
	if !exists {
		return nil, apperrors.NewNotFoundError("record")
	}
	return &record, nil
}

// Update applies the update to an existing record
func (r *RecordRepository) Update(ctx context.Context, id string, update inventory.RecordUpdate) (*inventory.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.records[id]
	if !exists {
		return nil, apperrors.NewNotFoundError("record")
	}

	record = update.Apply(record)
	r.records[id] = record
	return &record, nil
}

// Delete removes a record
func (r *RecordRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[id]; !exists {
		return apperrors.NewNotFoundError("record")
	}
	delete(r.records, id)
	return nil
}

// QueryByInventoryID lists records with a matching inventory_id, ordered by
// created_at like the index sort would.
func (r *RecordRepository) QueryByInventoryID(ctx context.Context, inventoryID float64) ([]inventory.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]inventory.Record, 0)
	for _, record := range r.records {
		if record.InventoryID == inventoryID {
			records = append(records, record)
		}
	}
	sortRecords(records)
	return records, nil
}

// Scan lists all records
func (r *RecordRepository) Scan(ctx context.Context) ([]inventory.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]inventory.Record, 0, len(r.records))
	for _, record := range r.records {
		records = append(records, record)
	}
	sortRecords(records)
	return records, nil
}

func sortRecords(records []inventory.Record) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt != records[j].CreatedAt {
			return records[i].CreatedAt < records[j].CreatedAt
		}
		return records[i].ID < records[j].ID
	})
}
