package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shopkit/shopkit-payments/internal/core/domain"
	"github.com/shopkit/shopkit-payments/internal/core/ports"
)

// orderStore implements ports.OrderStore.
type orderStore struct {
	db *gorm.DB
}

// NewOrderStore creates the gorm-backed order store.
func NewOrderStore(db *gorm.DB) ports.OrderStore {
	return &orderStore{db: db}
}

func (s *orderStore) Get(ctx context.Context, id int64) (*domain.Order, error) {
	var record orderRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// UpdateStatus writes only the status column. The update is a single
// atomic statement keyed by order id; deduplication of concurrent
// completions stays with the database, not the flow.
func (s *orderStore) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	result := s.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
