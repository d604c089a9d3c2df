package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopkit/shopkit-payments/internal/core/domain"
	"github.com/shopkit/shopkit-payments/internal/core/ports"
)

// transactionStore implements ports.TransactionStore.
type transactionStore struct {
	db *gorm.DB
}

// NewTransactionStore creates the gorm-backed transaction store.
func NewTransactionStore(db *gorm.DB) ports.TransactionStore {
	return &transactionStore{db: db}
}

// Create inserts the transaction record. The unique index on the gateway
// transaction id keeps replays of the same gateway result from producing
// a second row.
func (s *transactionStore) Create(ctx context.Context, tx *domain.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}

	record := transactionRecord{
		ID:                   tx.ID,
		OrderID:              tx.OrderID,
		Total:                tx.Total,
		Currency:             tx.Currency,
		PaymentMethod:        tx.PaymentMethod,
		GatewayTransactionID: tx.GatewayTransactionID,
		CreatedAt:            tx.CreatedAt,
	}
	return s.db.WithContext(ctx).Create(&record).Error
}
