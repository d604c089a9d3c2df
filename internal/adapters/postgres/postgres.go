// Package postgres implements the order and transaction stores on
// PostgreSQL via gorm.
package postgres

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shopkit/shopkit-payments/internal/core/domain"
)

// Open connects to the database and migrates the payment tables.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&orderRecord{}, &transactionRecord{}); err != nil {
		return nil, fmt.Errorf("migrate payment tables: %w", err)
	}
	return db, nil
}

// orderRecord is the orders table row. The storefront owns most columns;
// this service only reads them and writes status.
type orderRecord struct {
	ID             int64  `gorm:"primaryKey"`
	PaymentMethod  string `gorm:"column:payment_method;index"`
	Currency       string
	Total          float64
	TotalFormatted string
	Status         string `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (orderRecord) TableName() string { return "orders" }

func (r *orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:             r.ID,
		PaymentMethod:  r.PaymentMethod,
		Currency:       r.Currency,
		Total:          r.Total,
		TotalFormatted: r.TotalFormatted,
		Status:         domain.OrderStatus(r.Status),
	}
}

// transactionRecord is the transactions table row. Insert-only.
type transactionRecord struct {
	ID                   string `gorm:"primaryKey"`
	OrderID              int64  `gorm:"index"`
	Total                float64
	Currency             string
	PaymentMethod        string `gorm:"column:payment_method"`
	GatewayTransactionID string `gorm:"column:gateway_transaction_id;uniqueIndex"`
	CreatedAt            time.Time
}

func (transactionRecord) TableName() string { return "transactions" }
