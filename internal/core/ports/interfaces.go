// Package ports defines the interfaces (ports) for the payment service.
// These are contracts that adapters must implement.
package ports

import (
	"context"

	"github.com/shopkit/shopkit-payments/internal/core/domain"
)

// GatewayFacade is the external payment-gateway client abstraction. It
// owns request signing, transport and redirect-form construction; the
// flow only configures it and interprets its results.
type GatewayFacade interface {
	// Configure applies credentials and mode before a purchase is
	// initiated. Completion calls reuse whatever the gateway already
	// holds, matching the hosted flow's relay semantics.
	Configure(cfg domain.GatewayConfig)

	// Purchase initiates a payment and returns the gateway's verdict,
	// usually a redirect to the hosted payment page.
	Purchase(ctx context.Context, params domain.PurchaseParams) (*domain.GatewayResult, error)

	// CompletePurchase finishes a payment after the browser returned
	// from the gateway.
	CompletePurchase(ctx context.Context, params domain.PurchaseParams) (*domain.GatewayResult, error)
}

// SIMGateway marks facades implementing the hosted SIM redirect variant.
// The availability check refuses facades without this marker.
type SIMGateway interface {
	GatewayFacade
	SIMVariant()
}

// GatewayResolver constructs gateway facades by payment-method code.
type GatewayResolver interface {
	Resolve(code string) (GatewayFacade, error)
}

// OrderStore persists order status updates. Concurrent completions for
// one order are the store's problem, not the flow's.
type OrderStore interface {
	Get(ctx context.Context, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
}

// TransactionStore records completed payments. Write-once; the flow has
// no update path.
type TransactionStore interface {
	Create(ctx context.Context, tx *domain.Transaction) error
}

// SettingsProvider yields the gateway settings snapshot for one flow
// invocation.
type SettingsProvider interface {
	GatewaySettings() domain.GatewaySettings
}
