// Package domain contains the core business entities for the payment service.
// This is the innermost layer - no external dependencies.
package domain

import "time"

// MethodCode is the payment-method code this service is registered under.
// Orders paying with any other method are ignored by the checkout flow.
const MethodCode = "authorize_sim"

// MethodTitle is the human-readable name of the payment method.
const MethodTitle = "Authorize.Net"

// ModuleName identifies this module to the storefront.
const ModuleName = "authorize"

// OrderStatus is a storefront order status code.
type OrderStatus string

// Order statuses the flow reads or writes. The success status is
// configurable; these are the codes the storefront knows about.
const (
	StatusAwaitingPayment OrderStatus = "awaiting_payment"
	StatusPending         OrderStatus = "pending"
	StatusProcessing      OrderStatus = "processing"
	StatusComplete        OrderStatus = "complete"
	StatusCanceled        OrderStatus = "canceled"
)

var statusNames = map[OrderStatus]string{
	StatusAwaitingPayment: "Awaiting payment",
	StatusPending:         "Pending",
	StatusProcessing:      "Processing",
	StatusComplete:        "Complete",
	StatusCanceled:        "Canceled",
}

// Name returns the human-readable name for the status. Unknown codes come
// back as-is so a status the storefront added later still renders.
func (s OrderStatus) Name() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return string(s)
}

// Order is the storefront order record the flow acts on. The flow never
// assumes its in-memory copy stays valid after a store write - it reloads.
type Order struct {
	ID             int64
	PaymentMethod  string
	Currency       string
	Total          float64
	TotalFormatted string // formatted total as the gateway expects it, e.g. "19.99"
	Status         OrderStatus
}

// Transaction is written exactly once per successful completion.
type Transaction struct {
	ID                   string
	OrderID              int64
	Total                float64
	Currency             string
	PaymentMethod        string
	GatewayTransactionID string
	CreatedAt            time.Time
}

// GatewayResult is the outcome of a purchase or complete-purchase call.
// Successful and Redirect are not mutually exclusive in the underlying
// gateway library; the flow's outcome dispatch imposes the tie-break.
type GatewayResult struct {
	Successful     bool
	Redirect       bool
	RedirectURL    string
	Message        string
	TransactionRef string
}

// PurchaseParams is the parameter set shared by the purchase and
// complete-purchase calls. Both URLs are absolute: the gateway sends the
// user's browser off-site and back.
type PurchaseParams struct {
	Currency  string
	Amount    string
	ReturnURL string
	CancelURL string
}

// GatewayConfig carries the credentials applied to the gateway facade
// before a purchase is initiated.
type GatewayConfig struct {
	APILoginID     string
	TransactionKey string
	HashSecret     string
	TestMode       bool
	DeveloperMode  bool
}

// GatewaySettings is the read-only configuration snapshot captured at the
// start of each flow invocation.
type GatewaySettings struct {
	Status             bool
	TestMode           bool
	OrderStatusSuccess OrderStatus
	APILoginID         string
	TransactionKey     string
	HashSecret         string
}

// Credentials returns the gateway configuration derived from the settings.
// Test mode also selects the gateway's developer endpoints.
func (s GatewaySettings) Credentials() GatewayConfig {
	return GatewayConfig{
		APILoginID:     s.APILoginID,
		TransactionKey: s.TransactionKey,
		HashSecret:     s.HashSecret,
		TestMode:       s.TestMode,
		DeveloperMode:  s.TestMode,
	}
}

// PaymentMethod describes the method as listed to the storefront.
type PaymentMethod struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Module  string `json:"module"`
	Enabled bool   `json:"enabled"`
}
