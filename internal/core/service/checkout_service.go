// Package service implements the core business logic.
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shopkit/shopkit-payments/internal/core/domain"
	"github.com/shopkit/shopkit-payments/internal/core/ports"
	"github.com/shopkit/shopkit-payments/internal/shared/metrics"
)

// CheckoutService drives the order-completion payment flow: it decides,
// per visit to the completion page, whether to initiate a purchase,
// complete a return from the gateway, handle a cancellation, or do
// nothing, and translates the gateway's verdict into store updates and a
// presentation outcome.
type CheckoutService struct {
	resolver     ports.GatewayResolver
	orders       ports.OrderStore
	transactions ports.TransactionStore
	settings     ports.SettingsProvider
	baseURL      string
	logger       *zap.Logger
	metrics      *metrics.Metrics
}

// NewCheckoutService wires the flow with its collaborators. baseURL is
// the absolute site root used to build the gateway return URLs.
func NewCheckoutService(
	resolver ports.GatewayResolver,
	orders ports.OrderStore,
	transactions ports.TransactionStore,
	settings ports.SettingsProvider,
	baseURL string,
	logger *zap.Logger,
	m *metrics.Metrics,
) *CheckoutService {
	return &CheckoutService{
		resolver:     resolver,
		orders:       orders,
		transactions: transactions,
		settings:     settings,
		baseURL:      trimTrailingSlash(baseURL),
		logger:       logger,
		metrics:      m,
	}
}

// HandleCompletion runs one flow invocation for a visit to the
// order-completion page. Orders paying with a different method are a
// strict no-op: no collaborator is called. Gateway call errors propagate
// to the caller's generic error handling - no retries, no rollback.
func (s *CheckoutService) HandleCompletion(ctx context.Context, order *domain.Order, req domain.CompletionRequest) (*domain.Outcome, error) {
	if order.PaymentMethod != domain.MethodCode {
		return &domain.Outcome{Kind: domain.OutcomeNone}, nil
	}

	// One immutable snapshot per invocation; mid-request configuration
	// changes cannot split the flow's view of the settings.
	settings := s.settings.GatewaySettings()
	event := req.Event()

	outcome, err := s.dispatch(ctx, order, settings, event)
	if err != nil {
		return nil, err
	}

	s.metrics.FlowOutcomesTotal.WithLabelValues(event.String(), outcome.Kind.String()).Inc()
	s.logger.Info("checkout flow handled",
		zap.Int64("order_id", order.ID),
		zap.Stringer("event", event),
		zap.Stringer("outcome", outcome.Kind),
	)
	return outcome, nil
}

func (s *CheckoutService) dispatch(ctx context.Context, order *domain.Order, settings domain.GatewaySettings, event domain.CompletionEvent) (*domain.Outcome, error) {
	switch event {
	case domain.EventPaySubmitted:
		return s.initiate(ctx, order, settings)
	case domain.EventGatewayReturn:
		return s.complete(ctx, order, settings)
	case domain.EventCancelReturn:
		return s.cancel(ctx, order)
	default:
		return &domain.Outcome{Kind: domain.OutcomeNone}, nil
	}
}

// initiate configures the gateway from the settings snapshot and starts a
// purchase. Dispatch order on this path is redirect first, then failure:
// initiation cannot be synchronously successful in the hosted flow.
func (s *CheckoutService) initiate(ctx context.Context, order *domain.Order, settings domain.GatewaySettings) (*domain.Outcome, error) {
	gateway, err := s.resolver.Resolve(domain.MethodCode)
	if err != nil {
		return nil, err
	}
	gateway.Configure(settings.Credentials())

	result, err := s.callGateway("purchase", func() (*domain.GatewayResult, error) {
		return gateway.Purchase(ctx, s.purchaseParams(order))
	})
	if err != nil {
		return nil, err
	}

	switch {
	case result.Redirect:
		return &domain.Outcome{
			Kind:        domain.OutcomeGatewayRedirect,
			RedirectURL: result.RedirectURL,
		}, nil
	case !result.Successful:
		return s.errorOutcome(result), nil
	default:
		// A synchronously successful initiation never happens with the
		// hosted form; treat it as an ordinary view rather than invent a
		// completion the gateway did not report.
		return &domain.Outcome{Kind: domain.OutcomeNone}, nil
	}
}

// complete finishes a purchase after the browser returned from the
// gateway. Dispatch order is fixed: success, then redirect, then failure.
// A result can report both redirect and non-success, so the order is a
// tie-break, not a derived fact.
func (s *CheckoutService) complete(ctx context.Context, order *domain.Order, settings domain.GatewaySettings) (*domain.Outcome, error) {
	result, err := s.completePurchase(ctx, order)
	if err != nil {
		return nil, err
	}

	switch {
	case result.Successful:
		return s.finalize(ctx, order, settings, result)
	case result.Redirect:
		return &domain.Outcome{
			Kind:        domain.OutcomeGatewayRedirect,
			RedirectURL: result.RedirectURL,
		}, nil
	default:
		return s.errorOutcome(result), nil
	}
}

// cancel handles a return carrying the cancel marker. The gateway is
// still asked to complete so any message it holds can be surfaced, but
// nothing is persisted either way.
func (s *CheckoutService) cancel(ctx context.Context, order *domain.Order) (*domain.Outcome, error) {
	result, err := s.completePurchase(ctx, order)
	if err != nil {
		return nil, err
	}

	messages := []domain.Message{
		{Kind: domain.MessageWarning, Text: "Payment has been canceled"},
	}
	if result.Message != "" {
		messages = append(messages, domain.Message{Kind: domain.MessageWarning, Text: result.Message})
	}
	return &domain.Outcome{Kind: domain.OutcomeCanceled, Messages: messages}, nil
}

func (s *CheckoutService) completePurchase(ctx context.Context, order *domain.Order) (*domain.GatewayResult, error) {
	gateway, err := s.resolver.Resolve(domain.MethodCode)
	if err != nil {
		return nil, err
	}
	return s.callGateway("complete_purchase", func() (*domain.GatewayResult, error) {
		return gateway.CompletePurchase(ctx, s.purchaseParams(order))
	})
}

func (s *CheckoutService) callGateway(operation string, call func() (*domain.GatewayResult, error)) (*domain.GatewayResult, error) {
	result, err := call()
	if err != nil {
		s.metrics.GatewayCallsTotal.WithLabelValues(operation, "error").Inc()
		return nil, err
	}
	s.metrics.GatewayCallsTotal.WithLabelValues(operation, "ok").Inc()
	return result, nil
}

// finalize advances the order to the configured success status, records
// the transaction, reloads the order and composes the success redirect.
// Status is only ever advanced here, never speculatively.
func (s *CheckoutService) finalize(ctx context.Context, order *domain.Order, settings domain.GatewaySettings, result *domain.GatewayResult) (*domain.Outcome, error) {
	if err := s.orders.UpdateStatus(ctx, order.ID, settings.OrderStatusSuccess); err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		OrderID:              order.ID,
		Total:                order.Total,
		Currency:             order.Currency,
		PaymentMethod:        order.PaymentMethod,
		GatewayTransactionID: result.TransactionRef,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, err
	}

	// Reload: the message reflects the store's canonical state, not the
	// copy this invocation started with.
	fresh, err := s.orders.Get(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf("Thank you! Payment has been made. Order #%d, status: %s", fresh.ID, fresh.Status.Name())
	return &domain.Outcome{
		Kind:        domain.OutcomeSuccess,
		RedirectURL: "/",
		Messages:    []domain.Message{{Kind: domain.MessageSuccess, Text: text}},
	}, nil
}

// errorOutcome routes a declined or failed result back to the completion
// page with the gateway's message, or a generic one if it sent none.
func (s *CheckoutService) errorOutcome(result *domain.GatewayResult) *domain.Outcome {
	text := result.Message
	if text == "" {
		text = "Payment has failed"
	}
	return &domain.Outcome{
		Kind:        domain.OutcomeError,
		RedirectURL: "",
		Messages:    []domain.Message{{Kind: domain.MessageWarning, Text: text}},
	}
}

// purchaseParams builds the parameter set shared by purchase and
// complete-purchase. The URLs must be absolute - the gateway redirects
// the buyer's browser off-site and back - and the cancel URL differs
// from the return URL only by the cancel marker.
func (s *CheckoutService) purchaseParams(order *domain.Order) domain.PurchaseParams {
	returnURL := fmt.Sprintf("%s/checkout/complete/%d?%s=1", s.baseURL, order.ID, domain.ReturnMarker)
	return domain.PurchaseParams{
		Currency:  order.Currency,
		Amount:    order.TotalFormatted,
		ReturnURL: returnURL,
		CancelURL: fmt.Sprintf("%s&%s=1", returnURL, domain.CancelMarker),
	}
}

// ValidateGatewayAvailable is the one-shot precondition check run before
// the payment method may be enabled. It resolves the gateway client and
// refuses anything that is not the hosted SIM variant.
func (s *CheckoutService) ValidateGatewayAvailable() error {
	gateway, err := s.resolver.Resolve(domain.MethodCode)
	if err != nil {
		return domain.NewServiceError(domain.ErrGatewayUnavailable,
			fmt.Sprintf("unable to load %s gateway", domain.MethodTitle), "GATEWAY_UNAVAILABLE")
	}
	if _, ok := gateway.(ports.SIMGateway); !ok {
		return domain.NewServiceError(domain.ErrGatewayUnavailable,
			fmt.Sprintf("%s gateway is not the SIM hosted variant", domain.MethodTitle), "GATEWAY_VARIANT")
	}
	return nil
}

// MethodEnabled derives the payment method's listing status from the
// settings: enabled only when switched on and fully credentialed. Pure
// function of configuration, recomputed on every listing request.
func (s *CheckoutService) MethodEnabled() bool {
	settings := s.settings.GatewaySettings()
	return settings.Status &&
		settings.APILoginID != "" &&
		settings.HashSecret != "" &&
		settings.TransactionKey != ""
}

// PaymentMethods lists this module's payment method as the storefront
// sees it.
func (s *CheckoutService) PaymentMethods() []domain.PaymentMethod {
	return []domain.PaymentMethod{
		{
			Code:    domain.MethodCode,
			Title:   domain.MethodTitle,
			Module:  domain.ModuleName,
			Enabled: s.MethodEnabled(),
		},
	}
}

func trimTrailingSlash(u string) string {
	for len(u) > 0 && u[len(u)-1] == '/' {
		u = u[:len(u)-1]
	}
	return u
}
