// Package api contains the HTTP handlers and routing for the payment service.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopkit/shopkit-payments/internal/core/domain"
	"github.com/shopkit/shopkit-payments/internal/core/ports"
	"github.com/shopkit/shopkit-payments/internal/core/service"
)

// Handler contains the HTTP handlers for the payment API.
type Handler struct {
	checkout *service.CheckoutService
	orders   ports.OrderStore
	logger   *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(checkout *service.CheckoutService, orders ports.OrderStore, logger *zap.Logger) *Handler {
	return &Handler{
		checkout: checkout,
		orders:   orders,
		logger:   logger,
	}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// CompletionResponse is the JSON body for non-redirect flow outcomes. The
// storefront applies the redirect and renders the messages; an empty
// message list on an ordinary view also suppresses the storefront's
// default completion text for this payment method.
type CompletionResponse struct {
	OrderID  int64            `json:"order_id"`
	Outcome  string           `json:"outcome"`
	Redirect string           `json:"redirect,omitempty"`
	Messages []domain.Message `json:"messages,omitempty"`
}

// CompleteCheckout handles GET and POST /checkout/complete/:order_id -
// the order-completion page. A posted "pay" field initiates the
// purchase; the authorize_return and cancel query markers drive the
// return paths. Redirects to the gateway-hosted page are issued as real
// HTTP redirects because the buyer's browser is on this URL.
func (h *Handler) CompleteCheckout(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "invalid order id",
			Code:    "VALIDATION_ERROR",
		})
		return
	}

	order, err := h.orders.Get(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Success: false,
				Error:   "order not found",
				Code:    "ORDER_NOT_FOUND",
			})
			return
		}
		h.logger.Error("load order failed", zap.Int64("order_id", orderID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   "internal server error",
			Code:    "INTERNAL_ERROR",
		})
		return
	}

	req := domain.CompletionRequest{
		OrderID:       orderID,
		PaySubmitted:  c.Request.Method == http.MethodPost && c.PostForm(domain.PayField) != "",
		GatewayReturn: hasQueryMarker(c, domain.ReturnMarker),
		Canceled:      hasQueryMarker(c, domain.CancelMarker),
	}

	outcome, err := h.checkout.HandleCompletion(c.Request.Context(), order, req)
	if err != nil {
		h.handleServiceError(c, orderID, err)
		return
	}

	if outcome.Kind == domain.OutcomeGatewayRedirect {
		c.Redirect(http.StatusFound, outcome.RedirectURL)
		return
	}

	c.JSON(http.StatusOK, CompletionResponse{
		OrderID:  orderID,
		Outcome:  outcome.Kind.String(),
		Redirect: outcome.RedirectURL,
		Messages: outcome.Messages,
	})
}

// ListPaymentMethods handles GET /api/v1/payment-methods.
// The enabled flag is derived from the settings on every call.
func (h *Handler) ListPaymentMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"methods": h.checkout.PaymentMethods(),
	})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "shopkit-payments",
	})
}

// handleServiceError maps flow errors to HTTP responses. Gateway faults
// are the hosting framework's generic error page in the original design;
// here they surface as 502/503 with a stable code.
func (h *Handler) handleServiceError(c *gin.Context, orderID int64, err error) {
	h.logger.Error("checkout flow failed", zap.Int64("order_id", orderID), zap.Error(err))

	statusCode := http.StatusInternalServerError
	code := "INTERNAL_ERROR"
	switch {
	case errors.Is(err, domain.ErrPaymentGatewayError):
		statusCode = http.StatusBadGateway
		code = "GATEWAY_ERROR"
	case errors.Is(err, domain.ErrGatewayUnavailable):
		statusCode = http.StatusServiceUnavailable
		code = "GATEWAY_UNAVAILABLE"
	}

	message := "internal server error"
	var svcErr *domain.ServiceError
	if errors.As(err, &svcErr) {
		message = svcErr.Message
		if svcErr.Code != "" {
			code = svcErr.Code
		}
	}

	c.JSON(statusCode, ErrorResponse{
		Success: false,
		Error:   message,
		Code:    code,
	})
}

// hasQueryMarker reports boolean marker presence; the markers carry no
// meaningful value.
func hasQueryMarker(c *gin.Context, name string) bool {
	_, ok := c.GetQuery(name)
	return ok
}
