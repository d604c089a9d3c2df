package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopkit/shopkit-payments/config"
	"github.com/shopkit/shopkit-payments/internal/adapters/settings"
	"github.com/shopkit/shopkit-payments/internal/core/domain"
	"github.com/shopkit/shopkit-payments/internal/core/ports"
	"github.com/shopkit/shopkit-payments/internal/core/service"
	"github.com/shopkit/shopkit-payments/internal/shared/metrics"
)

// --- stubs ---

type stubOrders struct {
	orders map[int64]*domain.Order
}

func (s *stubOrders) Get(_ context.Context, id int64) (*domain.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (s *stubOrders) UpdateStatus(_ context.Context, id int64, status domain.OrderStatus) error {
	if order, ok := s.orders[id]; ok {
		order.Status = status
	}
	return nil
}

type stubTransactions struct {
	created []*domain.Transaction
}

func (s *stubTransactions) Create(_ context.Context, tx *domain.Transaction) error {
	s.created = append(s.created, tx)
	return nil
}

type stubFacade struct {
	result    *domain.GatewayResult
	err       error
	purchases int
	completes int
}

func (s *stubFacade) SIMVariant() {}

func (s *stubFacade) Configure(domain.GatewayConfig) {}

func (s *stubFacade) Purchase(context.Context, domain.PurchaseParams) (*domain.GatewayResult, error) {
	s.purchases++
	return s.result, s.err
}
func (s *stubFacade) CompletePurchase(context.Context, domain.PurchaseParams) (*domain.GatewayResult, error) {
	s.completes++
	return s.result, s.err
}

type stubResolver struct {
	facade ports.GatewayFacade
}

func (s *stubResolver) Resolve(string) (ports.GatewayFacade, error) {
	return s.facade, nil
}

// --- fixture ---

type apiFixture struct {
	router       *gin.Engine
	orders       *stubOrders
	transactions *stubTransactions
	facade       *stubFacade
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	f := &apiFixture{
		orders: &stubOrders{orders: map[int64]*domain.Order{
			7: {
				ID:             7,
				PaymentMethod:  domain.MethodCode,
				Currency:       "USD",
				Total:          19.99,
				TotalFormatted: "19.99",
				Status:         domain.StatusAwaitingPayment,
			},
			8: {
				ID:            8,
				PaymentMethod: "cod",
				Currency:      "USD",
				Status:        domain.StatusPending,
			},
		}},
		transactions: &stubTransactions{},
		facade:       &stubFacade{},
	}

	provider := settings.NewProvider(config.GatewayConfig{
		Status:             true,
		TestMode:           true,
		OrderStatusSuccess: "processing",
		APILoginID:         "login",
		TransactionKey:     "txkey",
		HashSecret:         "secret",
	})

	m := metrics.New("test_api", prometheus.NewRegistry())
	checkout := service.NewCheckoutService(
		&stubResolver{facade: f.facade},
		f.orders,
		f.transactions,
		provider,
		"https://shop.example.com",
		zap.NewNop(),
		m,
	)

	handler := NewHandler(checkout, f.orders, zap.NewNop())
	f.router = SetupRouter(handler, gin.TestMode, zap.NewNop(), m)
	return f
}

func (f *apiFixture) do(t *testing.T, method, target, form string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeCompletion(t *testing.T, rec *httptest.ResponseRecorder) CompletionResponse {
	t.Helper()
	var resp CompletionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// --- tests ---

func TestCompleteCheckout_OrdinaryView(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/checkout/complete/7", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCompletion(t, rec)
	assert.Equal(t, "none", resp.Outcome)
	assert.Empty(t, resp.Messages)
	assert.Zero(t, f.facade.purchases)
	assert.Zero(t, f.facade.completes)
}

func TestCompleteCheckout_PaySubmitted_RedirectsToGateway(t *testing.T) {
	f := newAPIFixture(t)
	f.facade.result = &domain.GatewayResult{Redirect: true, RedirectURL: "https://gateway.test/hosted-form"}

	rec := f.do(t, http.MethodPost, "/checkout/complete/7", "pay=1")

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://gateway.test/hosted-form", rec.Header().Get("Location"))
	assert.Equal(t, 1, f.facade.purchases)
}

func TestCompleteCheckout_GatewayReturn_Success(t *testing.T) {
	f := newAPIFixture(t)
	f.facade.result = &domain.GatewayResult{Successful: true, TransactionRef: "TX-9"}

	rec := f.do(t, http.MethodGet, "/checkout/complete/7?authorize_return=1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCompletion(t, rec)
	assert.Equal(t, "success", resp.Outcome)
	assert.Equal(t, "/", resp.Redirect)
	require.Len(t, resp.Messages, 1)
	assert.Contains(t, resp.Messages[0].Text, "#7")

	require.Len(t, f.transactions.created, 1)
	assert.Equal(t, "TX-9", f.transactions.created[0].GatewayTransactionID)
	assert.Equal(t, domain.StatusProcessing, f.orders.orders[7].Status)
}

func TestCompleteCheckout_GatewayReturn_Canceled(t *testing.T) {
	f := newAPIFixture(t)
	f.facade.result = &domain.GatewayResult{Message: "declined by user"}

	rec := f.do(t, http.MethodGet, "/checkout/complete/7?authorize_return=1&cancel=1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCompletion(t, rec)
	assert.Equal(t, "canceled", resp.Outcome)
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, "Payment has been canceled", resp.Messages[0].Text)
	assert.Equal(t, "declined by user", resp.Messages[1].Text)
	assert.Empty(t, f.transactions.created)
	assert.Equal(t, domain.StatusAwaitingPayment, f.orders.orders[7].Status)
}

func TestCompleteCheckout_OtherPaymentMethod_NoOp(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/checkout/complete/8", "pay=1")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCompletion(t, rec)
	assert.Equal(t, "none", resp.Outcome)
	assert.Zero(t, f.facade.purchases)
	assert.Zero(t, f.facade.completes)
}

func TestCompleteCheckout_OrderNotFound(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/checkout/complete/999", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompleteCheckout_InvalidOrderID(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/checkout/complete/not-a-number", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompleteCheckout_GatewayFault(t *testing.T) {
	f := newAPIFixture(t)
	f.facade.err = domain.NewServiceError(domain.ErrPaymentGatewayError, "gateway request failed", "HTTP_ERROR")

	rec := f.do(t, http.MethodGet, "/checkout/complete/7?authorize_return=1", "")

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "HTTP_ERROR", resp.Code)
}

func TestListPaymentMethods(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/payment-methods", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Methods []domain.PaymentMethod `json:"methods"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Methods, 1)
	assert.Equal(t, "authorize_sim", resp.Methods[0].Code)
	assert.True(t, resp.Methods[0].Enabled)
}

func TestHealth(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "shopkit-payments")
}
