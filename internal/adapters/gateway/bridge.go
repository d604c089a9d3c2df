package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopkit/shopkit-payments/internal/core/domain"
)

// Bridge implements ports.GatewayFacade against the gateway-library
// bridge service, the collaborator that owns SIM request signing, the
// HTTP exchange with Authorize.Net and the redirect-form construction.
// This client only ships parameters over and maps the verdict back.
type Bridge struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cfg        domain.GatewayConfig
}

// NewBridge creates a bridge client for the SIM gateway variant.
func NewBridge(baseURL, apiKey string) *Bridge {
	return &Bridge{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SIMVariant marks the bridge as the hosted SIM redirect variant.
func (b *Bridge) SIMVariant() {}

// Configure stores the credentials sent along with the next purchase.
func (b *Bridge) Configure(cfg domain.GatewayConfig) {
	b.cfg = cfg
}

// purchaseRequest is the wire format of a bridge purchase call.
type purchaseRequest struct {
	Currency       string `json:"currency"`
	Amount         string `json:"amount"`
	ReturnURL      string `json:"return_url"`
	CancelURL      string `json:"cancel_url"`
	APILoginID     string `json:"api_login_id,omitempty"`
	TransactionKey string `json:"transaction_key,omitempty"`
	HashSecret     string `json:"hash_secret,omitempty"`
	TestMode       bool   `json:"test_mode"`
	DeveloperMode  bool   `json:"developer_mode"`
}

// purchaseResponse is the bridge's verdict on a purchase call.
type purchaseResponse struct {
	Successful           bool   `json:"successful"`
	Redirect             bool   `json:"redirect"`
	RedirectURL          string `json:"redirect_url"`
	Message              string `json:"message"`
	TransactionReference string `json:"transaction_reference"`
}

// Purchase initiates a SIM purchase.
// POST /gateways/authorize-sim/purchase
func (b *Bridge) Purchase(ctx context.Context, params domain.PurchaseParams) (*domain.GatewayResult, error) {
	return b.call(ctx, "purchase", params)
}

// CompletePurchase completes a SIM purchase after the gateway return.
// POST /gateways/authorize-sim/complete-purchase
func (b *Bridge) CompletePurchase(ctx context.Context, params domain.PurchaseParams) (*domain.GatewayResult, error) {
	return b.call(ctx, "complete-purchase", params)
}

func (b *Bridge) call(ctx context.Context, operation string, params domain.PurchaseParams) (*domain.GatewayResult, error) {
	url := fmt.Sprintf("%s/gateways/authorize-sim/%s", b.baseURL, operation)

	body := purchaseRequest{
		Currency:       params.Currency,
		Amount:         params.Amount,
		ReturnURL:      params.ReturnURL,
		CancelURL:      params.CancelURL,
		APILoginID:     b.cfg.APILoginID,
		TransactionKey: b.cfg.TransactionKey,
		HashSecret:     b.cfg.HashSecret,
		TestMode:       b.cfg.TestMode,
		DeveloperMode:  b.cfg.DeveloperMode,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, domain.NewServiceError(domain.ErrPaymentGatewayError,
			"failed to marshal gateway request", "MARSHAL_ERROR")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, domain.NewServiceError(domain.ErrPaymentGatewayError,
			"failed to create gateway request", "REQUEST_ERROR")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-API-Key", b.apiKey)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewServiceError(domain.ErrPaymentGatewayError,
			"gateway request failed: "+err.Error(), "HTTP_ERROR")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, domain.NewServiceError(domain.ErrPaymentGatewayError,
			fmt.Sprintf("gateway bridge returned status %d: %s", resp.StatusCode, string(raw)),
			"BRIDGE_ERROR")
	}

	var verdict purchaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return nil, domain.NewServiceError(domain.ErrPaymentGatewayError,
			"failed to decode gateway response", "DECODE_ERROR")
	}

	return &domain.GatewayResult{
		Successful:     verdict.Successful,
		Redirect:       verdict.Redirect,
		RedirectURL:    verdict.RedirectURL,
		Message:        verdict.Message,
		TransactionRef: verdict.TransactionReference,
	}, nil
}
