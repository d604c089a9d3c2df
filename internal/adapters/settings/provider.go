// Package settings adapts the loaded configuration to the flow's
// settings port.
package settings

import (
	"github.com/shopkit/shopkit-payments/config"
	"github.com/shopkit/shopkit-payments/internal/core/domain"
)

// Provider implements ports.SettingsProvider on top of the process
// configuration. The admin settings surface lives outside this service;
// here the settings are read-only.
type Provider struct {
	gateway config.GatewayConfig
}

// NewProvider creates a settings provider from the loaded configuration.
func NewProvider(gateway config.GatewayConfig) *Provider {
	return &Provider{gateway: gateway}
}

// GatewaySettings returns the settings snapshot for one flow invocation.
func (p *Provider) GatewaySettings() domain.GatewaySettings {
	return domain.GatewaySettings{
		Status:             p.gateway.Status,
		TestMode:           p.gateway.TestMode,
		OrderStatusSuccess: domain.OrderStatus(p.gateway.OrderStatusSuccess),
		APILoginID:         p.gateway.APILoginID,
		TransactionKey:     p.gateway.TransactionKey,
		HashSecret:         p.gateway.HashSecret,
	}
}
