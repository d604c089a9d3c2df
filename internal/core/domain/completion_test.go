package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompletionRequest_Event(t *testing.T) {
	tests := []struct {
		name string
		req  CompletionRequest
		want CompletionEvent
	}{
		{name: "ordinary view", req: CompletionRequest{}, want: EventPageView},
		{name: "pay submitted", req: CompletionRequest{PaySubmitted: true}, want: EventPaySubmitted},
		{name: "gateway return", req: CompletionRequest{GatewayReturn: true}, want: EventGatewayReturn},
		{name: "cancel return", req: CompletionRequest{GatewayReturn: true, Canceled: true}, want: EventCancelReturn},
		{name: "stray cancel without return marker", req: CompletionRequest{Canceled: true}, want: EventPageView},
		{name: "submission wins over markers", req: CompletionRequest{PaySubmitted: true, GatewayReturn: true, Canceled: true}, want: EventPaySubmitted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Event())
		})
	}
}

func TestCompletionEvent_String(t *testing.T) {
	assert.Equal(t, "page_view", EventPageView.String())
	assert.Equal(t, "pay_submitted", EventPaySubmitted.String())
	assert.Equal(t, "gateway_return", EventGatewayReturn.String())
	assert.Equal(t, "cancel_return", EventCancelReturn.String())
}
