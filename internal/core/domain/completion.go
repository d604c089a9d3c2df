package domain

// Marker and form-field names recognized on the order-completion route.
// The return and cancel markers appear in the URLs handed to the gateway,
// so renaming them breaks in-flight payments.
const (
	ReturnMarker = "authorize_return"
	CancelMarker = "cancel"
	PayField     = "pay"
)

// CompletionRequest is the flow-relevant state of one visit to the
// order-completion page.
type CompletionRequest struct {
	OrderID       int64
	PaySubmitted  bool // the "pay" form field was posted
	GatewayReturn bool // the return marker is present in the query
	Canceled      bool // the cancel marker is present in the query
}

// CompletionEvent is the classified trigger for one flow invocation.
// Classification happens exactly once per request; every branch of the
// flow dispatches on this value instead of re-reading markers.
type CompletionEvent int

const (
	// EventPageView - ordinary page view, the flow is a no-op.
	EventPageView CompletionEvent = iota
	// EventPaySubmitted - the buyer submitted the pay form.
	EventPaySubmitted
	// EventGatewayReturn - the browser came back from the gateway.
	EventGatewayReturn
	// EventCancelReturn - the browser came back with the cancel marker.
	EventCancelReturn
)

// String implements fmt.Stringer for logging and metrics labels.
func (e CompletionEvent) String() string {
	switch e {
	case EventPaySubmitted:
		return "pay_submitted"
	case EventGatewayReturn:
		return "gateway_return"
	case EventCancelReturn:
		return "cancel_return"
	default:
		return "page_view"
	}
}

// Event classifies the request. A pay submission wins over any markers,
// and the cancel marker only counts together with the return marker -
// a stray cancel on an ordinary view is not a gateway return.
func (r CompletionRequest) Event() CompletionEvent {
	switch {
	case r.PaySubmitted:
		return EventPaySubmitted
	case r.GatewayReturn && r.Canceled:
		return EventCancelReturn
	case r.GatewayReturn:
		return EventGatewayReturn
	default:
		return EventPageView
	}
}
