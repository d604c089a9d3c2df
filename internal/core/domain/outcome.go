package domain

// MessageKind distinguishes user-facing message severities.
type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageWarning MessageKind = "warning"
)

// Message is a user-facing status message.
type Message struct {
	Kind MessageKind `json:"kind"`
	Text string      `json:"text"`
}

// OutcomeKind tags what the presentation layer should do after a flow
// invocation.
type OutcomeKind int

const (
	// OutcomeNone - ordinary page view, nothing to do. The storefront's
	// default completion message is suppressed for this payment method.
	OutcomeNone OutcomeKind = iota
	// OutcomeGatewayRedirect - follow the gateway-provided redirect. The
	// flow suspends; the gateway owns the next hop.
	OutcomeGatewayRedirect
	// OutcomeSuccess - payment finalized, redirect home with a success
	// message.
	OutcomeSuccess
	// OutcomeError - payment declined or failed, redirect back to the
	// completion page with a warning.
	OutcomeError
	// OutcomeCanceled - user canceled at the gateway, stay on the page
	// and show warnings only. No order or transaction mutation.
	OutcomeCanceled
)

// String implements fmt.Stringer for logging and metrics labels.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeGatewayRedirect:
		return "gateway_redirect"
	case OutcomeSuccess:
		return "success"
	case OutcomeError:
		return "error"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "none"
	}
}

// Outcome is the flow's instruction to the presentation layer. The flow
// itself never touches the response; it returns one of these.
type Outcome struct {
	Kind        OutcomeKind
	RedirectURL string
	Messages    []Message
}

// WarningTexts returns the texts of all warning messages, mostly for tests
// and log lines.
func (o *Outcome) WarningTexts() []string {
	var texts []string
	for _, m := range o.Messages {
		if m.Kind == MessageWarning {
			texts = append(texts, m.Text)
		}
	}
	return texts
}
