package domain

import "errors"

// Domain errors - represent business rule violations.
var (
	// ErrOrderNotFound is returned when the order id resolves to nothing.
	ErrOrderNotFound = errors.New("order not found")

	// ErrGatewayUnavailable is returned when the gateway client cannot be
	// resolved or is not the expected SIM variant. Surfaced once, at
	// activation time - it blocks enabling the payment method.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrPaymentGatewayError is returned when a gateway call itself fails.
	ErrPaymentGatewayError = errors.New("payment gateway error")
)

// ServiceError wraps errors with additional context.
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(err error, message, code string) *ServiceError {
	return &ServiceError{Err: err, Message: message, Code: code}
}
