package admission

import (
	"fmt"
	"time"
)

// PaymentMethod identifies how an order is paid.
type PaymentMethod string

// Supported payment methods.
const (
	// PaymentCOD is cash on delivery.
	PaymentCOD PaymentMethod = "COD"
	// PaymentOnline is an online (prepaid) payment.
	PaymentOnline PaymentMethod = "ONLINE"
)

// ReasonCode classifies an admission rejection.
type ReasonCode string

// Rejection reason codes, in guard order.
const (
	// ReasonStoreClosed means the seller has closed the store.
	ReasonStoreClosed ReasonCode = "STORE_CLOSED"
	// ReasonMaintenance means the store is in maintenance mode.
	ReasonMaintenance ReasonCode = "MAINTENANCE"
	// ReasonClosedToday means the store does not open on this weekday.
	ReasonClosedToday ReasonCode = "CLOSED_TODAY"
	// ReasonOutsideOrderHours means no active order slot covers the time.
	ReasonOutsideOrderHours ReasonCode = "OUTSIDE_ORDER_HOURS"
	// ReasonQuantityExceeded means the per-user quantity cap was hit.
	ReasonQuantityExceeded ReasonCode = "QUANTITY_EXCEEDED"
	// ReasonCODDisabled means cash on delivery is not accepted.
	ReasonCODDisabled ReasonCode = "COD_DISABLED"
	// ReasonCODAmountTooLow means the amount is under the COD bracket.
	ReasonCODAmountTooLow ReasonCode = "COD_AMOUNT_TOO_LOW"
	// ReasonCODAmountTooHigh means the amount is over the COD bracket.
	ReasonCODAmountTooHigh ReasonCode = "COD_AMOUNT_TOO_HIGH"
	// ReasonStoreUnavailable means the settings store could not be
	// reached; admission fails closed.
	ReasonStoreUnavailable ReasonCode = "STORE_UNAVAILABLE"
)

// OrderContext is the inbound order described to the evaluator.
type OrderContext struct {
	SellerID       string        `json:"seller_id"`       // Target seller.
	Quantity       int           `json:"quantity"`        // Ordered quantity, > 0.
	Amount         float64       `json:"amount"`          // Order amount, >= 0.
	PaymentMethod  PaymentMethod `json:"payment_method"`  // COD or ONLINE.
	EvaluationTime time.Time     `json:"evaluation_time"` // Defaults to call time when zero.
}

// InvalidOrderError reports a malformed order context.
type InvalidOrderError struct {
	Field   string // Offending field name.
	Message string // Human-readable reason.
}

// Error implements the error interface.
func (e *InvalidOrderError) Error() string {
	return fmt.Sprintf("admission: invalid %s: %s", e.Field, e.Message)
}

// Validate checks the order context shape before evaluation.
func (o OrderContext) Validate() error {
	if o.SellerID == "" {
		return &InvalidOrderError{Field: "seller_id", Message: "must not be empty"}
	}
	if o.Quantity <= 0 {
		return &InvalidOrderError{Field: "quantity", Message: "must be greater than zero"}
	}
	if o.Amount < 0 {
		return &InvalidOrderError{Field: "amount", Message: "must not be negative"}
	}
	if o.PaymentMethod != PaymentCOD && o.PaymentMethod != PaymentOnline {
		return &InvalidOrderError{Field: "payment_method", Message: "must be COD or ONLINE"}
	}
	return nil
}

// Decision is the evaluator's output: allow or reject with a reason a
// caller can surface to an end user without re-deriving it.
type Decision struct {
	Allowed    bool           `json:"allowed"`               // Whether the order is admitted.
	ReasonCode ReasonCode     `json:"reason_code,omitempty"` // Rejection classification.
	Message    string         `json:"message"`               // Display message.
	Details    map[string]any `json:"details,omitempty"`     // Structured limits and context.
}

// allow returns the passing decision.
func allow() Decision {
	return Decision{Allowed: true, Message: "order accepted"}
}

// reject builds a rejection decision.
func reject(code ReasonCode, message string, details map[string]any) Decision {
	return Decision{Allowed: false, ReasonCode: code, Message: message, Details: details}
}
