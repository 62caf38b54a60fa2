package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vendora/vendora-backend/internal/admission"
)

// AdmissionHandler exposes the order admission check consumed by the
// order-placement workflow.
type AdmissionHandler struct {
	gateway *admission.Gateway // Admission decision surface.
}

// NewAdmissionHandler constructs an admission handler.
func NewAdmissionHandler(gateway *admission.Gateway) *AdmissionHandler {
	return &AdmissionHandler{gateway: gateway}
}

// admissionRequest captures the inbound order context.
type admissionRequest struct {
	SellerID       string     `json:"seller_id"`       // Target seller.
	Quantity       int        `json:"quantity"`        // Ordered quantity.
	Amount         float64    `json:"amount"`          // Order amount.
	PaymentMethod  string     `json:"payment_method"`  // COD or ONLINE.
	EvaluationTime *time.Time `json:"evaluation_time"` // Optional; defaults to now.
}

// Check evaluates order admission: 200 allowed, 400 malformed input,
// 403 policy rejection, 503 maintenance or settings-store failure.
func (h *AdmissionHandler) Check(c *gin.Context) {
	var body admissionRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	order := admission.OrderContext{
		SellerID:      body.SellerID,
		Quantity:      body.Quantity,
		Amount:        body.Amount,
		PaymentMethod: admission.PaymentMethod(body.PaymentMethod),
	}
	if body.EvaluationTime != nil {
		order.EvaluationTime = *body.EvaluationTime
	}

	decision, settings, err := h.gateway.Check(c.Request.Context(), order)
	if err != nil {
		var invalidErr *admission.InvalidOrderError
		if errors.As(err, &invalidErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalidErr.Message, "field": invalidErr.Field})
			return
		}
		// Store failure: the gateway already decided to fail closed.
		c.JSON(http.StatusServiceUnavailable, decisionPayload(decision))
		return
	}

	if !decision.Allowed {
		status := http.StatusForbidden
		if decision.ReasonCode == admission.ReasonMaintenance {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, decisionPayload(decision))
		return
	}

	payload := decisionPayload(decision)
	if order.PaymentMethod == admission.PaymentCOD {
		payload["cod_charges"] = settings.CODSettings.Data().CODCharges
	}
	c.JSON(http.StatusOK, payload)
}

// decisionPayload converts a decision into a response body.
func decisionPayload(decision admission.Decision) gin.H {
	payload := gin.H{
		"allowed": decision.Allowed,
		"message": decision.Message,
	}
	if decision.ReasonCode != "" {
		payload["reason_code"] = decision.ReasonCode
	}
	if len(decision.Details) > 0 {
		payload["details"] = decision.Details
	}
	return payload
}
