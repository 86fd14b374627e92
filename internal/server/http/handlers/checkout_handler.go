package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/lithoprint/printdesk/internal/domain/errors"
	"github.com/lithoprint/printdesk/internal/server/http/dto"
	"github.com/lithoprint/printdesk/internal/usecase"
)

// CheckoutHandler manages payment completion.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade PrintFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Complete handles POST /complete-order.
func (h *CheckoutHandler) Complete(c *gin.Context) {
	var req dto.CompleteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OrderID == 0 || req.Email == "" || req.StripeToken == "" {
		respondError(c, http.StatusBadRequest, "orderID, email and stripeToken are required")
		return
	}

	result, err := h.facade.CompleteOrder(c.Request.Context(), usecase.CheckoutInput{
		OrderID:     req.OrderID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.PhoneNumber,
		Address1:    req.AddressLine1,
		Address2:    req.AddressLine2,
		City:        req.City,
		State:       req.State,
		Zip:         req.Zip,
		StripeToken: req.StripeToken,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrOrderNotFound):
			respondError(c, http.StatusNotFound, "order not found")
		case errors.Is(err, domainErrors.ErrPaymentDeclined):
			respondError(c, http.StatusPaymentRequired, "payment declined")
		default:
			respondError(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	c.JSON(http.StatusOK, dto.CompleteOrderResponse{
		OrderID:  result.OrderID,
		Subtotal: result.Totals.Subtotal.StringFixed(2),
		Shipping: result.Totals.Shipping.StringFixed(2),
		Tax:      result.Totals.Tax.StringFixed(2),
		Total:    result.Totals.Total.StringFixed(2),
		ChargeID: result.ChargeID,
	})
}
