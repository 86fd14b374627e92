package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/lithoprint/printdesk/internal/domain/errors"
	"github.com/lithoprint/printdesk/internal/domain/model"
	"github.com/lithoprint/printdesk/internal/domain/repository"
	"github.com/lithoprint/printdesk/internal/server/http/dto"
)

// OrderHandler manages the staff dashboard endpoints.
type OrderHandler struct {
	facade LedgerFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade PrintFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	filter := repository.OrderFilter{
		Status: model.OrderStatus(c.Query("status")),
		Search: c.Query("q"),
	}
	if filter.Status != "" && !filter.Status.Known() {
		respondError(c, http.StatusBadRequest, "unknown status filter")
		return
	}

	orders, err := h.facade.Orders(c.Request.Context(), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	response := make([]dto.OrderSummaryResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toSummaryResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Detail handles GET /api/order/:id.
func (h *OrderHandler) Detail(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.facade.OrderDetail(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if order == nil {
		respondError(c, http.StatusNotFound, "order not found")
		return
	}

	c.JSON(http.StatusOK, toDetailResponse(order))
}

// UpdateStatus handles POST /api/update-order-status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.facade.UpdateOrderStatus(c.Request.Context(), req.OrderID, model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			respondError(c, http.StatusBadRequest, "unknown order status")
		case errors.Is(err, domainErrors.ErrOrderNotFound):
			respondError(c, http.StatusNotFound, "order not found")
		default:
			respondError(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	c.Status(http.StatusOK)
}

// UpdateItemStatus handles POST /api/update-item-status.
func (h *OrderHandler) UpdateItemStatus(c *gin.Context) {
	var req dto.UpdateItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.facade.UpdateItemStatus(c.Request.Context(), req.OrderID, req.ItemID, model.ItemStatus(req.Status), req.Checked)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			respondError(c, http.StatusBadRequest, "unknown item status")
		case errors.Is(err, domainErrors.ErrItemNotFoundInOrder), errors.Is(err, domainErrors.ErrOrderNotFound):
			respondError(c, http.StatusNotFound, "item not found in order")
		default:
			respondError(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	c.Status(http.StatusOK)
}

// Resend handles POST /api/resend-stl.
func (h *OrderHandler) Resend(c *gin.Context) {
	var req dto.ResendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.facade.ResendItem(c.Request.Context(), req.OrderID, req.ItemID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrItemNotFoundInOrder), errors.Is(err, domainErrors.ErrOrderNotFound):
			respondError(c, http.StatusNotFound, "item not found in order")
		default:
			respondError(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	c.Status(http.StatusOK)
}

func toSummaryResponse(o model.OrderSummary) dto.OrderSummaryResponse {
	r := dto.OrderSummaryResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		CreatedAt:    o.CreatedAt,
		Status:       string(o.Status),
		BoxIncluded:  o.BoxIncluded,
		PictureCount: o.PictureCount,
	}
	if o.Total != nil {
		total := o.Total.StringFixed(2)
		r.Total = &total
	}
	return r
}

func toDetailResponse(o *model.Order) dto.OrderDetailResponse {
	r := dto.OrderDetailResponse{
		ID:          o.ID,
		CreatedAt:   o.CreatedAt,
		Status:      string(o.Status),
		CardLast4:   o.CardLast4,
		BoxIncluded: o.BoxIncluded,
		Items:       make([]dto.OrderItemResponse, 0, len(o.Items)),
	}
	if o.Total != nil {
		total := o.Total.StringFixed(2)
		r.Total = &total
	}
	if o.Customer != nil {
		r.Customer = &dto.CustomerResponse{
			Name:     o.Customer.Name,
			Email:    o.Customer.Email,
			Phone:    o.Customer.Phone,
			Address1: o.Customer.Address1,
			Address2: o.Customer.Address2,
			City:     o.Customer.City,
			State:    o.Customer.State,
			Zip:      o.Customer.Zip,
		}
	}
	for _, item := range o.Items {
		images := make([]string, 0, len(item.Images))
		for _, img := range item.Images {
			images = append(images, img.Filepath)
		}
		r.Items = append(r.Items, dto.OrderItemResponse{
			ItemID:    item.ID,
			ItemName:  item.ItemName,
			PhotoSize: string(item.AspectRatio),
			Price:     item.Price.StringFixed(2),
			Hanger:    item.HasHangers,
			Printed:   item.Printed(),
			Images:    images,
		})
	}
	return r
}
