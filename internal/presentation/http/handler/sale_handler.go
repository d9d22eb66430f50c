package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/clockshop-api/internal/application/service"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	"github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/sangkips/clockshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/clockshop-api/internal/presentation/http/dto/response"
)

// SaleHandler handles checkout, cancellation, payments and returns
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Create handles a checkout
func (h *SaleHandler) Create(c *gin.Context) {
	var req request.CreateSaleRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]service.SaleLineInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.SaleLineInput{
			ProductID:   item.ProductID,
			BatchID:     item.BatchID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
		}
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), &service.CreateSaleInput{
		CustomerID:     req.CustomerID,
		SaleDate:       req.SaleDate,
		DiscountAmount: req.DiscountAmount,
		TaxAmount:      req.TaxAmount,
		Notes:          req.Notes,
		Items:          items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale created successfully", sale)
}

// List handles listing sales
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		Search:     filter.Search,
		Status:     optionalStatus(filter.Status),
		CustomerID: optionalUUID(filter.CustomerID),
		StartDate:  optionalDate(filter.StartDate),
		EndDate:    optionalDate(filter.EndDate),
	}
	if filter.PaymentStatus != "" {
		ps := enum.PaymentStatus(filter.PaymentStatus)
		params.PaymentStatus = &ps
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles getting a single sale with its items
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "sale")
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale retrieved successfully", sale)
}

// Cancel handles cancelling a sale
func (h *SaleHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id", "sale")
	if !ok {
		return
	}

	sale, err := h.saleService.CancelSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale cancelled successfully", sale)
}

// RecalculatePayments rebuilds the sale's paid amount from its payments
func (h *SaleHandler) RecalculatePayments(c *gin.Context) {
	id, ok := paramID(c, "id", "sale")
	if !ok {
		return
	}

	sale, err := h.saleService.RecalculatePaidAmount(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale payments recalculated successfully", sale)
}

// RecordPayment handles a payment against a sale
func (h *SaleHandler) RecordPayment(c *gin.Context) {
	id, ok := paramID(c, "id", "sale")
	if !ok {
		return
	}
	var req request.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.saleService.RecordSalePayment(c.Request.Context(), id, paymentInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Payment recorded successfully", result)
}

// ListPayments handles listing the payments of a sale
func (h *SaleHandler) ListPayments(c *gin.Context) {
	id, ok := paramID(c, "id", "sale")
	if !ok {
		return
	}

	payments, err := h.saleService.ListSalePayments(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payments retrieved successfully", payments)
}

// CreateReturn handles goods returned against a sale
func (h *SaleHandler) CreateReturn(c *gin.Context) {
	id, ok := paramID(c, "id", "sale")
	if !ok {
		return
	}
	var req request.CreateReturnRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]service.ReturnLineInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.ReturnLineInput{SaleItemID: item.SaleItemID, Quantity: item.Quantity}
	}

	ret, err := h.saleService.CreateReturn(c.Request.Context(), id, &service.CreateReturnInput{
		Reason:     req.Reason,
		ReturnDate: req.ReturnDate,
		Items:      items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Return recorded successfully", ret)
}

// ListReturns handles listing the returns of a sale
func (h *SaleHandler) ListReturns(c *gin.Context) {
	id, ok := paramID(c, "id", "sale")
	if !ok {
		return
	}

	returns, err := h.saleService.ListReturns(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Returns retrieved successfully", returns)
}

func paymentInput(req *request.PaymentRequest) *service.PaymentInput {
	return &service.PaymentInput{
		Amount:    req.Amount,
		Method:    req.Method,
		Reference: req.Reference,
		Notes:     req.Notes,
		PaidAt:    req.PaidAt,
	}
}
