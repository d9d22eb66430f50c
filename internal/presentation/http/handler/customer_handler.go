package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/clockshop-api/internal/application/service"
	"github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/sangkips/clockshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/clockshop-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	var filter request.CustomerFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), &repository.CustomerFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		Search:     filter.Search,
		HasDue:     filter.HasDue,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), customerInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Get handles getting a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "customer")
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "customer")
	if !ok {
		return
	}
	var req request.CustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), id, customerInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// RecordPayment handles a payment from a customer
func (h *CustomerHandler) RecordPayment(c *gin.Context) {
	id, ok := paramID(c, "id", "customer")
	if !ok {
		return
	}
	var req request.CustomerPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.customerService.RecordPayment(c.Request.Context(), id, &service.CustomerPaymentInput{
		PaymentInput: *paymentInput(&req.PaymentRequest),
		SaleID:       req.SaleID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}

// ListPayments handles listing a customer's payments
func (h *CustomerHandler) ListPayments(c *gin.Context) {
	id, ok := paramID(c, "id", "customer")
	if !ok {
		return
	}
	var filter request.StatusFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.customerService.ListPayments(c.Request.Context(), id, pageParams(filter.Page, filter.PerPage))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Payments retrieved successfully", result)
}

// RecalculateBalance handles rebuilding a customer's balances from their sales and payments
func (h *CustomerHandler) RecalculateBalance(c *gin.Context) {
	id, ok := paramID(c, "id", "customer")
	if !ok {
		return
	}

	customer, err := h.customerService.RecalculateBalance(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Balance recalculated successfully", customer)
}

func customerInput(req *request.CustomerRequest) *service.CustomerInput {
	return &service.CustomerInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		CreditLimit: req.CreditLimit,
		Notes:       req.Notes,
	}
}
