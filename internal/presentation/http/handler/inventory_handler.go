package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/clockshop-api/internal/application/service"
	"github.com/sangkips/clockshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/clockshop-api/internal/presentation/http/dto/response"
)

// InventoryHandler handles batches and purchases
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// ReceiveBatch handles receiving a single batch
func (h *InventoryHandler) ReceiveBatch(c *gin.Context) {
	var req request.ReceiveBatchRequest
	if !bindJSON(c, &req) {
		return
	}

	batch, err := h.inventoryService.ReceiveBatch(c.Request.Context(), &service.ReceiveBatchInput{
		ProductID:    req.ProductID,
		WarehouseID:  req.WarehouseID,
		BuyPrice:     req.BuyPrice,
		Quantity:     req.Quantity,
		PurchaseDate: req.PurchaseDate,
		Supplier:     req.Supplier,
		Notes:        req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Batch received successfully", batch)
}

// GetBatch handles getting a single batch
func (h *InventoryHandler) GetBatch(c *gin.Context) {
	id, ok := paramID(c, "id", "batch")
	if !ok {
		return
	}

	batch, err := h.inventoryService.GetBatch(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Batch retrieved successfully", batch)
}

// ListProductBatches handles listing the batches of a product
func (h *InventoryHandler) ListProductBatches(c *gin.Context) {
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}

	batches, err := h.inventoryService.ListBatches(c.Request.Context(), id, queryBool(c, "in_stock"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Batches retrieved successfully", batches)
}

// RecalculateProductStock handles rebuilding a product's total stock
func (h *InventoryHandler) RecalculateProductStock(c *gin.Context) {
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}

	product, err := h.inventoryService.RecalculateProductStock(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock recalculated successfully", product)
}

// CreatePurchase handles recording a purchase
func (h *InventoryHandler) CreatePurchase(c *gin.Context) {
	var req request.CreatePurchaseRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]service.PurchaseLineInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.PurchaseLineInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	purchase, err := h.inventoryService.CreatePurchase(c.Request.Context(), &service.CreatePurchaseInput{
		WarehouseID:  req.WarehouseID,
		Supplier:     req.Supplier,
		PurchaseDate: req.PurchaseDate,
		Notes:        req.Notes,
		Items:        items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase created successfully", purchase)
}

// GetPurchase handles getting a single purchase
func (h *InventoryHandler) GetPurchase(c *gin.Context) {
	id, ok := paramID(c, "id", "purchase")
	if !ok {
		return
	}

	purchase, err := h.inventoryService.GetPurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Purchase retrieved successfully", purchase)
}

// ListPurchases handles listing purchases
func (h *InventoryHandler) ListPurchases(c *gin.Context) {
	var filter request.StatusFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.inventoryService.ListPurchases(c.Request.Context(), pageParams(filter.Page, filter.PerPage))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Purchases retrieved successfully", result)
}
