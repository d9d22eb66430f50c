package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/clockshop-api/internal/application/service"
	"github.com/sangkips/clockshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/clockshop-api/internal/presentation/http/dto/response"
)

// MovementHandler handles warehouse transfers and stock-outs
type MovementHandler struct {
	transferService *service.TransferService
	stockOutService *service.StockOutService
}

// NewMovementHandler creates a new movement handler
func NewMovementHandler(transferService *service.TransferService, stockOutService *service.StockOutService) *MovementHandler {
	return &MovementHandler{
		transferService: transferService,
		stockOutService: stockOutService,
	}
}

func batchQuantities(items []request.BatchQuantityRequest) []service.BatchQuantityInput {
	out := make([]service.BatchQuantityInput, len(items))
	for i, item := range items {
		out[i] = service.BatchQuantityInput{BatchID: item.BatchID, Quantity: item.Quantity}
	}
	return out
}

// CreateTransfer handles creating a pending transfer
func (h *MovementHandler) CreateTransfer(c *gin.Context) {
	var req request.CreateTransferRequest
	if !bindJSON(c, &req) {
		return
	}

	transfer, err := h.transferService.CreateTransfer(c.Request.Context(), &service.CreateTransferInput{
		FromWarehouseID: req.FromWarehouseID,
		ToWarehouseID:   req.ToWarehouseID,
		TransferDate:    req.TransferDate,
		Notes:           req.Notes,
		Items:           batchQuantities(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Transfer created successfully", transfer)
}

// ListTransfers handles listing transfers
func (h *MovementHandler) ListTransfers(c *gin.Context) {
	var filter request.StatusFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.transferService.ListTransfers(c.Request.Context(), optionalStatus(filter.Status), pageParams(filter.Page, filter.PerPage))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Transfers retrieved successfully", result)
}

// GetTransfer handles getting a single transfer
func (h *MovementHandler) GetTransfer(c *gin.Context) {
	id, ok := paramID(c, "id", "transfer")
	if !ok {
		return
	}

	transfer, err := h.transferService.GetTransfer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Transfer retrieved successfully", transfer)
}

// CompleteTransfer handles moving the stock of a pending transfer
func (h *MovementHandler) CompleteTransfer(c *gin.Context) {
	id, ok := paramID(c, "id", "transfer")
	if !ok {
		return
	}

	transfer, err := h.transferService.CompleteTransfer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Transfer completed successfully", transfer)
}

// CancelTransfer handles cancelling a pending transfer
func (h *MovementHandler) CancelTransfer(c *gin.Context) {
	id, ok := paramID(c, "id", "transfer")
	if !ok {
		return
	}

	transfer, err := h.transferService.CancelTransfer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Transfer cancelled successfully", transfer)
}

// CreateStockOut handles creating a pending stock-out
func (h *MovementHandler) CreateStockOut(c *gin.Context) {
	var req request.CreateStockOutRequest
	if !bindJSON(c, &req) {
		return
	}

	stockOut, err := h.stockOutService.CreateStockOut(c.Request.Context(), &service.CreateStockOutInput{
		WarehouseID:  req.WarehouseID,
		Reason:       req.Reason,
		StockOutDate: req.StockOutDate,
		Notes:        req.Notes,
		Items:        batchQuantities(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Stock-out created successfully", stockOut)
}

// ListStockOuts handles listing stock-outs
func (h *MovementHandler) ListStockOuts(c *gin.Context) {
	var filter request.StatusFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.stockOutService.ListStockOuts(c.Request.Context(), optionalStatus(filter.Status), pageParams(filter.Page, filter.PerPage))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Stock-outs retrieved successfully", result)
}

// GetStockOut handles getting a single stock-out
func (h *MovementHandler) GetStockOut(c *gin.Context) {
	id, ok := paramID(c, "id", "stock-out")
	if !ok {
		return
	}

	stockOut, err := h.stockOutService.GetStockOut(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock-out retrieved successfully", stockOut)
}

// CompleteStockOut handles removing the stock of a pending stock-out
func (h *MovementHandler) CompleteStockOut(c *gin.Context) {
	id, ok := paramID(c, "id", "stock-out")
	if !ok {
		return
	}

	stockOut, err := h.stockOutService.CompleteStockOut(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock-out completed successfully", stockOut)
}

// CancelStockOut handles cancelling a stock-out, restoring stock if it was completed
func (h *MovementHandler) CancelStockOut(c *gin.Context) {
	id, ok := paramID(c, "id", "stock-out")
	if !ok {
		return
	}

	stockOut, err := h.stockOutService.CancelStockOut(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock-out cancelled successfully", stockOut)
}
