package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/clockshop-api/internal/application/service"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	"github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/sangkips/clockshop-api/internal/presentation/http/dto/response"
)

// AuditHandler exposes the audit trail
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List handles listing audit entries, newest first
func (h *AuditHandler) List(c *gin.Context) {
	var filter struct {
		Action   string `form:"action"`
		Model    string `form:"model"`
		ObjectID string `form:"object_id"`
		Page     int    `form:"page"`
		PerPage  int    `form:"per_page"`
	}
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.AuditFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		ModelName:  filter.Model,
		ObjectID:   filter.ObjectID,
	}
	if filter.Action != "" {
		action := enum.AuditAction(filter.Action)
		params.Action = &action
	}

	result, err := h.auditService.ListAuditLogs(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Audit logs retrieved successfully", result)
}
