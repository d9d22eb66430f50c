package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/clockshop-api/internal/application/service"
	"github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/sangkips/clockshop-api/internal/presentation/http/dto/request"
	"github.com/sangkips/clockshop-api/internal/presentation/http/dto/response"
)

// CatalogHandler handles products, categories, brands and warehouses
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListProducts handles listing products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.catalogService.ListProducts(c.Request.Context(), &repository.ProductFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		Search:     filter.Search,
		CategoryID: optionalUUID(filter.CategoryID),
		BrandID:    optionalUUID(filter.BrandID),
		InStock:    filter.InStock,
		ActiveOnly: filter.ActiveOnly,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// CreateProduct handles creating a product
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req request.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), productInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// GetProduct handles getting a single product
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// UpdateProduct handles updating a product
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := paramID(c, "id", "product")
	if !ok {
		return
	}
	var req request.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, productInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

func productInput(req *request.ProductRequest) *service.ProductInput {
	return &service.ProductInput{
		CategoryID:   req.CategoryID,
		BrandID:      req.BrandID,
		SKU:          req.SKU,
		Name:         req.Name,
		ModelNumber:  req.ModelNumber,
		Description:  req.Description,
		DefaultPrice: req.DefaultPrice,
		IsActive:     req.IsActive,
	}
}

// ListCategories handles listing categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Categories retrieved successfully", categories)
}

// CreateCategory handles creating a category
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req request.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), &service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Category created successfully", category)
}

// ListBrands handles listing brands
func (h *CatalogHandler) ListBrands(c *gin.Context) {
	brands, err := h.catalogService.ListBrands(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Brands retrieved successfully", brands)
}

// CreateBrand handles creating a brand
func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var req request.BrandRequest
	if !bindJSON(c, &req) {
		return
	}

	brand, err := h.catalogService.CreateBrand(c.Request.Context(), &service.BrandInput{
		Name:    req.Name,
		Country: req.Country,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Brand created successfully", brand)
}

// ListWarehouses handles listing warehouses
func (h *CatalogHandler) ListWarehouses(c *gin.Context) {
	warehouses, err := h.catalogService.ListWarehouses(c.Request.Context(), queryBool(c, "active_only"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Warehouses retrieved successfully", warehouses)
}

// CreateWarehouse handles creating a warehouse
func (h *CatalogHandler) CreateWarehouse(c *gin.Context) {
	var req request.WarehouseRequest
	if !bindJSON(c, &req) {
		return
	}

	warehouse, err := h.catalogService.CreateWarehouse(c.Request.Context(), &service.WarehouseInput{
		Name:    req.Name,
		Code:    req.Code,
		Address: req.Address,
		IsShop:  req.IsShop,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Warehouse created successfully", warehouse)
}

// SetWarehouseStatus handles activating or deactivating a warehouse
func (h *CatalogHandler) SetWarehouseStatus(c *gin.Context) {
	id, ok := paramID(c, "id", "warehouse")
	if !ok {
		return
	}
	var req request.WarehouseStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	warehouse, err := h.catalogService.SetWarehouseActive(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Warehouse updated successfully", warehouse)
}
