package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/clockshop-api/internal/domain/entity"
	"github.com/sangkips/clockshop-api/internal/domain/enum"
	"github.com/sangkips/clockshop-api/internal/domain/ledger"
	"github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/sangkips/clockshop-api/pkg/apperror"
	"github.com/sangkips/clockshop-api/pkg/pagination"
	"github.com/sangkips/clockshop-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// CatalogService handles products, categories, brands and warehouses
type CatalogService struct {
	store repository.TxManager
	audit AuditSink
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store repository.TxManager, audit AuditSink) *CatalogService {
	return &CatalogService{
		store: store,
		audit: audit,
	}
}

// ProductInput represents the create and update product input
type ProductInput struct {
	CategoryID   *uuid.UUID
	BrandID      *uuid.UUID
	SKU          string          `validate:"max=100"`
	Name         string          `validate:"required,max=255"`
	ModelNumber  string          `validate:"max=100"`
	Description  string
	DefaultPrice decimal.Decimal `validate:"gte=0"`
	IsActive     *bool
}

// CreateProduct creates a new product, generating a SKU when none is given
func (s *CatalogService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		sku = utils.GenerateSKU(input.Name)
	}

	product := &entity.Product{
		CategoryID:   input.CategoryID,
		BrandID:      input.BrandID,
		SKU:          sku,
		Name:         input.Name,
		ModelNumber:  input.ModelNumber,
		Description:  input.Description,
		DefaultPrice: input.DefaultPrice.Round(2),
		IsActive:     input.IsActive == nil || *input.IsActive,
	}
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		if err := s.checkProductRefs(ctx, tx, input); err != nil {
			return err
		}
		existing, err := tx.Products().GetBySKU(ctx, sku)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.NewConflictError("Product SKU already exists")
		}
		return tx.Products().Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEvent{
		Action:   enum.AuditCreate,
		Entity:   "Product",
		ObjectID: product.ID.String(),
		Summary:  product.Name,
		Changes: map[string]interface{}{
			"sku":           product.SKU,
			"default_price": product.DefaultPrice,
		},
	})
	return s.GetProduct(ctx, product.ID)
}

// UpdateProduct updates catalog fields. Stock is never set from here.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	changes := make(map[string]interface{})
	var product *entity.Product
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		product, err = tx.Products().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return ledger.NotFound("product", id)
		}
		if err := s.checkProductRefs(ctx, tx, input); err != nil {
			return err
		}

		if sku := strings.TrimSpace(input.SKU); sku != "" && sku != product.SKU {
			existing, err := tx.Products().GetBySKU(ctx, sku)
			if err != nil {
				return err
			}
			if existing != nil {
				return apperror.NewConflictError("Product SKU already exists")
			}
			changes["sku"] = sku
			product.SKU = sku
		}
		if input.Name != product.Name {
			changes["name"] = input.Name
		}
		if !input.DefaultPrice.Round(2).Equal(product.DefaultPrice) {
			changes["default_price"] = input.DefaultPrice.Round(2)
		}
		if input.IsActive != nil && *input.IsActive != product.IsActive {
			changes["is_active"] = *input.IsActive
			product.IsActive = *input.IsActive
		}

		product.CategoryID = input.CategoryID
		product.BrandID = input.BrandID
		product.Name = input.Name
		product.ModelNumber = input.ModelNumber
		product.Description = input.Description
		product.DefaultPrice = input.DefaultPrice.Round(2)
		product.Category = nil
		product.Brand = nil
		return tx.Products().Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	if len(changes) > 0 {
		s.audit.Record(ctx, AuditEvent{
			Action:   enum.AuditUpdate,
			Entity:   "Product",
			ObjectID: id.String(),
			Summary:  product.Name,
			Changes:  changes,
		})
	}
	return s.GetProduct(ctx, id)
}

func (s *CatalogService) checkProductRefs(ctx context.Context, tx repository.Store, input *ProductInput) error {
	if input.CategoryID != nil {
		category, err := tx.Categories().GetByID(ctx, *input.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return ledger.NotFound("category", *input.CategoryID)
		}
	}
	if input.BrandID != nil {
		brand, err := tx.Brands().GetByID(ctx, *input.BrandID)
		if err != nil {
			return err
		}
		if brand == nil {
			return ledger.NotFound("brand", *input.BrandID)
		}
	}
	return nil
}

// GetProduct retrieves a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.store.Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ledger.NotFound("product", id)
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *CatalogService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.store.Products().List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(products, params.Pagination, total), nil
}

// CategoryInput represents the create category input
type CategoryInput struct {
	Name        string `validate:"required,max=255"`
	Description string
}

// CreateCategory creates a new category
func (s *CatalogService) CreateCategory(ctx context.Context, input *CategoryInput) (*entity.Category, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	category := &entity.Category{Name: strings.TrimSpace(input.Name), Description: input.Description}
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		return tx.Categories().Create(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lists all categories
func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.store.Categories().List(ctx)
}

// BrandInput represents the create brand input
type BrandInput struct {
	Name    string `validate:"required,max=255"`
	Country string `validate:"max=100"`
}

// CreateBrand creates a new brand
func (s *CatalogService) CreateBrand(ctx context.Context, input *BrandInput) (*entity.Brand, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	brand := &entity.Brand{Name: strings.TrimSpace(input.Name), Country: input.Country}
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		return tx.Brands().Create(ctx, brand)
	})
	if err != nil {
		return nil, err
	}
	return brand, nil
}

// ListBrands lists all brands
func (s *CatalogService) ListBrands(ctx context.Context) ([]entity.Brand, error) {
	return s.store.Brands().List(ctx)
}

// WarehouseInput represents the create warehouse input
type WarehouseInput struct {
	Name    string `validate:"required,max=255"`
	Code    string `validate:"required,max=50"`
	Address string
	IsShop  bool
}

// CreateWarehouse creates a new active warehouse
func (s *CatalogService) CreateWarehouse(ctx context.Context, input *WarehouseInput) (*entity.Warehouse, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	warehouse := &entity.Warehouse{
		Name:     input.Name,
		Code:     strings.ToUpper(strings.TrimSpace(input.Code)),
		Address:  input.Address,
		IsShop:   input.IsShop,
		IsActive: true,
	}
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		return tx.Warehouses().Create(ctx, warehouse)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEvent{
		Action:   enum.AuditCreate,
		Entity:   "Warehouse",
		ObjectID: warehouse.ID.String(),
		Summary:  warehouse.Name,
		Changes:  map[string]interface{}{"code": warehouse.Code, "is_shop": warehouse.IsShop},
	})
	return warehouse, nil
}

// SetWarehouseActive activates or deactivates a warehouse. Inactive
// warehouses keep their stock but take part in no new movements.
func (s *CatalogService) SetWarehouseActive(ctx context.Context, id uuid.UUID, active bool) (*entity.Warehouse, error) {
	var warehouse *entity.Warehouse
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		warehouse, err = tx.Warehouses().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return ledger.NotFound("warehouse", id)
		}
		warehouse.IsActive = active
		return tx.Warehouses().Update(ctx, warehouse)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEvent{
		Action:   enum.AuditUpdate,
		Entity:   "Warehouse",
		ObjectID: id.String(),
		Summary:  warehouse.Name,
		Changes:  map[string]interface{}{"is_active": active},
	})
	return warehouse, nil
}

// GetWarehouse retrieves a warehouse by ID
func (s *CatalogService) GetWarehouse(ctx context.Context, id uuid.UUID) (*entity.Warehouse, error) {
	warehouse, err := s.store.Warehouses().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, ledger.NotFound("warehouse", id)
	}
	return warehouse, nil
}

// ListWarehouses lists warehouses, the shop first
func (s *CatalogService) ListWarehouses(ctx context.Context, activeOnly bool) ([]entity.Warehouse, error) {
	return s.store.Warehouses().List(ctx, activeOnly)
}
