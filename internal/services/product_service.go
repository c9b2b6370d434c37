package services

import (
	"errors"

	"storehub_backend/internal/config"
	"storehub_backend/internal/models"
	"storehub_backend/internal/repositories"
	"storehub_backend/internal/services/dto"
	"storehub_backend/pkg/apperrors"
)

type ProductService interface {
	CreateProduct(req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetProduct(productID string) (*dto.ProductResponse, error)
	GetProducts(criteria repositories.ProductCriteria) (*dto.ProductListResponse, error)
	UpdateProduct(productID string, req *dto.UpdateProductRequest) (*dto.ProductResponse, error)

	// Stock management
	AdjustStock(productID string, req *dto.AdjustStockRequest) (*dto.StockUpdateResponse, error)
	GetLowStockProducts() ([]dto.ProductResponse, error)
}

type productService struct {
	productRepo repositories.ProductRepository
	alerts      StockAlertService
}

func NewProductService(productRepo repositories.ProductRepository, alerts StockAlertService) ProductService {
	return &productService{
		productRepo: productRepo,
		alerts:      alerts,
	}
}

func (s *productService) CreateProduct(req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	minStock := config.GetConfig().Store.DefaultMinStock
	if req.MinStock != nil {
		minStock = *req.MinStock
	}

	product := &models.Product{
		Name:          req.Name,
		SKU:           req.SKU,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.Stock,
		MinStock:      minStock,
		Active:        true,
	}

	if err := s.productRepo.Create(product); err != nil {
		if errors.Is(err, repositories.ErrProductAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	return s.buildProductResponse(product), nil
}

func (s *productService) GetProduct(productID string) (*dto.ProductResponse, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	return s.buildProductResponse(product), nil
}

func (s *productService) GetProducts(criteria repositories.ProductCriteria) (*dto.ProductListResponse, error) {
	if criteria.Page < 1 {
		criteria.Page = 1
	}
	if criteria.PageSize < 1 {
		criteria.PageSize = 20
	}
	if criteria.PageSize > 100 {
		criteria.PageSize = 100
	}

	products, total, err := s.productRepo.FindAll(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, *s.buildProductResponse(&products[i]))
	}

	return &dto.ProductListResponse{
		Products:   responses,
		Total:      total,
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
		TotalPages: calculateTotalPages(total, criteria.PageSize),
	}, nil
}

func (s *productService) UpdateProduct(productID string, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.buildProductResponse(product), nil
}

// AdjustStock sets the product's absolute stock level. Crossing the
// minimum threshold on the way down triggers the admin alert; the alert
// outcome rides along in the response but never fails the update.
func (s *productService) AdjustStock(productID string, req *dto.AdjustStockRequest) (*dto.StockUpdateResponse, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	wasLow := product.LowStock()

	if err := s.productRepo.UpdateStock(productID, req.Quantity); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	product.StockQuantity = req.Quantity

	response := &dto.StockUpdateResponse{Product: *s.buildProductResponse(product)}

	// Alert only on the transition into low stock, not on every update
	// while already below threshold.
	if product.LowStock() && !wasLow {
		report, err := s.alerts.CheckAndAlert(product)
		if err == nil {
			response.Alert = report
		}
	}

	return response, nil
}

func (s *productService) GetLowStockProducts() ([]dto.ProductResponse, error) {
	products, err := s.productRepo.FindLowStock()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, *s.buildProductResponse(&products[i]))
	}

	return responses, nil
}

func (s *productService) buildProductResponse(product *models.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            product.ID,
		Name:          product.Name,
		SKU:           product.SKU,
		Description:   product.Description,
		Price:         product.Price,
		StockQuantity: product.StockQuantity,
		MinStock:      product.MinStock,
		LowStock:      product.LowStock(),
		Active:        product.Active,
		CreatedAt:     product.CreatedAt,
	}
}
