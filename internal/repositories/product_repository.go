package repositories

import (
	"errors"
	"strings"

	"storehub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductAlreadyExists = errors.New("product already exists")
)

type ProductRepository interface {
	Create(product *models.Product) error
	FindByID(id string) (*models.Product, error)
	FindAll(criteria ProductCriteria) ([]models.Product, int64, error)
	FindLowStock() ([]models.Product, error)
	Update(product *models.Product) error
	UpdateStock(productID string, quantity int) error
}

type ProductCriteria struct {
	ActiveOnly bool   `form:"active_only"`
	Search     string `form:"search"`
	Page       int    `form:"page" binding:"min=1"`
	PageSize   int    `form:"page_size" binding:"min=1,max=100"`
}

type ProductRepositoryImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

func (r *ProductRepositoryImpl) Create(product *models.Product) error {
	err := r.db.Create(product).Error
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "unique constraint") {
			return ErrProductAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ProductRepositoryImpl) FindByID(id string) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepositoryImpl) FindAll(criteria ProductCriteria) ([]models.Product, int64, error) {
	var products []models.Product
	query := r.db.Model(&models.Product{})

	if criteria.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	if criteria.Search != "" {
		like := "%" + criteria.Search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	err := query.Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&products).Error

	return products, total, err
}

// FindLowStock lists active products at or below their threshold, the
// same set the alert email links to.
func (r *ProductRepositoryImpl) FindLowStock() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("active = ? AND stock_quantity <= min_stock", true).
		Order("stock_quantity ASC").
		Find(&products).Error
	return products, err
}

func (r *ProductRepositoryImpl) Update(product *models.Product) error {
	result := r.db.Model(product).Updates(map[string]interface{}{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"min_stock":   product.MinStock,
		"active":      product.Active,
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *ProductRepositoryImpl) UpdateStock(productID string, quantity int) error {
	result := r.db.Model(&models.Product{}).Where("id = ?", productID).Updates(map[string]interface{}{
		"stock_quantity": quantity,
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
