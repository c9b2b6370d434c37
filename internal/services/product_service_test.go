package services

import (
	"testing"

	"storehub_backend/internal/models"
	"storehub_backend/internal/services/dto"
	"storehub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductServiceWithSender(products ...*models.Product) (ProductService, *fakeEmailSender, *fakeNotificationRepo) {
	sender := newFakeEmailSender()
	notificationRepo := newFakeNotificationRepo()
	userRepo := newFakeUserRepo(activeAdmin("admin-001", "ops1@example.com"))
	alerts := NewStockAlertService(userRepo, notificationRepo, sender)
	return NewProductService(newFakeProductRepo(products...), alerts), sender, notificationRepo
}

func TestAdjustStock_CrossingThresholdTriggersAlert(t *testing.T) {
	product := &models.Product{
		BaseModel:     models.BaseModel{ID: "product-001"},
		Name:          "Ceramic Mug",
		SKU:           "MUG-01",
		Price:         12.50,
		StockQuantity: 20,
		MinStock:      5,
		Active:        true,
	}
	service, sender, _ := newProductServiceWithSender(product)

	response, err := service.AdjustStock("product-001", &dto.AdjustStockRequest{Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, 3, response.Product.StockQuantity)
	assert.True(t, response.Product.LowStock)
	require.NotNil(t, response.Alert)
	assert.True(t, response.Alert.Triggered)
	assert.Equal(t, 1, response.Alert.EmailsSent)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "ops1@example.com", sender.sent[0].to)
}

func TestAdjustStock_AlreadyLowDoesNotReAlert(t *testing.T) {
	product := &models.Product{
		BaseModel:     models.BaseModel{ID: "product-001"},
		Name:          "Ceramic Mug",
		SKU:           "MUG-01",
		Price:         12.50,
		StockQuantity: 4,
		MinStock:      5,
		Active:        true,
	}
	service, sender, _ := newProductServiceWithSender(product)

	response, err := service.AdjustStock("product-001", &dto.AdjustStockRequest{Quantity: 2})
	require.NoError(t, err)

	assert.Nil(t, response.Alert)
	assert.Empty(t, sender.sent)
}

func TestAdjustStock_RestockClearsLowState(t *testing.T) {
	product := &models.Product{
		BaseModel:     models.BaseModel{ID: "product-001"},
		Name:          "Ceramic Mug",
		SKU:           "MUG-01",
		Price:         12.50,
		StockQuantity: 2,
		MinStock:      5,
		Active:        true,
	}
	service, sender, _ := newProductServiceWithSender(product)

	response, err := service.AdjustStock("product-001", &dto.AdjustStockRequest{Quantity: 100})
	require.NoError(t, err)

	assert.False(t, response.Product.LowStock)
	assert.Nil(t, response.Alert)
	assert.Empty(t, sender.sent)
}

func TestAdjustStock_UnknownProduct(t *testing.T) {
	service, _, _ := newProductServiceWithSender()

	_, err := service.AdjustStock("missing", &dto.AdjustStockRequest{Quantity: 3})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestCreateProduct_AppliesDefaultThreshold(t *testing.T) {
	service, _, _ := newProductServiceWithSender()

	product, err := service.CreateProduct(&dto.CreateProductRequest{
		Name:  "Ceramic Mug",
		SKU:   "MUG-01",
		Price: 12.50,
		Stock: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, product.MinStock)
	assert.True(t, product.Active)
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	service, _, _ := newProductServiceWithSender(&models.Product{
		BaseModel: models.BaseModel{ID: "product-001"},
		Name:      "Ceramic Mug",
		SKU:       "MUG-01",
		Price:     12.50,
		Active:    true,
	})

	_, err := service.CreateProduct(&dto.CreateProductRequest{
		Name:  "Another Mug",
		SKU:   "MUG-01",
		Price: 9.99,
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPCode)
}

func TestGetLowStockProducts_FiltersByThreshold(t *testing.T) {
	service, _, _ := newProductServiceWithSender(
		&models.Product{BaseModel: models.BaseModel{ID: "product-001"}, Name: "Mug", SKU: "MUG-01", Price: 12.50, StockQuantity: 2, MinStock: 5, Active: true},
		&models.Product{BaseModel: models.BaseModel{ID: "product-002"}, Name: "Plate", SKU: "PLT-01", Price: 8.00, StockQuantity: 40, MinStock: 5, Active: true},
		&models.Product{BaseModel: models.BaseModel{ID: "product-003"}, Name: "Bowl", SKU: "BWL-01", Price: 6.00, StockQuantity: 1, MinStock: 5, Active: false},
	)

	products, err := service.GetLowStockProducts()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Mug", products[0].Name)
	assert.True(t, products[0].LowStock)
}
