package handlers

import (
	"net/http"

	"storehub_backend/internal/middleware"
	"storehub_backend/internal/models"
	"storehub_backend/internal/repositories"
	"storehub_backend/internal/services"
	"storehub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	*BaseHandler
	productService services.ProductService
}

func NewProductHandler(base *BaseHandler, productService services.ProductService) *ProductHandler {
	return &ProductHandler{
		BaseHandler:    base,
		productService: productService,
	}
}

func (h *ProductHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public catalog
	products := r.Group("/products")
	{
		products.GET("", h.GetProducts)
		products.GET("/:productId", h.GetProduct)
	}

	// Admin stock management
	admin := r.Group("/admin/products")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.POST("", h.CreateProduct)
		admin.GET("", h.GetProducts)
		admin.PUT("/:productId", h.UpdateProduct)
		admin.PATCH("/:productId/stock", h.AdjustStock)
		admin.GET("/low-stock", h.GetLowStockProducts)
	}
}

// --- Catalog handlers ---

func (h *ProductHandler) GetProducts(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	criteria := repositories.ProductCriteria{
		ActiveOnly: c.Query("active_only") != "false",
		Search:     c.Query("search"),
		Page:       page,
		PageSize:   pageSize,
	}

	response, err := h.productService.GetProducts(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Param("productId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// --- Admin handlers ---

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	product, err := h.productService.CreateProduct(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req dto.UpdateProductRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	product, err := h.productService.UpdateProduct(c.Param("productId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) AdjustStock(c *gin.Context) {
	var req dto.AdjustStockRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	response, err := h.productService.AdjustStock(c.Param("productId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProductHandler) GetLowStockProducts(c *gin.Context) {
	products, err := h.productService.GetLowStockProducts()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}
