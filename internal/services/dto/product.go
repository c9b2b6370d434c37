package dto

import "time"

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	SKU         string  `json:"sku" validate:"required,max=64"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	MinStock    *int    `json:"min_stock" validate:"omitempty,gte=0"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	MinStock    *int     `json:"min_stock" validate:"omitempty,gte=0"`
	Active      *bool    `json:"active"`
}

type AdjustStockRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

type ProductResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	SKU           string    `json:"sku"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	MinStock      int       `json:"min_stock"`
	LowStock      bool      `json:"low_stock"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// StockAlertFailure records one admin the alert could not reach.
type StockAlertFailure struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// StockAlertReport summarizes a low-stock alert fan-out.
type StockAlertReport struct {
	Triggered     bool                `json:"triggered"`
	AdminCount    int                 `json:"admin_count"`
	EmailsSent    int                 `json:"emails_sent"`
	EmailFailures []StockAlertFailure `json:"email_failures,omitempty"`
}

type StockUpdateResponse struct {
	Product ProductResponse   `json:"product"`
	Alert   *StockAlertReport `json:"alert,omitempty"`
}
