package models

type Product struct {
	BaseModel
	Name        string  `gorm:"not null"`
	SKU         string  `gorm:"uniqueIndex;not null"`
	Description string
	Price       float64 `gorm:"not null"`
	// StockQuantity and MinStock drive the low-stock alert: the alert
	// fires when StockQuantity <= MinStock.
	StockQuantity int  `gorm:"not null;default:0"`
	MinStock      int  `gorm:"not null;default:5"`
	Active        bool `gorm:"default:true"`
}

// LowStock reports whether the product is at or below its threshold.
func (p *Product) LowStock() bool {
	return p.StockQuantity <= p.MinStock
}
