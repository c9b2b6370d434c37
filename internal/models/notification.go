package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string `gorm:"not null;index"`
	Type    string `gorm:"not null"` // "admin_broadcast", "order_status", "low_stock", ...
	Title   string `gorm:"not null"`
	Message string
	Data    datatypes.JSON `gorm:"type:jsonb"` // {"product_id": "...", "order_id": "..."}
	IsRead  bool           `gorm:"default:false"`
	ReadAt  *time.Time
}
