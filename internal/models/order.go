package models

// Order records a completed checkout. Orders are created by the checkout
// pipeline, which is outside this service; here they are read for the
// profile's order history and order count.
type Order struct {
	BaseModel
	UserID      string      `gorm:"not null;index"`
	Status      OrderStatus `gorm:"type:varchar(20);default:'pending'"`
	TotalAmount float64     `gorm:"not null"`
	ItemCount   int         `gorm:"not null;default:1"`
}
