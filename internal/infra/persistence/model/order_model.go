package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. Orders are written once at checkout
// and never updated.
type OrderModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Total     float64   `gorm:"not null"`
	TotalXP   int       `gorm:"column:total_xp;not null"`
	Status    string    `gorm:"type:varchar(32);not null"`
	CreatedAt time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Product name and unit price
// are snapshots taken at checkout time, deliberately denormalized so catalog
// edits never rewrite order history.
type OrderItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductName string    `gorm:"type:varchar(255);not null"`
	Price       float64   `gorm:"not null"`
	Quantity    int       `gorm:"not null"`
	Size        string    `gorm:"type:varchar(16)"`
	XPAwarded   int       `gorm:"column:xp_awarded;not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
