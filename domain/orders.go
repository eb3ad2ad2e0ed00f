package domain

import "time"

const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

type Order struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"column:customer_id;not null;index" json:"customer_id"`
	Status     string    `gorm:"column:status;type:varchar(20);default:PENDING" json:"status"`
	CreatedAt  time.Time `json:"created_at"`

	// Items are cascade-deleted with the order.
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem holds the unit price as a snapshot taken at purchase time.
// It must never be rewritten when the product price changes later.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"column:order_id;not null;index" json:"order_id"`
	ProductID uint    `gorm:"column:product_id;not null;index" json:"product_id"`
	Quantity  int     `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice float64 `gorm:"column:unit_price;type:numeric;not null" json:"unit_price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
