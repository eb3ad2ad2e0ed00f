package domain

import "time"

type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Email     string    `gorm:"column:email;type:varchar(100);unique;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`

	// Orders are cascade-deleted with the customer.
	Orders []Order `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"orders,omitempty"`
}

func (Customer) TableName() string {
	return "customers"
}
