package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.products (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name        VARCHAR(200) NOT NULL,
//     category    VARCHAR(100) NOT NULL,
//     price       NUMERIC NOT NULL,
//     description TEXT,
//     attributes  JSONB,
//     created_at  TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"column:name;type:varchar(200);not null" json:"name"`
	Category    string         `gorm:"column:category;type:varchar(100);not null;index" json:"category"`
	Price       float64        `gorm:"column:price;type:numeric;not null" json:"price"`
	Description string         `gorm:"column:description;type:text" json:"description,omitempty"`
	Attributes  datatypes.JSON `gorm:"column:attributes" json:"attributes,omitempty"`
	CreatedAt   time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}

// ProductPopularity is the aggregate used by the heuristic ranking:
// how many order items reference a product across the whole store.
type ProductPopularity struct {
	ProductID uint  `json:"product_id"`
	Orders    int64 `json:"orders"`
}
