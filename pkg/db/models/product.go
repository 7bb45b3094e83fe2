package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Rows are created and deleted by admins only.
type Product struct {
	ID          uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string          `gorm:"column:name;type:text;not null"`
	Description *string         `gorm:"column:description;type:text"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Category    *string         `gorm:"column:category;type:text"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Product) TableName() string {
	return "products"
}
