package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	ProductCode   string          `gorm:"index;size:100" json:"product_code"`
	ProductName   string          `gorm:"size:255" json:"product_name"`
	Description   *string         `gorm:"type:text" json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"price"`
	StockQuantity int64           `gorm:"not null;default:0" json:"stock_quantity"`
	IsActive      *bool           `gorm:"not null;default:true" json:"is_active"`
	UpdatedAt     time.Time       `gorm:"type:datetime(3);index;autoUpdateTime:false" json:"updated_at"`
}

func (p Product) GetId() string {
	return p.ID
}

func (p Product) Fillable() map[string]interface{} {
	return map[string]interface{}{
		"product_code":   p.ProductCode,
		"product_name":   p.ProductName,
		"description":    p.Description,
		"price":          p.Price,
		"stock_quantity": p.StockQuantity,
		"is_active":      p.IsActive,
		"updated_at":     p.UpdatedAt,
	}
}
