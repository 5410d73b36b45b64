package models

import "github.com/shopspring/decimal"

// SaleItem - позиция чека. Составной ключ (receipt_number, article).
// price_at_sale - снимок цены на момент продажи, после записи не пересчитывается.
type SaleItem struct {
	ReceiptNumber int             `gorm:"primaryKey;autoIncrement:false" json:"receipt_number"`
	Article       string          `gorm:"primaryKey;size:50" json:"article"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	PriceAtSale   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_at_sale"`

	Sale    *Sale    `gorm:"foreignKey:ReceiptNumber;references:ReceiptNumber" json:"sale,omitempty"`
	Product *Product `gorm:"foreignKey:Article;references:Article" json:"product,omitempty"`
}

func (SaleItem) TableName() string { return "sale_items" }
