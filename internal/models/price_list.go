package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "процент"
	DiscountFixed   DiscountType = "фиксированная"
	DiscountPromo   DiscountType = "акция"
)

func (t DiscountType) Valid() bool {
	return t == DiscountPercent || t == DiscountFixed || t == DiscountPromo
}

// PriceList - запись прайс-листа. Актуальная цена товара - запись с максимальной
// effective_date, не превышающей текущий момент.
type PriceList struct {
	PriceID         int             `gorm:"primaryKey;autoIncrement" json:"price_id"`
	Article         string          `gorm:"size:50;not null;index" json:"article"`
	EffectiveDate   time.Time       `gorm:"not null;index" json:"effective_date"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	DiscountType    DiscountType    `gorm:"size:20" json:"discount_type"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"discount_percent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product *Product `gorm:"foreignKey:Article;references:Article" json:"product,omitempty"`
}

func (PriceList) TableName() string { return "pricelist" }
