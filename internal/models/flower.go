package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Flower - цветок витрины (старая модель, категория через GoodsGroup)
type Flower struct {
	ID          int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	LatinName   string          `gorm:"size:255" json:"latinName"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string          `gorm:"type:text" json:"description"`
	Color       string          `gorm:"size:255" json:"color"`
	Season      string          `gorm:"size:255" json:"season"` // весна, лето, осень, зима, круглый год
	InStock     bool            `gorm:"default:true" json:"inStock"`
	Quantity    int             `gorm:"default:0" json:"quantity"`
	ImageURL    string          `gorm:"size:255" json:"imageUrl"`
	IsPopular   bool            `gorm:"default:false" json:"isPopular"`
	CategoryID  *int            `gorm:"index" json:"categoryId"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Category *GoodsGroup `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`
}

func (Flower) TableName() string { return "flowers" }
