package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bouquet - букет витрины (старая модель)
type Bouquet struct {
	ID           int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Size         string          `gorm:"size:255" json:"size"` // маленький, средний, большой
	FlowersCount int             `json:"flowersCount"`
	Occasion     string          `gorm:"size:255" json:"occasion"`
	InStock      bool            `gorm:"default:true" json:"inStock"`
	ImageURL     string          `gorm:"size:255" json:"imageUrl"`
	IsCustom     bool            `gorm:"default:false" json:"isCustom"`
	Composition  string          `gorm:"type:text" json:"composition"` // состав в JSON

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Bouquet) TableName() string { return "bouquets" }
