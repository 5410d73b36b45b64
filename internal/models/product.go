package models

import "time"

// Product - товар. Первичный ключ - артикул (бизнес-ключ, не суррогатный).
type Product struct {
	Article         string `gorm:"primaryKey;size:50" json:"article"`
	ProductName     string `gorm:"size:150;not null" json:"product_name"`
	Description     string `gorm:"type:text" json:"description"`
	CategoryCode    int    `gorm:"not null;index" json:"category_code"`
	CountryOfOrigin string `gorm:"size:50" json:"country_of_origin"`
	Grade           string `gorm:"size:20" json:"grade"`
	ExpirationDate  int    `json:"expiration_date"` // срок годности в днях
	UnitOfMeasure   string `gorm:"size:20;not null" json:"unit_of_measure"`
	SupplierCode    int    `gorm:"not null;index" json:"supplier_code"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Category *Category   `gorm:"foreignKey:CategoryCode;references:CategoryCode" json:"category,omitempty"`
	Supplier *Supplier   `gorm:"foreignKey:SupplierCode;references:SupplierCode" json:"supplier,omitempty"`
	Prices   []PriceList `gorm:"foreignKey:Article;references:Article" json:"prices,omitempty"`
}

func (Product) TableName() string { return "products" }
