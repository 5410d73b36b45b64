package models

import "time"

// Supplier - поставщик
type Supplier struct {
	SupplierCode      int    `gorm:"primaryKey;autoIncrement" json:"supplier_code"`
	CompanyName       string `gorm:"size:150;not null" json:"company_name"`
	Contacts          string `gorm:"type:text;not null" json:"contacts"`
	Country           string `gorm:"size:50;not null" json:"country"`
	ReliabilityRating int    `json:"reliability_rating"`
	Specialization    string `gorm:"size:100" json:"specialization"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Supplier) TableName() string { return "suppliers" }
