package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CustomerType string

const (
	CustomerIndividual   CustomerType = "физическое"
	CustomerOrganization CustomerType = "юридическое"
)

func (t CustomerType) Valid() bool {
	return t == CustomerIndividual || t == CustomerOrganization
}

// Customer - покупатель
type Customer struct {
	CustomerCode               int             `gorm:"primaryKey;autoIncrement" json:"customer_code"`
	FullName                   string          `gorm:"size:100;not null" json:"full_name"`
	Contacts                   string          `gorm:"type:text;not null" json:"contacts"`
	CustomerType               CustomerType    `gorm:"size:20;not null" json:"customer_type"`
	AccumulatedDiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"accumulated_discount_percent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }
