package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SaleStatus string

const (
	SaleDrafted   SaleStatus = "оформлен"
	SalePaid      SaleStatus = "оплачен"
	SaleCancelled SaleStatus = "отменен"
)

func (s SaleStatus) Valid() bool {
	return s == SaleDrafted || s == SalePaid || s == SaleCancelled
}

// Sale - продажа (чек)
type Sale struct {
	ReceiptNumber int             `gorm:"primaryKey;autoIncrement" json:"receipt_number"`
	SaleDatetime  time.Time       `gorm:"not null" json:"sale_datetime"`
	EmployeeID    int             `gorm:"not null;index" json:"employee_id"`
	CustomerCode  int             `gorm:"not null;index" json:"customer_code"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status        SaleStatus      `gorm:"size:20;default:оформлен" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Employee  *Employee  `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
	Customer  *Customer  `gorm:"foreignKey:CustomerCode;references:CustomerCode" json:"customer,omitempty"`
	SaleItems []SaleItem `gorm:"foreignKey:ReceiptNumber;references:ReceiptNumber" json:"sale_items,omitempty"`
}

func (Sale) TableName() string { return "sales" }
