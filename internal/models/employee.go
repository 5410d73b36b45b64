package models

import "time"

// Employee - сотрудник
type Employee struct {
	EmployeeID   int       `gorm:"primaryKey;autoIncrement" json:"employee_id"`
	FullName     string    `gorm:"size:100;not null" json:"full_name"`
	Position     string    `gorm:"size:50;not null" json:"position"`
	Contacts     string    `gorm:"type:text;not null" json:"contacts"`
	WorkSchedule string    `gorm:"size:50" json:"work_schedule"`
	HireDate     time.Time `gorm:"not null" json:"hire_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Employee) TableName() string { return "employees" }
