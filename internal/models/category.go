package models

import "time"

// Category - категория товара (дерево через parent_category_id)
type Category struct {
	CategoryCode     int    `gorm:"primaryKey;autoIncrement" json:"category_code"`
	CategoryName     string `gorm:"size:100;not null" json:"category_name"`
	HierarchyLevel   int    `gorm:"not null" json:"hierarchy_level"`
	ParentCategoryID *int   `gorm:"index" json:"parent_category_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Parent   *Category  `gorm:"foreignKey:ParentCategoryID;references:CategoryCode" json:"parent,omitempty"`
	Children []Category `gorm:"foreignKey:ParentCategoryID;references:CategoryCode" json:"children,omitempty"`
}

func (Category) TableName() string { return "categories" }
