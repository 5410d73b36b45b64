package models

import "time"

// GoodsGroup - старая модель категорий витрины. Иерархия исторически задавалась
// двумя полями; авторитетно parent_category_id, base_goods_group оставлено
// только для совместимости данных (deprecated).
type GoodsGroup struct {
	ID               int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string `gorm:"size:255;not null" json:"name"`
	Description      string `gorm:"size:255" json:"description"`
	BaseGoodsGroup   *int   `gorm:"column:base_goods_group" json:"baseGoodsGroup"` // deprecated
	ParentCategoryID *int   `gorm:"index" json:"parent_category_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Parent *GoodsGroup `gorm:"foreignKey:ParentCategoryID;references:ID" json:"parent,omitempty"`
}

func (GoodsGroup) TableName() string { return "goodsgroups" }
