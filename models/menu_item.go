package models

import (
	"time"

	"gorm.io/gorm"
)

type MenuItem struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	CategoryID  uint              `gorm:"not null;index" json:"category_id"`
	Category    Category          `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Name        string            `gorm:"type:varchar(255);not null" json:"name"`
	Price       float64           `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string            `gorm:"type:text" json:"description"`
	Available   bool              `gorm:"not null;default:true" json:"available"`
	Position    int               `gorm:"not null;default:0" json:"position"`
	Varieties   []MenuItemVariety `gorm:"foreignKey:MenuItemID" json:"varieties,omitempty"`
	CreatedAt   time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`
}
