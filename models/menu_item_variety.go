package models

import (
	"time"

	"gorm.io/gorm"
)

// MenuItemVariety is a priced variant of a menu item (size, option).
// PriceDelta is added to the item base price when snapshotting order lines.
type MenuItemVariety struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	MenuItemID uint           `gorm:"not null;index" json:"menu_item_id"`
	MenuItem   MenuItem       `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	TenantID   uint           `gorm:"not null;index" json:"tenant_id"`
	Name       string         `gorm:"type:varchar(100);not null" json:"name"`
	PriceDelta float64        `gorm:"type:decimal(10,2);not null;default:0.00" json:"price_delta"`
	Position   int            `gorm:"not null;default:0" json:"position"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
