package models

import (
	"time"

	"gorm.io/gorm"
)

// Category orders menu items. Siblings are scoped by (tenant, group);
// GroupID is nil for ungrouped categories, which form their own scope.
type Category struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	TenantID  uint           `gorm:"not null;index" json:"tenant_id"`
	Tenant    Tenant         `gorm:"foreignKey:TenantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	GroupID   *uint          `gorm:"index" json:"group_id,omitempty"`
	Group     *CategoryGroup `gorm:"foreignKey:GroupID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"group,omitempty"`
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`
	Position  int            `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
