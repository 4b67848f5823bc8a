package models

import (
	"time"

	"gorm.io/gorm"
)

// CategoryGroup is a top-level grouping of categories, ordered per tenant.
type CategoryGroup struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	TenantID  uint           `gorm:"not null;index" json:"tenant_id"`
	Tenant    Tenant         `gorm:"foreignKey:TenantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`
	Position  int            `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
