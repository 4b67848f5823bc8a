package models

import "time"

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order from JSON to avoid recursive nesting
	Order      Order            `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID uint             `gorm:"not null" json:"menu_item_id"`
	MenuItem   MenuItem         `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menu_item"`
	VarietyID  *uint            `json:"variety_id,omitempty"`
	Variety    *MenuItemVariety `gorm:"foreignKey:VarietyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"variety,omitempty"`
	Quantity   int              `gorm:"not null" json:"quantity"`
	// Price is the unit price snapshot taken when the line was written,
	// base price plus variety delta.
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Notes     string    `gorm:"type:text" json:"notes"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
