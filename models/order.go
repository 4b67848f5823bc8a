package models

import "time"

type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	TenantID     uint        `gorm:"not null;index" json:"tenant_id"`
	Tenant       Tenant      `gorm:"foreignKey:TenantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	OrderNumber  int         `gorm:"not null" json:"order_number"`
	OrderType    OrderType   `gorm:"type:varchar(20);not null" json:"order_type"`
	TableID      *uint       `gorm:"index" json:"table_id,omitempty"`
	Table        *Table      `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"table,omitempty"`
	Status       OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalAmount  float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	SpecialNotes string      `gorm:"type:text" json:"special_notes"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	PreparingAt *time.Time `json:"preparing_at,omitempty"`
	ReadyAt     *time.Time `json:"ready_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	// Whole-minute durations, filled in when the order reaches delivered.
	ConfirmationTime *int `json:"confirmation_time,omitempty"`
	PreparationTime  *int `json:"preparation_time,omitempty"`
	DeliveryTime     *int `json:"delivery_time,omitempty"`
	TotalTime        *int `json:"total_time,omitempty"`

	CreatedAt  time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"not null" json:"updated_at"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
}

// ClearProgress resets the order to the start of its timeline. Used when
// the guest replaces the item set and the kitchen flow starts over.
func (o *Order) ClearProgress() {
	o.Status = OrderStatusPending
	o.ConfirmedAt = nil
	o.PreparingAt = nil
	o.ReadyAt = nil
	o.DeliveredAt = nil
	o.CancelledAt = nil
	o.ConfirmationTime = nil
	o.PreparationTime = nil
	o.DeliveryTime = nil
	o.TotalTime = nil
}
