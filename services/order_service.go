package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/platefront/restaurant-platform/models"
)

// OrderService owns the order aggregate: creation with per-day numbering,
// status transitions, item replacement and deletion. Every accepted
// mutation is pushed to the Notifier after commit; the persisted row is
// the source of truth and a lost notification is never an error.
type OrderService struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewOrderService(db *gorm.DB, notifier Notifier) *OrderService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &OrderService{DB: db, Notifier: notifier}
}

// OrderItemInput is one requested order line. The unit price is always
// resolved server-side from the menu item and variety.
type OrderItemInput struct {
	MenuItemID uint   `json:"menu_item_id" binding:"required"`
	VarietyID  *uint  `json:"variety_id,omitempty"`
	Quantity   int    `json:"quantity" binding:"required"`
	Notes      string `json:"notes"`
}

type CreateOrderInput struct {
	TenantID     uint
	OrderType    models.OrderType
	TableID      *uint
	Items        []OrderItemInput
	TotalAmount  float64
	SpecialNotes string
}

// OrderPatch carries the optional fields a status update may change
// alongside the transition.
type OrderPatch struct {
	TableID      *uint
	SpecialNotes *string
}

// CreateOrder allocates the next order number for the tenant's current
// day, snapshots item prices and creates the order in pending state.
// The client-declared total must agree with the recomputed sum.
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if !input.OrderType.Valid() {
		return nil, validationErr("unknown order type %q", input.OrderType)
	}
	if len(input.Items) == 0 {
		return nil, validationErr("order must contain at least one item")
	}

	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		lines, total, err := s.buildLines(tx, input.TenantID, input.Items)
		if err != nil {
			return err
		}
		if !amountsEqual(total, input.TotalAmount) {
			return validationErr("total amount %.2f does not match computed sum %.2f", input.TotalAmount, total)
		}

		number, err := nextOrderNumber(tx, input.TenantID)
		if err != nil {
			return err
		}

		order = models.Order{
			TenantID:     input.TenantID,
			OrderNumber:  number,
			OrderType:    input.OrderType,
			TableID:      input.TableID,
			Status:       models.OrderStatusPending,
			TotalAmount:  total,
			SpecialNotes: input.SpecialNotes,
			OrderItems:   lines,
		}
		if err := tx.Create(&order).Error; err != nil {
			return persistenceErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	full, err := s.loadOrder(order.ID)
	if err != nil {
		return nil, err
	}
	s.Notifier.Publish(full.TenantID, EventNewOrder, full)
	return full, nil
}

// UpdateOrderStatus validates the requested transition against the current
// row under a row lock, stamps the state timestamp once and fills in the
// minute metrics when the order reaches delivered.
func (s *OrderService) UpdateOrderStatus(tenantID, orderID uint, newStatus models.OrderStatus, patch *OrderPatch) (*models.Order, error) {
	if !newStatus.Valid() {
		return nil, validationErr("unknown order status %q", newStatus)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := lockOrder(tx, tenantID, orderID)
		if err != nil {
			return err
		}

		if !order.Status.CanTransitionTo(newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, order.Status, newStatus)
		}

		stampStatus(order, newStatus, time.Now())
		if patch != nil {
			if patch.TableID != nil {
				order.TableID = patch.TableID
			}
			if patch.SpecialNotes != nil {
				order.SpecialNotes = *patch.SpecialNotes
			}
		}

		if err := tx.Save(order).Error; err != nil {
			return persistenceErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	full, err := s.loadOrder(orderID)
	if err != nil {
		return nil, err
	}
	s.Notifier.Publish(full.TenantID, EventOrderUpdate, full)
	return full, nil
}

// ModifyOrderItems replaces the whole item set while the order is still
// pending or confirmed. The order returns to pending and its timeline
// restarts, so all state timestamps and metrics are cleared.
func (s *OrderService) ModifyOrderItems(tenantID, orderID uint, items []OrderItemInput, totalAmount float64, specialNotes *string) (*models.Order, error) {
	if len(items) == 0 {
		return nil, validationErr("order must contain at least one item")
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := lockOrder(tx, tenantID, orderID)
		if err != nil {
			return err
		}

		if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusConfirmed {
			return fmt.Errorf("%w: items are immutable once the order is %s", ErrIllegalState, order.Status)
		}

		lines, total, err := s.buildLines(tx, tenantID, items)
		if err != nil {
			return err
		}
		if !amountsEqual(total, totalAmount) {
			return validationErr("total amount %.2f does not match computed sum %.2f", totalAmount, total)
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return persistenceErr(err)
		}

		order.ClearProgress()
		order.TotalAmount = total
		if specialNotes != nil {
			order.SpecialNotes = *specialNotes
		}
		order.OrderItems = nil
		if err := tx.Save(order).Error; err != nil {
			return persistenceErr(err)
		}

		for i := range lines {
			lines[i].OrderID = order.ID
		}
		if err := tx.Create(&lines).Error; err != nil {
			return persistenceErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Subscribers get the full reconstructed item list so they don't need
	// a follow-up fetch.
	full, err := s.loadOrder(orderID)
	if err != nil {
		return nil, err
	}
	s.Notifier.Publish(full.TenantID, EventOrderUpdate, full)
	return full, nil
}

// DeleteOrder removes the order and its items for good.
func (s *OrderService) DeleteOrder(tenantID, orderID uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := lockOrder(tx, tenantID, orderID)
		if err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return persistenceErr(err)
		}
		if err := tx.Delete(&models.Order{}, order.ID).Error; err != nil {
			return persistenceErr(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Notifier.Publish(tenantID, EventOrderDeleted, map[string]interface{}{"order_id": orderID})
	return nil
}

// GetOrder loads one order with its expanded items.
func (s *OrderService) GetOrder(tenantID, orderID uint) (*models.Order, error) {
	order, err := s.loadOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.TenantID != tenantID {
		return nil, notFoundErr("order", orderID)
	}
	return order, nil
}

// ListOrders returns the tenant's orders, newest first.
func (s *OrderService) ListOrders(tenantID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.
		Preload("OrderItems").
		Preload("OrderItems.MenuItem").
		Preload("OrderItems.Variety").
		Preload("Table").
		Where("tenant_id = ?", tenantID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, persistenceErr(err)
	}
	return orders, nil
}

// KitchenDisplay returns the orders the kitchen is working on, oldest first.
func (s *OrderService) KitchenDisplay(tenantID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.
		Preload("OrderItems").
		Preload("OrderItems.MenuItem").
		Preload("Table").
		Where("tenant_id = ? AND status IN ?", tenantID, []models.OrderStatus{
			models.OrderStatusConfirmed,
			models.OrderStatusPreparing,
			models.OrderStatusReady,
		}).
		Order("created_at asc").
		Find(&orders).Error
	if err != nil {
		return nil, persistenceErr(err)
	}
	return orders, nil
}

// buildLines resolves every requested item against the tenant's menu and
// snapshots unit prices (base price plus variety delta).
func (s *OrderService) buildLines(tx *gorm.DB, tenantID uint, items []OrderItemInput) ([]models.OrderItem, float64, error) {
	lines := make([]models.OrderItem, 0, len(items))
	var total float64

	for _, in := range items {
		if in.Quantity <= 0 {
			return nil, 0, validationErr("item quantity must be positive")
		}

		var menuItem models.MenuItem
		if err := tx.Preload("Category").First(&menuItem, in.MenuItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, notFoundErr("menu item", in.MenuItemID)
			}
			return nil, 0, persistenceErr(err)
		}
		if menuItem.Category.TenantID != tenantID {
			return nil, 0, notFoundErr("menu item", in.MenuItemID)
		}

		unit := menuItem.Price
		if in.VarietyID != nil {
			var variety models.MenuItemVariety
			if err := tx.First(&variety, *in.VarietyID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, 0, notFoundErr("variety", *in.VarietyID)
				}
				return nil, 0, persistenceErr(err)
			}
			if variety.MenuItemID != menuItem.ID {
				return nil, 0, validationErr("variety %d does not belong to menu item %d", variety.ID, menuItem.ID)
			}
			unit += variety.PriceDelta
		}

		total += unit * float64(in.Quantity)
		lines = append(lines, models.OrderItem{
			MenuItemID: menuItem.ID,
			VarietyID:  in.VarietyID,
			Quantity:   in.Quantity,
			Price:      unit,
			Notes:      in.Notes,
			Status:     "pending",
		})
	}
	return lines, total, nil
}

func (s *OrderService) loadOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.
		Preload("OrderItems").
		Preload("OrderItems.MenuItem").
		Preload("OrderItems.Variety").
		Preload("Table").
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("order", orderID)
		}
		return nil, persistenceErr(err)
	}
	return &order, nil
}

// lockOrder reads the order row FOR UPDATE so the transition is validated
// against current state rather than a stale read.
func lockOrder(tx *gorm.DB, tenantID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ?", tenantID).
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("order", orderID)
		}
		return nil, persistenceErr(err)
	}
	return &order, nil
}

// nextOrderNumber allocates the next human-facing number for the tenant's
// current calendar day, starting at 1.
func nextOrderNumber(tx *gorm.DB, tenantID uint) (int, error) {
	startOfDay := time.Now().Truncate(24 * time.Hour)
	var maxNumber int
	err := tx.Model(&models.Order{}).
		Where("tenant_id = ? AND created_at >= ?", tenantID, startOfDay).
		Select("COALESCE(MAX(order_number), 0)").
		Scan(&maxNumber).Error
	if err != nil {
		return 0, persistenceErr(err)
	}
	return maxNumber + 1, nil
}

// stampStatus records the transition time, never overwriting an already
// set timestamp (an idempotent same-status call must not re-stamp).
func stampStatus(order *models.Order, newStatus models.OrderStatus, now time.Time) {
	order.Status = newStatus

	switch newStatus {
	case models.OrderStatusConfirmed:
		if order.ConfirmedAt == nil {
			order.ConfirmedAt = &now
		}
	case models.OrderStatusPreparing:
		if order.PreparingAt == nil {
			order.PreparingAt = &now
		}
	case models.OrderStatusReady:
		if order.ReadyAt == nil {
			order.ReadyAt = &now
		}
	case models.OrderStatusDelivered:
		if order.DeliveredAt == nil {
			order.DeliveredAt = &now
		}
		created := order.CreatedAt
		order.ConfirmationTime = minutesBetween(&created, order.ConfirmedAt)
		order.PreparationTime = minutesBetween(order.ConfirmedAt, order.ReadyAt)
		order.DeliveryTime = minutesBetween(order.ReadyAt, order.DeliveredAt)
		order.TotalTime = minutesBetween(&created, order.DeliveredAt)
	case models.OrderStatusCancelled:
		if order.CancelledAt == nil {
			order.CancelledAt = &now
		}
	}
}

// minutesBetween returns the whole-minute difference, or nil when either
// endpoint is missing.
func minutesBetween(from, to *time.Time) *int {
	if from == nil || to == nil {
		return nil
	}
	m := int(to.Sub(*from).Minutes())
	return &m
}

func amountsEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}
