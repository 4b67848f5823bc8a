package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/platefront/restaurant-platform/models"
)

type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

func (d MoveDirection) Valid() bool {
	return d == MoveUp || d == MoveDown
}

// EntityKind names the four sibling-ordered record types.
type EntityKind string

const (
	KindCategory      EntityKind = "category"
	KindMenuItem      EntityKind = "menu_item"
	KindCategoryGroup EntityKind = "category_group"
	KindVariety       EntityKind = "variety"
)

// MoveResult reports a move outcome. Moved=false with a reason is the
// normal "already at the edge" case, not an error.
type MoveResult struct {
	Moved  bool   `json:"moved"`
	Reason string `json:"reason,omitempty"`
}

// ReorderService maintains a per-scope ordering over sibling entities and
// swaps adjacent siblings one step at a time. Both position writes of a
// swap commit in one transaction; overlapping moves serialize on the row
// locks or fail as a ConcurrencyConflict the caller retries.
type ReorderService struct {
	DB *gorm.DB
}

func NewReorderService(db *gorm.DB) *ReorderService {
	return &ReorderService{DB: db}
}

type scopeFn func(*gorm.DB) *gorm.DB

// CategoryScope selects sibling categories: same tenant, same group
// (ungrouped categories form their own scope).
func CategoryScope(tenantID uint, groupID *uint) scopeFn {
	return func(q *gorm.DB) *gorm.DB {
		q = q.Where("tenant_id = ?", tenantID)
		if groupID == nil {
			return q.Where("group_id IS NULL")
		}
		return q.Where("group_id = ?", *groupID)
	}
}

func MenuItemScope(categoryID uint) scopeFn {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where("category_id = ?", categoryID)
	}
}

func CategoryGroupScope(tenantID uint) scopeFn {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where("tenant_id = ?", tenantID)
	}
}

func VarietyScope(menuItemID uint) scopeFn {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where("menu_item_id = ?", menuItemID)
	}
}

// NextPosition appends at the end of a scope: max(position)+1. Gaps left
// by soft-deleted siblings are never reclaimed.
func NextPosition(db *gorm.DB, model interface{}, scope scopeFn) (int, error) {
	var maxPos int
	err := scope(db.Model(model)).
		Select("COALESCE(MAX(position), 0)").
		Scan(&maxPos).Error
	if err != nil {
		return 0, persistenceErr(err)
	}
	return maxPos + 1, nil
}

// Move dispatches on entity kind. The ownership check always runs against
// the caller's tenant before anything is touched.
func (s *ReorderService) Move(tenantID uint, kind EntityKind, entityID uint, dir MoveDirection) (MoveResult, error) {
	if !dir.Valid() {
		return MoveResult{}, validationErr("unknown direction %q", dir)
	}

	switch kind {
	case KindCategory:
		return s.MoveCategory(tenantID, entityID, dir)
	case KindMenuItem:
		return s.MoveMenuItem(tenantID, entityID, dir)
	case KindCategoryGroup:
		return s.MoveCategoryGroup(tenantID, entityID, dir)
	case KindVariety:
		return s.MoveVariety(tenantID, entityID, dir)
	default:
		return MoveResult{}, validationErr("unknown entity kind %q", kind)
	}
}

func (s *ReorderService) MoveCategory(tenantID, categoryID uint, dir MoveDirection) (MoveResult, error) {
	var category models.Category
	if err := s.DB.First(&category, categoryID).Error; err != nil {
		return MoveResult{}, asLookupErr("category", categoryID, err)
	}
	if category.TenantID != tenantID {
		return MoveResult{}, notFoundErr("category", categoryID)
	}
	return s.swapAdjacent(&models.Category{}, CategoryScope(tenantID, category.GroupID), categoryID, dir)
}

func (s *ReorderService) MoveMenuItem(tenantID, itemID uint, dir MoveDirection) (MoveResult, error) {
	var item models.MenuItem
	if err := s.DB.Preload("Category").First(&item, itemID).Error; err != nil {
		return MoveResult{}, asLookupErr("menu item", itemID, err)
	}
	if item.Category.TenantID != tenantID {
		return MoveResult{}, notFoundErr("menu item", itemID)
	}
	return s.swapAdjacent(&models.MenuItem{}, MenuItemScope(item.CategoryID), itemID, dir)
}

func (s *ReorderService) MoveCategoryGroup(tenantID, groupID uint, dir MoveDirection) (MoveResult, error) {
	var group models.CategoryGroup
	if err := s.DB.First(&group, groupID).Error; err != nil {
		return MoveResult{}, asLookupErr("category group", groupID, err)
	}
	if group.TenantID != tenantID {
		return MoveResult{}, notFoundErr("category group", groupID)
	}
	return s.swapAdjacent(&models.CategoryGroup{}, CategoryGroupScope(tenantID), groupID, dir)
}

func (s *ReorderService) MoveVariety(tenantID, varietyID uint, dir MoveDirection) (MoveResult, error) {
	var variety models.MenuItemVariety
	if err := s.DB.First(&variety, varietyID).Error; err != nil {
		return MoveResult{}, asLookupErr("variety", varietyID, err)
	}
	if variety.TenantID != tenantID {
		return MoveResult{}, notFoundErr("variety", varietyID)
	}
	return s.swapAdjacent(&models.MenuItemVariety{}, VarietyScope(variety.MenuItemID), varietyID, dir)
}

type positionedRow struct {
	ID       uint
	Position int
}

// swapAdjacent re-reads the entity and its neighbor under row locks inside
// one transaction and swaps their position values. With no neighbor in the
// requested direction it commits nothing and reports "cannot move".
func (s *ReorderService) swapAdjacent(model interface{}, scope scopeFn, entityID uint, dir MoveDirection) (MoveResult, error) {
	var result MoveResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		lock := clause.Locking{Strength: "UPDATE"}

		var current positionedRow
		err := scope(tx.Model(model).Clauses(lock)).
			Select("id, position").
			Where("id = ?", entityID).
			Take(&current).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("entity", entityID)
			}
			return persistenceErr(err)
		}

		neighborQuery := scope(tx.Model(model).Clauses(lock)).
			Select("id, position").
			Where("id <> ?", entityID)
		if dir == MoveUp {
			neighborQuery = neighborQuery.Where("position < ?", current.Position).Order("position desc")
		} else {
			neighborQuery = neighborQuery.Where("position > ?", current.Position).Order("position asc")
		}

		var neighbor positionedRow
		if err := neighborQuery.Take(&neighbor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result = MoveResult{Moved: false, Reason: fmt.Sprintf("cannot move further %s", dir)}
				return nil
			}
			return persistenceErr(err)
		}

		if err := tx.Model(model).Where("id = ?", current.ID).Update("position", neighbor.Position).Error; err != nil {
			return persistenceErr(err)
		}
		if err := tx.Model(model).Where("id = ?", neighbor.ID).Update("position", current.Position).Error; err != nil {
			return persistenceErr(err)
		}

		result = MoveResult{Moved: true}
		return nil
	})
	if err != nil {
		if isDomainErr(err) {
			return MoveResult{}, err
		}
		// Lock contention or a failed commit on the swap pair; the caller
		// retries with fresh state.
		return MoveResult{}, fmt.Errorf("%w: %v", ErrConcurrencyConflict, err)
	}
	return result, nil
}

func asLookupErr(entity string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundErr(entity, id)
	}
	return persistenceErr(err)
}

func isDomainErr(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrIllegalState) ||
		errors.Is(err, ErrIllegalTransition) ||
		errors.Is(err, ErrPersistence)
}
