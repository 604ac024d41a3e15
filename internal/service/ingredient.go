package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantryplan/backend/internal/models"
)

// IngredientService owns ingredient stock: CRUD, the low-stock and expiry
// queries, and the quantity mutation primitive used by meal scheduling.
type IngredientService struct {
	db      *gorm.DB
	locks   *userLocks
	cascade *CascadeService
}

// AddIngredientInput carries the fields of a new ingredient. Quantity and
// MinQuantity are pointers so that absence is distinguishable from zero.
type AddIngredientInput struct {
	Name        string   `json:"name"`
	Unit        string   `json:"unit"`
	Category    string   `json:"category"`
	Quantity    *float64 `json:"quantity"`
	MinQuantity *float64 `json:"min_quantity"`
	ExpiryDate  string   `json:"expiry_date"`
}

// IngredientPatch is a partial update; nil fields are left unchanged. The
// record id and owner are not part of the patch and can never be reassigned.
type IngredientPatch struct {
	Name        *string  `json:"name"`
	Unit        *string  `json:"unit"`
	Category    *string  `json:"category"`
	Quantity    *float64 `json:"quantity"`
	MinQuantity *float64 `json:"min_quantity"`
	ExpiryDate  *string  `json:"expiry_date"`
}

// DeleteIngredientResult reports how far the cascade of an ingredient
// deletion reached.
type DeleteIngredientResult struct {
	RemovedRecipes int
	RemovedMeals   int
}

// Add creates an ingredient for the owner. All five core fields must be
// present; no numeric range validation is applied beyond that.
func (s *IngredientService) Add(ctx context.Context, owner uuid.UUID, input AddIngredientInput) (*models.Ingredient, error) {
	var missing []string
	if input.Name == "" {
		missing = append(missing, "name")
	}
	if input.Unit == "" {
		missing = append(missing, "unit")
	}
	if input.Category == "" {
		missing = append(missing, "category")
	}
	if input.Quantity == nil {
		missing = append(missing, "quantity")
	}
	if input.MinQuantity == nil {
		missing = append(missing, "min_quantity")
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	unlock := s.locks.Lock(owner)
	defer unlock()

	ingredient := models.Ingredient{
		ID:          uuid.New(),
		UserID:      owner,
		Name:        input.Name,
		Unit:        input.Unit,
		Category:    input.Category,
		Quantity:    *input.Quantity,
		MinQuantity: *input.MinQuantity,
		ExpiryDate:  input.ExpiryDate,
	}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, err
	}

	return &ingredient, nil
}

// List returns the owner's ingredients sorted by name, case-insensitively.
func (s *IngredientService) List(ctx context.Context, owner uuid.UUID) ([]models.Ingredient, error) {
	ingredients := make([]models.Ingredient, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", owner).
		Order("lower(name) asc").
		Find(&ingredients).Error
	if err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Get returns the owner's ingredient by id.
func (s *IngredientService) Get(ctx context.Context, owner, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", owner, id).
		First(&ingredient).Error
	if err != nil {
		return nil, ErrIngredientNotFound
	}
	return &ingredient, nil
}

// Update merges the patch into the owner's ingredient.
func (s *IngredientService) Update(ctx context.Context, owner, id uuid.UUID, patch IngredientPatch) (*models.Ingredient, error) {
	unlock := s.locks.Lock(owner)
	defer unlock()

	ingredient, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		ingredient.Name = *patch.Name
	}
	if patch.Unit != nil {
		ingredient.Unit = *patch.Unit
	}
	if patch.Category != nil {
		ingredient.Category = *patch.Category
	}
	if patch.Quantity != nil {
		ingredient.Quantity = *patch.Quantity
	}
	if patch.MinQuantity != nil {
		ingredient.MinQuantity = *patch.MinQuantity
	}
	if patch.ExpiryDate != nil {
		ingredient.ExpiryDate = *patch.ExpiryDate
	}

	if err := s.db.WithContext(ctx).Save(ingredient).Error; err != nil {
		return nil, err
	}
	return ingredient, nil
}

// Delete removes the owner's ingredient and cascades: recipes referencing it
// are removed, then meals referencing those recipes.
func (s *IngredientService) Delete(ctx context.Context, owner, id uuid.UUID) (*DeleteIngredientResult, error) {
	unlock := s.locks.Lock(owner)
	defer unlock()

	result := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", owner, id).
		Delete(&models.Ingredient{})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrIngredientNotFound
	}

	removedRecipes, removedMeals, err := s.cascade.OnIngredientDeleted(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	return &DeleteIngredientResult{
		RemovedRecipes: removedRecipes,
		RemovedMeals:   removedMeals,
	}, nil
}

// ListLowStock returns ingredients whose quantity has fallen below their
// configured minimum.
func (s *IngredientService) ListLowStock(ctx context.Context, owner uuid.UUID) ([]models.Ingredient, error) {
	ingredients := make([]models.Ingredient, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND quantity < min_quantity", owner).
		Find(&ingredients).Error
	if err != nil {
		return nil, err
	}
	return ingredients, nil
}

// ListExpired returns ingredients whose expiry date parses as a calendar
// date strictly before today, server-local. Absent or unparsable dates
// never count as expired.
func (s *IngredientService) ListExpired(ctx context.Context, owner uuid.UUID) ([]models.Ingredient, error) {
	var candidates []models.Ingredient
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND expiry_date <> ''", owner).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	expired := make([]models.Ingredient, 0)
	for _, ing := range candidates {
		expiry, err := time.ParseInLocation(models.ExpiryDateLayout, ing.ExpiryDate, now.Location())
		if err != nil {
			continue
		}
		if expiry.Before(today) {
			expired = append(expired, ing)
		}
	}
	return expired, nil
}

// OwnedIDs returns the set of ingredient ids the owner holds. Used by the
// recipe service for ownership validation.
func (s *IngredientService) OwnedIDs(ctx context.Context, owner uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).
		Model(&models.Ingredient{}).
		Where("user_id = ?", owner).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	owned := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		owned[id] = struct{}{}
	}
	return owned, nil
}

// ApplyQuantityDeltas mutates ingredient quantities in place, one delta per
// ingredient id, inside a single transaction. Ids the owner does not hold
// are skipped silently. Callers deducting stock must pre-validate
// sufficiency first; no non-negativity check happens here.
func (s *IngredientService) ApplyQuantityDeltas(ctx context.Context, owner uuid.UUID, deltas map[uuid.UUID]float64) error {
	if len(deltas) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, delta := range deltas {
			err := tx.Model(&models.Ingredient{}).
				Where("user_id = ? AND id = ?", owner, id).
				Update("quantity", gorm.Expr("quantity + ?", delta)).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
