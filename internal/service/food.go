package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/models"
)

var (
	// ErrFoodNotFound is returned when an entry ID does not exist.
	ErrFoodNotFound = errors.New("food entry not found")
	// ErrNotOwner is returned when an entry belongs to another user.
	ErrNotOwner = errors.New("food entry not owned by user")
)

// Totals aggregates the four macro fields over a set of entries.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// FoodService handles food-entry operations.
type FoodService struct {
	db *gorm.DB
}

// NewFoodService creates a new FoodService instance.
func NewFoodService(db *gorm.DB) *FoodService {
	return &FoodService{db: db}
}

// ListByUser returns the user's entries with their totals. Totals are
// computed fresh on every call; an empty list yields all-zero sums.
func (s *FoodService) ListByUser(ctx context.Context, userID uint) ([]models.FoodEntry, Totals, error) {
	var entries []models.FoodEntry
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return nil, Totals{}, err
	}

	var totals Totals
	for _, e := range entries {
		totals.Calories += e.Calories
		totals.Protein += e.Protein
		totals.Carbs += e.Carbs
		totals.Fats += e.Fats
	}
	return entries, totals, nil
}

// Create stores a new entry owned by userID. The owner always comes from
// the authenticated identity, never from client input.
func (s *FoodService) Create(ctx context.Context, userID uint, entry *models.FoodEntry) (*models.FoodEntry, error) {
	entry.ID = 0
	entry.UserID = userID
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes an entry after checking it exists and belongs to userID.
// The not-found check runs first so callers can map the two failures to
// distinct statuses.
func (s *FoodService) Delete(ctx context.Context, userID, entryID uint) error {
	var entry models.FoodEntry
	if err := s.db.WithContext(ctx).First(&entry, entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFoodNotFound
		}
		return err
	}

	if entry.UserID != userID {
		return ErrNotOwner
	}

	return s.db.WithContext(ctx).Delete(&entry).Error
}
