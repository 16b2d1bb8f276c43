package interfaces

import "cookingapp/internal/models"

// StoreInterface is the single persisted schedule slot.
type StoreInterface interface {
	Save(dish *models.Dish) error
	// Load returns nil when the slot is empty or unreadable.
	Load() *models.Dish
	Clear() error
	Close()
}
