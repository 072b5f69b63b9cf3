package models

import (
	"time"
)

// FoodEntry is one logged food item. Ownership is fixed at creation; the
// foreign key cascades so deleting a user cannot orphan entries.
type FoodEntry struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	FoodName    string    `gorm:"size:100;not null" json:"food_name"`
	Ingredients string    `gorm:"type:text;not null" json:"ingredients"`
	Calories    float64   `gorm:"default:0" json:"calories"`
	Protein     float64   `gorm:"default:0" json:"protein"`
	Carbs       float64   `gorm:"default:0" json:"carbs"`
	Fats        float64   `gorm:"default:0" json:"fats"`
	UserID      uint      `gorm:"index;not null" json:"-"`
	User        User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `json:"-"`
}
