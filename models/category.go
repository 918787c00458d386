package models

// Category is reference data; deleting a category cascades to its posts.
type Category struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Label string `gorm:"size:64;uniqueIndex;not null" json:"label"`
	Posts []Post `json:"-"`
}
