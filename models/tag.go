package models

// Tag is reference data attached to posts through the post_tags join table.
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Label string `gorm:"size:64;uniqueIndex;not null" json:"label"`
}
