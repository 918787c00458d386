package models

import "time"

// Post represents a published blog entry created by a user.
// The image column holds the stored filename only; bytes live in the file store.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Image       string    `gorm:"size:255;not null" json:"image"`
	PublishedAt time.Time `gorm:"type:date;not null" json:"published_at"`
	CategoryID  uint      `gorm:"index;not null" json:"category_id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Category    Category  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"category"`
	User        User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Tags        []Tag     `gorm:"many2many:post_tags;" json:"tags"`
}
