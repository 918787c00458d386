package models

import "time"

// RoleUser is the single role every authenticated account carries.
const RoleUser = "USER"

// User represents a registered account. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Nickname     string    `gorm:"size:64;uniqueIndex;not null" json:"nickname"`
	Email        string    `gorm:"size:180;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:180" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Posts        []Post    `json:"-"`
}

// UserIdentifier returns the value the login layer matches credentials against.
// It is the nickname, not the email or the numeric id.
func (u *User) UserIdentifier() string {
	return u.Nickname
}

// Roles returns the fixed role set. There is no role hierarchy.
func (u *User) Roles() []string {
	return []string{RoleUser}
}
