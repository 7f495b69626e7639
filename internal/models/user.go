package models

import "time"

// User represents an account on the platform.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(60);not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"` // always stored lowercase
	Address   string    `json:"address" gorm:"type:varchar(400)"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never plaintext
	Role      Role      `json:"role" gorm:"type:varchar(10);not null;default:user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CurrentUser is the identity attached to an authenticated request.
type CurrentUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Summary returns the public identity fields of u.
func (u *User) Summary() CurrentUser {
	return CurrentUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
