package domain

import "time"

type User struct {
	ID        UserID    `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"type:citext;uniqueIndex:ux_users_email" json:"email"`
	Username  string    `gorm:"type:citext;uniqueIndex:ux_users_username" json:"username"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Password  string    `gorm:"type:text;not null" json:"-"` // bcrypt hash, never cleartext
	IsActive  bool      `gorm:"not null;default:false" json:"isActive"`
	IsStaff   bool      `gorm:"not null;default:false" json:"isStaff"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string { return "users" }
