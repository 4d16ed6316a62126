package model

import "time"

// Credential stores the password hash for a user.
type Credential struct {
	UserID       int64     `gorm:"column:user_id;primaryKey"`
	PasswordHash []byte    `gorm:"column:password_hash;not null"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Credential) TableName() string {
	return "credentials"
}
