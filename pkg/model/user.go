package model

import "time"

// User represents a console account.
type User struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Login       string    `gorm:"column:login;uniqueIndex;not null"`
	DisplayName string    `gorm:"column:display_name"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
