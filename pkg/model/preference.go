package model

// UserPreference holds per-user settings consulted at session issuance.
type UserPreference struct {
	UserID                int64 `gorm:"column:user_id;primaryKey"`
	SessionTimeoutMinutes int   `gorm:"column:session_timeout_minutes;not null;default:1440"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}
