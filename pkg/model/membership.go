package model

// Membership grants a role to a user within an organization. Rows with
// active=false are soft-revoked grants and never contribute permissions.
type Membership struct {
	UserID         int64 `gorm:"column:user_id;primaryKey"`
	OrganizationID int64 `gorm:"column:organization_id;primaryKey"`
	RoleID         int64 `gorm:"column:role_id;primaryKey"`
	Active         bool  `gorm:"column:active;not null;default:true"`
}

func (Membership) TableName() string {
	return "memberships"
}
