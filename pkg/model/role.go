package model

import "time"

// Role is a named bundle of policies scoped to one organization.
type Role struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	Name           string    `gorm:"column:name;not null"`
	OrganizationID int64     `gorm:"column:organization_id;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Role) TableName() string {
	return "roles"
}

// RolePolicy joins a role to a catalog policy slug.
type RolePolicy struct {
	RoleID     int64  `gorm:"column:role_id;primaryKey"`
	PolicySlug string `gorm:"column:policy_slug;primaryKey"`
}

func (RolePolicy) TableName() string {
	return "role_policies"
}
