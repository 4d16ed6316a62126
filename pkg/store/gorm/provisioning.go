package gorm

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/veridian-labs/warden/pkg/model"
	"github.com/veridian-labs/warden/pkg/store"
)

// Ensure ProvisioningStore implements store.ProvisioningStore
var _ store.ProvisioningStore = (*ProvisioningStore)(nil)

// ProvisioningStore implements store.ProvisioningStore using GORM
type ProvisioningStore struct {
	db *gorm.DB
}

// NewProvisioningStore creates a new ProvisioningStore
func NewProvisioningStore(db *gorm.DB) *ProvisioningStore {
	return &ProvisioningStore{db: db}
}

// SyncPolicies upserts catalog entries into the policies table.
func (s *ProvisioningStore) SyncPolicies(records []store.PolicyRecord) error {
	for _, record := range records {
		policy := model.Policy{
			Slug:        record.Slug,
			Name:        record.Name,
			Description: record.Description,
			Category:    record.Category,
		}
		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "category"}),
		}).Create(&policy).Error
		if err != nil {
			return fmt.Errorf("failed to sync policy %s: %w", record.Slug, err)
		}
	}
	return nil
}

// EnsureUser returns the user id for a login, creating the user if needed.
func (s *ProvisioningStore) EnsureUser(login, displayName string) (int64, error) {
	user := model.User{Login: login, DisplayName: displayName}
	err := s.db.Where(model.User{Login: login}).FirstOrCreate(&user).Error
	if err != nil {
		return 0, fmt.Errorf("failed to ensure user %s: %w", login, err)
	}
	return user.ID, nil
}

// EnsureOrganization returns the organization id for a name, creating the
// organization if needed.
func (s *ProvisioningStore) EnsureOrganization(name string) (int64, error) {
	org := model.Organization{Name: name}
	err := s.db.Where(model.Organization{Name: name}).FirstOrCreate(&org).Error
	if err != nil {
		return 0, fmt.Errorf("failed to ensure organization %s: %w", name, err)
	}
	return org.ID, nil
}

// CreateRole creates a role and attaches policy slugs to it.
func (s *ProvisioningStore) CreateRole(orgID int64, name string, slugs []string) (int64, error) {
	role := model.Role{Name: name, OrganizationID: orgID}
	if err := s.db.Create(&role).Error; err != nil {
		return 0, fmt.Errorf("failed to create role %s: %w", name, err)
	}

	for _, slug := range slugs {
		attachment := model.RolePolicy{RoleID: role.ID, PolicySlug: slug}
		err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&attachment).Error
		if err != nil {
			return 0, fmt.Errorf("failed to attach policy %s to role %s: %w", slug, name, err)
		}
	}
	return role.ID, nil
}

// GrantMembership grants a role to a user, reactivating a soft-revoked grant.
func (s *ProvisioningStore) GrantMembership(userID, orgID, roleID int64) error {
	membership := model.Membership{
		UserID:         userID,
		OrganizationID: orgID,
		RoleID:         roleID,
		Active:         true,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "organization_id"}, {Name: "role_id"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{"active": true}),
	}).Create(&membership).Error
	if err != nil {
		return fmt.Errorf("failed to grant membership: %w", err)
	}
	return nil
}

// SetSessionTimeout upserts the user's idle-timeout preference.
func (s *ProvisioningStore) SetSessionTimeout(userID int64, minutes int) error {
	preference := model.UserPreference{UserID: userID, SessionTimeoutMinutes: minutes}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"session_timeout_minutes"}),
	}).Create(&preference).Error
	if err != nil {
		return fmt.Errorf("failed to set session timeout: %w", err)
	}
	return nil
}
