package gorm

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/veridian-labs/warden/pkg/store"
)

// Ensure MembershipStore implements store.MembershipStore
var _ store.MembershipStore = (*MembershipStore)(nil)

// MembershipStore implements store.MembershipStore using GORM
type MembershipStore struct {
	db *gorm.DB
}

// NewMembershipStore creates a new MembershipStore
func NewMembershipStore(db *gorm.DB) *MembershipStore {
	return &MembershipStore{db: db}
}

// FetchActiveMemberships returns all active membership rows for a user,
// joined to role, organization, and role policies. Roles without policies
// still produce a row so the organization and role remain visible.
func (s *MembershipStore) FetchActiveMemberships(userID int64) ([]store.MembershipRow, error) {
	type membershipRow struct {
		OrganizationId   int64
		OrganizationName string
		RoleId           int64
		RoleName         string
		PolicySlug       *string
		PolicyName       *string
		PolicyDesc       *string
	}

	var rows []membershipRow
	tx := s.db.Raw(`
		SELECT o.id   AS organization_id,
		       o.name AS organization_name,
		       r.id   AS role_id,
		       r.name AS role_name,
		       p.slug AS policy_slug,
		       p.name AS policy_name,
		       p.description AS policy_desc
		FROM memberships m
		JOIN organizations o ON o.id = m.organization_id
		JOIN roles r ON r.id = m.role_id
		LEFT JOIN role_policies rp ON rp.role_id = r.id
		LEFT JOIN policies p ON p.slug = rp.policy_slug
		WHERE m.user_id = ? AND m.active = true
		ORDER BY o.id, r.id, p.slug
	`, userID).Scan(&rows)
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to load memberships: %w", tx.Error)
	}

	memberships := make([]store.MembershipRow, 0, len(rows))
	for _, row := range rows {
		m := store.MembershipRow{
			OrganizationID:   row.OrganizationId,
			OrganizationName: row.OrganizationName,
			RoleID:           row.RoleId,
			RoleName:         row.RoleName,
		}
		if row.PolicySlug != nil {
			m.PolicySlug = *row.PolicySlug
		}
		if row.PolicyName != nil {
			m.PolicyName = *row.PolicyName
		}
		if row.PolicyDesc != nil {
			m.PolicyDescription = *row.PolicyDesc
		}
		memberships = append(memberships, m)
	}
	return memberships, nil
}
