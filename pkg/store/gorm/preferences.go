package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/veridian-labs/warden/pkg/store"
)

// Ensure PreferenceStore implements store.PreferenceStore
var _ store.PreferenceStore = (*PreferenceStore)(nil)

// PreferenceStore implements store.PreferenceStore using GORM
type PreferenceStore struct {
	db *gorm.DB
}

// NewPreferenceStore creates a new PreferenceStore
func NewPreferenceStore(db *gorm.DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

// ErrPreferenceNotFound indicates the user has no stored preference row.
var ErrPreferenceNotFound = errors.New("preference not found")

// SessionTimeoutMinutes returns the user's idle-timeout preference.
func (s *PreferenceStore) SessionTimeoutMinutes(userID int64) (int, error) {
	var minutes *int
	tx := s.db.Raw(
		`SELECT session_timeout_minutes FROM user_preferences WHERE user_id = ?`,
		userID,
	).Scan(&minutes)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if minutes == nil {
		return 0, ErrPreferenceNotFound
	}
	return *minutes, nil
}
