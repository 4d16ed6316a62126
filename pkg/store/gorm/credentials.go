package gorm

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/veridian-labs/warden/pkg/store"
)

// Ensure CredentialStore implements store.CredentialStore
var _ store.CredentialStore = (*CredentialStore)(nil)

// CredentialStore implements store.CredentialStore using GORM
type CredentialStore struct {
	db *gorm.DB
}

// NewCredentialStore creates a new CredentialStore
func NewCredentialStore(db *gorm.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// GetCredential retrieves the credential for a login.
func (s *CredentialStore) GetCredential(login string) (*store.Credential, error) {
	type credentialRow struct {
		UserId       int64
		Login        string
		DisplayName  string
		PasswordHash []byte
	}

	var row credentialRow
	tx := s.db.Raw(`
		SELECT u.id AS user_id, u.login, u.display_name, c.password_hash
		FROM users u
		JOIN credentials c ON c.user_id = u.id
		WHERE u.login = ?
	`, login).Scan(&row)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if row.UserId == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return &store.Credential{
		UserID:       row.UserId,
		Login:        row.Login,
		DisplayName:  row.DisplayName,
		PasswordHash: row.PasswordHash,
	}, nil
}

// VerifyPassword checks a cleartext password against the stored bcrypt hash.
func (s *CredentialStore) VerifyPassword(credential *store.Credential, password []byte) bool {
	if credential == nil || len(credential.PasswordHash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(credential.PasswordHash, password) == nil
}

// UpdatePassword replaces the stored password for a user.
func (s *CredentialStore) UpdatePassword(userID int64, newPassword []byte) error {
	hash, err := bcrypt.GenerateFromPassword(newPassword, bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	tx := s.db.Exec(`
		INSERT INTO credentials (user_id, password_hash) VALUES (?, ?)
		ON CONFLICT (user_id) DO UPDATE SET password_hash = EXCLUDED.password_hash
	`, userID, hash)
	return tx.Error
}
