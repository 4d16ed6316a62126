package store

// Credential is a user's login credential as loaded for verification.
type Credential struct {
	UserID       int64
	Login        string
	DisplayName  string
	PasswordHash []byte
}

// CredentialStore abstracts credential storage and verification.
type CredentialStore interface {
	// GetCredential retrieves the credential for a login.
	GetCredential(login string) (*Credential, error)

	// VerifyPassword checks a cleartext password against a credential.
	VerifyPassword(credential *Credential, password []byte) bool

	// UpdatePassword replaces the stored password for a user.
	UpdatePassword(userID int64, newPassword []byte) error
}
