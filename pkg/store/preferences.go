package store

// PreferenceStore abstracts per-user preference lookups.
type PreferenceStore interface {
	// SessionTimeoutMinutes returns the user's idle-timeout preference in
	// minutes. An error means the preference could not be loaded; callers
	// fall back to the default rather than failing sign-in.
	SessionTimeoutMinutes(userID int64) (int, error)
}
