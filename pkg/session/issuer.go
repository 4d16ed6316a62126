package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/veridian-labs/warden/pkg/authz"
	"github.com/veridian-labs/warden/pkg/store"
)

// DefaultTimeoutMinutes is the idle-timeout applied when no preference is
// stored or the preference lookup fails.
const DefaultTimeoutMinutes = 1440

// ErrSessionExpired indicates the idle window lapsed. Expiry is a normal
// state transition that forces re-authentication, not a fault.
var ErrSessionExpired = errors.New("session expired")

// ErrInvalidToken indicates the token failed parsing or signature
// verification.
var ErrInvalidToken = errors.New("invalid session token")

// Issuer produces and refreshes signed session claims.
type Issuer struct {
	key         []byte
	aggregator  *authz.Aggregator
	preferences store.PreferenceStore
	log         *logrus.Logger
	now         func() time.Time
}

// NewIssuer creates an Issuer signing with an HMAC-SHA256 key.
func NewIssuer(key []byte, aggregator *authz.Aggregator, preferences store.PreferenceStore, log *logrus.Logger) *Issuer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Issuer{
		key:         key,
		aggregator:  aggregator,
		preferences: preferences,
		log:         log,
		now:         time.Now,
	}
}

// WithClock overrides the issuer's time source. Used by tests to drive the
// idle-timeout state machine.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// Issue derives grants for a verified identity and returns the signed
// session token with its claims. Timestamps are set to issuance time.
func (i *Issuer) Issue(userID int64, login, displayName string) (string, *Claims, error) {
	grants := i.aggregator.Aggregate(userID)
	return i.issueFromGrants(userID, login, displayName, grants)
}

// Reissue re-derives the session from scratch, keeping the identity fields
// of the existing claims. Used when a role change makes the old claims too
// structurally stale to patch.
func (i *Issuer) Reissue(claims *Claims) (string, *Claims, error) {
	return i.Issue(claims.UserID, claims.Login, claims.DisplayName)
}

func (i *Issuer) issueFromGrants(userID int64, login, displayName string, grants *authz.Grants) (string, *Claims, error) {
	now := i.now()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Subject:  login,
			IssuedAt: jwt.NewNumericDate(now),
		},
		UserID:         userID,
		Login:          login,
		DisplayName:    displayName,
		ActiveOrgID:    grants.ActiveOrgID,
		LastActivity:   now.Unix(),
		TimeoutMinutes: i.timeoutMinutes(userID),
	}

	for _, org := range grants.Organizations {
		claims.Roles = append(claims.Roles, org.Roles...)

		summary := OrgSummary{
			ID:       org.ID,
			Name:     org.Name,
			IsActive: org.ID == grants.ActiveOrgID,
		}
		for _, role := range org.Roles {
			summary.Roles = append(summary.Roles, role.Name)
		}
		claims.AvailableOrgs = append(claims.AvailableOrgs, summary)
	}

	token, err := i.sign(claims)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// timeoutMinutes reads the user's idle-timeout preference. A lookup failure
// must not block sign-in: it falls back to the default and logs, mirroring
// the aggregator's availability-first policy.
func (i *Issuer) timeoutMinutes(userID int64) int {
	minutes, err := i.preferences.SessionTimeoutMinutes(userID)
	if err != nil {
		i.log.WithError(err).WithField("user_id", userID).
			Warn("session timeout preference unavailable, using default")
		return DefaultTimeoutMinutes
	}
	if minutes <= 0 {
		return DefaultTimeoutMinutes
	}
	return minutes
}

// Refresh extends a session's idle window. If the elapsed time since the
// last activity exceeds the timeout the session is reported expired rather
// than extended; otherwise a new token is signed with LastActivity reset to
// now. The original issuance time and session id are preserved.
func (i *Issuer) Refresh(token string) (string, *Claims, error) {
	claims, err := i.Verify(token)
	if err != nil {
		return "", nil, err
	}

	refreshed := *claims
	refreshed.LastActivity = i.now().Unix()

	signed, err := i.sign(&refreshed)
	if err != nil {
		return "", nil, err
	}
	return signed, &refreshed, nil
}

// Verify parses and validates a token: signature first, then the sliding
// idle window. Returns ErrSessionExpired once the window has lapsed.
func (i *Issuer) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return i.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if i.expired(claims) {
		return nil, ErrSessionExpired
	}
	return claims, nil
}

func (i *Issuer) expired(claims *Claims) bool {
	timeout := time.Duration(claims.TimeoutMinutes) * time.Minute
	if timeout <= 0 {
		timeout = DefaultTimeoutMinutes * time.Minute
	}
	elapsed := i.now().Sub(time.Unix(claims.LastActivity, 0))
	return elapsed > timeout
}

func (i *Issuer) sign(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}
