// Package session issues and refreshes signed session claims.
//
// A session is an HMAC-signed JWT carrying the user's aggregated roles,
// available organizations, and idle-timeout budget. The timeout is sliding:
// every successful refresh resets the idle clock, and once the elapsed time
// since the last activity exceeds the budget the session transitions to
// expired and the user must re-authenticate. There is no separate absolute
// lifetime cap.
package session
