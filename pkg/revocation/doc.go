// Package revocation implements the real-time authorization invalidation
// channel.
//
// The Hub is the server side: one WebSocket registry keyed by user id,
// publishing targeted events (session-revoked, permissions-updated,
// role-changed) plus liveness pings. The Monitor is the client side: it
// owns a single connection, identifies itself with an auth message, reacts
// to events through a Handler, and reconnects with exponential backoff
// after abnormal closes. A normal closure (code 1000) is deliberate and
// never triggers reconnection.
//
// Delivery is best-effort, at-most-once. The channel accelerates
// invalidation; the session idle timeout remains the backstop, so a lost
// event degrades freshness but never safety.
package revocation
