// Package goConsole implements the client-side session core of a REST-backed
// administrative console: a durable session store with transparent access-token
// renewal, a pure permission evaluator, and a route guard.
//
// The package is the public surface. It exposes [Client], [Builder], [Config],
// and value types (Snapshot, UserRecord, MetricsSnapshot). Domain subpackages
// hold the rest: token decoding in token/, authorization checks in authz/,
// navigation gating in guard/, credential persistence in storage/, and the
// typed REST client in api/. Async audit dispatch lives under internal/ and is
// re-exported here as type aliases.
//
// # Architecture boundaries
//
// The Client is the single owner of the session triple (access token, refresh
// token, user record). Every other component reads it through the query
// surface (CurrentUser, AccessToken, IsAuthenticated, IsLoading, Snapshot) and
// never writes. Durable storage is written only by Login, Refresh, and Logout,
// always together with the in-memory mirror.
//
// # What this package must NOT do
//
//   - Verify token signatures or trust token claims beyond the expiry hint;
//     authenticity is enforced by the backend on every call.
//   - Treat a client-side authorization denial as a security boundary.
//   - Expose storage backends or wire encodings in its public API.
package goConsole
