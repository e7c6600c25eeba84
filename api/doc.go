// Package api is the typed REST client for the console backend.
//
// # Components
//
//   - [Client] — one method per backend endpoint across auth, users, roles,
//     permissions, logs, and the dashboard summary.
//   - [TokenSource] — supplies the current bearer token; the session client
//     implements it so every request carries fresh credentials.
//   - [Error] — a non-2xx response decoded from the backend's {"detail": ...}
//     body, carrying the HTTP status and the server-provided message.
//
// Every request gets a generated X-Request-ID header for correlation with
// backend logs.
//
// # Architecture boundaries
//
// This package owns wire encoding and HTTP mechanics. It does NOT hold session
// state, persist anything, or interpret authorization — callers own all of that.
package api
