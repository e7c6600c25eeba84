// Package storage persists console session credentials across process restarts.
//
// # Components
//
//   - [Store] — interface over the session triple (access token, refresh token,
//     serialized user record).
//   - [RedisStore] — Redis-backed implementation; group writes use a transaction
//     pipeline so the three keys never go out of sync.
//   - [MemoryStore] — mutex-guarded in-process implementation for tests and
//     ephemeral sessions.
//
// # Architecture boundaries
//
// This package owns key layout and atomicity of group writes. It does NOT
// interpret the user record blob — that belongs to the root package.
//
// # What this package must NOT do
//
//   - Decode tokens or the user record.
//   - Decide when credentials are written or cleared.
package storage
