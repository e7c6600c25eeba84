// Package token reads expiry hints from access tokens without verifying signatures.
//
// The console backend independently validates every token it receives; the client
// only needs to know whether a persisted token is worth presenting or should be
// refreshed first. Nothing beyond the expiry claim is surfaced, so a forged
// payload can at worst mistime a refresh.
//
// # What this package must NOT do
//
//   - Verify signatures or establish authenticity.
//   - Expose any claim other than the expiry timestamp.
package token
