// Package authz answers authorization questions from a cached user record.
//
// All checks are total functions of a [Subject]: no network access, no side
// effects, nil-safe, and all-false when there is no signed-in user. The fixed
// catalog of higher-level checks mirrors the console's screens (dashboard,
// users, roles, logs, system, data import/export). These checks are a UX
// convenience only — the backend enforces authorization independently on
// every call.
package authz
