// Package guard decides whether a navigation into a protected route may
// proceed, and in what way it is denied. Decisions follow a fixed order:
// loading, unauthenticated redirect, specific permission, module access,
// allow. Denials are a UX affordance only; the backend re-checks every call.
package guard
