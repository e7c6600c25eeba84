package guard

import (
	"net/http"
	"net/url"

	goConsole "github.com/OpenAdminHQ/goConsole"
	"github.com/OpenAdminHQ/goConsole/authz"
)

type State int

const (
	StateLoading State = iota
	StateRedirectLogin
	StateDeniedPermission
	StateDeniedModule
	StateAllow
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateRedirectLogin:
		return "redirect_login"
	case StateDeniedPermission:
		return "denied_permission"
	case StateDeniedModule:
		return "denied_module"
	case StateAllow:
		return "allow"
	default:
		return "unknown"
	}
}

type Module string

const (
	ModuleUsers     Module = "users"
	ModuleRoles     Module = "roles"
	ModuleLogs      Module = "logs"
	ModuleDashboard Module = "dashboard"
)

// Requirement is what a route demands. Zero value demands authentication only.
type Requirement struct {
	Permission string
	Module     Module
}

// Decision is the outcome of evaluating a requirement against a session
// snapshot. RedirectTo is set only for StateRedirectLogin; Permission and
// Module echo the failed requirement for denial states.
type Decision struct {
	State      State
	RedirectTo string
	Permission string
	Module     Module
}

func (d Decision) Allowed() bool {
	return d.State == StateAllow
}

func Evaluate(snap goConsole.Snapshot, location string, req Requirement) Decision {
	if snap.Loading {
		return Decision{State: StateLoading}
	}

	if !snap.Authenticated {
		return Decision{
			State:      StateRedirectLogin,
			RedirectTo: "/login?from=" + url.QueryEscape(location),
		}
	}

	subject := snap.Subject()

	if req.Permission != "" && !subject.HasPermission(req.Permission) {
		return Decision{State: StateDeniedPermission, Permission: req.Permission}
	}

	if req.Module != "" && !moduleAllowed(subject, req.Module) {
		return Decision{State: StateDeniedModule, Module: req.Module}
	}

	return Decision{State: StateAllow}
}

func moduleAllowed(s *authz.Subject, m Module) bool {
	switch m {
	case ModuleUsers:
		return s.CanAccessUsersModule()
	case ModuleRoles:
		return s.CanAccessRolesModule()
	case ModuleLogs:
		return s.CanAccessLogsModule()
	case ModuleDashboard:
		return s.CanViewDashboard()
	default:
		return false
	}
}

// Protect wraps next with a guard evaluated against the client's live session.
func Protect(client *goConsole.Client, req Requirement, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := Evaluate(client.Snapshot(), r.URL.RequestURI(), req)

		switch decision.State {
		case StateLoading:
			w.Header().Set("Retry-After", "1")
			http.Error(w, "session restoring", http.StatusServiceUnavailable)
		case StateRedirectLogin:
			http.Redirect(w, r, decision.RedirectTo, http.StatusFound)
		case StateDeniedPermission:
			http.Error(w, "missing permission: "+decision.Permission, http.StatusForbidden)
		case StateDeniedModule:
			http.Error(w, "module access denied: "+string(decision.Module), http.StatusForbidden)
		default:
			next.ServeHTTP(w, r)
		}
	})
}
