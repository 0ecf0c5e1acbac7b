package client

// Decision is the outcome of a route guard check.
type Decision int

const (
	// DecisionShowLoading means the session is still resolving; render
	// a loading affordance and make no navigation decision yet.
	DecisionShowLoading Decision = iota
	// DecisionAllow permits rendering the protected view.
	DecisionAllow
	// DecisionRedirectToLogin sends the caller to the login view,
	// preserving the origin they came from.
	DecisionRedirectToLogin
	// DecisionAccessDenied means authenticated but lacking the role.
	DecisionAccessDenied
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionRedirectToLogin:
		return "redirect_to_login"
	case DecisionAccessDenied:
		return "access_denied"
	default:
		return "show_loading"
	}
}

// RouteRequirements describes what a protected view needs.
type RouteRequirements struct {
	RequireAdmin bool
	// Origin is the path the caller attempted, preserved through a
	// login redirect.
	Origin string
}

// GuardResult carries the decision and redirect target.
type GuardResult struct {
	Decision   Decision
	RedirectTo string
	Origin     string
}

// LoginPath is where unauthenticated callers are redirected.
const LoginPath = "/login"

// Decide is a pure function of the session snapshot. While the session
// is unresolved it always yields a loading decision; once resolved,
// access is allowed only for authenticated sessions, and admin-only
// routes deny rather than redirect when the role is insufficient.
func Decide(snap Snapshot, req RouteRequirements) GuardResult {
	switch snap.State {
	case StateUnknown, StateChecking:
		return GuardResult{Decision: DecisionShowLoading}
	}

	if !snap.IsAuthenticated {
		return GuardResult{
			Decision:   DecisionRedirectToLogin,
			RedirectTo: LoginPath,
			Origin:     req.Origin,
		}
	}

	if req.RequireAdmin && (snap.Identity == nil || !snap.Identity.IsAdmin) {
		return GuardResult{Decision: DecisionAccessDenied}
	}
	return GuardResult{Decision: DecisionAllow}
}
