package client

// Well-known navigation targets.
const (
	HomePath       = "/"
	LoginPath      = "/login"
	AdminLoginPath = "/admin/login"
	AdminHomePath  = "/admin"
)

// GuardDecision is what a route guard tells the router to do.
type GuardDecision int

const (
	// GuardWait renders a neutral loading state; no redirect decision is
	// made while the session is still loading.
	GuardWait GuardDecision = iota
	// GuardRender shows the requested content.
	GuardRender
	// GuardRedirect bounces to RedirectTo.
	GuardRedirect
)

// GuardResult is the outcome of evaluating a guard for a path.
type GuardResult struct {
	Decision   GuardDecision
	RedirectTo string
	// RememberPath, when set, is stored so a successful login can return
	// the user to the page they asked for.
	RememberPath string
}

// EvaluateAuthGuard decides whether an authenticated-only page renders.
func EvaluateAuthGuard(s Session, path string) GuardResult {
	if s.IsLoading {
		return GuardResult{Decision: GuardWait}
	}
	if !s.IsAuthenticated {
		return GuardResult{
			Decision:     GuardRedirect,
			RedirectTo:   LoginPath,
			RememberPath: path,
		}
	}
	return GuardResult{Decision: GuardRender}
}

// EvaluateAdminGuard decides whether an admin-only page renders. A signed-in
// non-admin bounces to home, not to an error page, so admin routes stay
// unadvertised.
func EvaluateAdminGuard(s Session, path string) GuardResult {
	if s.IsLoading {
		return GuardResult{Decision: GuardWait}
	}
	if !s.IsAuthenticated {
		return GuardResult{Decision: GuardRedirect, RedirectTo: AdminLoginPath}
	}
	if s.Role != RoleAdmin {
		return GuardResult{Decision: GuardRedirect, RedirectTo: HomePath}
	}
	return GuardResult{Decision: GuardRender}
}
