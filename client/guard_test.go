package client

import "testing"

// Requirement: while the session is loading, no redirect decision is made,
// whatever the other fields say.
func TestGuards_NoDecisionWhileLoading(t *testing.T) {
	sessions := []Session{
		{IsLoading: true},
		{IsLoading: true, IsAuthenticated: true, Role: RoleAdmin},
		{IsLoading: true, IsAuthenticated: true, Role: "USER"},
		{IsLoading: true, IsAuthenticated: false, Role: RoleAdmin},
	}

	for _, s := range sessions {
		if got := EvaluateAuthGuard(s, "/profile"); got.Decision != GuardWait {
			t.Errorf("EvaluateAuthGuard(%+v) = %v, want GuardWait", s, got.Decision)
		}
		if got := EvaluateAdminGuard(s, "/admin/vehicles"); got.Decision != GuardWait {
			t.Errorf("EvaluateAdminGuard(%+v) = %v, want GuardWait", s, got.Decision)
		}
	}
}

func TestEvaluateAuthGuard(t *testing.T) {
	tests := []struct {
		name         string
		session      Session
		wantDecision GuardDecision
		wantRedirect string
		wantRemember string
	}{
		{
			name:         "anonymous redirects to login remembering path",
			session:      Session{},
			wantDecision: GuardRedirect,
			wantRedirect: LoginPath,
			wantRemember: "/bookings",
		},
		{
			name:         "authenticated user renders",
			session:      Session{IsAuthenticated: true, Role: "USER"},
			wantDecision: GuardRender,
		},
		{
			name:         "authenticated admin renders",
			session:      Session{IsAuthenticated: true, Role: RoleAdmin},
			wantDecision: GuardRender,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := EvaluateAuthGuard(test.session, "/bookings")
			if got.Decision != test.wantDecision {
				t.Fatalf("Decision = %v, want %v", got.Decision, test.wantDecision)
			}
			if got.RedirectTo != test.wantRedirect {
				t.Errorf("RedirectTo = %q, want %q", got.RedirectTo, test.wantRedirect)
			}
			if got.RememberPath != test.wantRemember {
				t.Errorf("RememberPath = %q, want %q", got.RememberPath, test.wantRemember)
			}
		})
	}
}

// Requirement: a signed-in non-admin always bounces to home, never to the
// admin login page, and never sees admin content.
func TestEvaluateAdminGuard(t *testing.T) {
	tests := []struct {
		name         string
		session      Session
		wantDecision GuardDecision
		wantRedirect string
	}{
		{
			name:         "anonymous redirects to admin login",
			session:      Session{},
			wantDecision: GuardRedirect,
			wantRedirect: AdminLoginPath,
		},
		{
			name:         "regular user bounces to home",
			session:      Session{IsAuthenticated: true, Role: "USER"},
			wantDecision: GuardRedirect,
			wantRedirect: HomePath,
		},
		{
			name:         "empty role bounces to home",
			session:      Session{IsAuthenticated: true},
			wantDecision: GuardRedirect,
			wantRedirect: HomePath,
		},
		{
			name:         "admin renders",
			session:      Session{IsAuthenticated: true, Role: RoleAdmin},
			wantDecision: GuardRender,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := EvaluateAdminGuard(test.session, "/admin/vehicles")
			if got.Decision != test.wantDecision {
				t.Fatalf("Decision = %v, want %v", got.Decision, test.wantDecision)
			}
			if got.RedirectTo != test.wantRedirect {
				t.Errorf("RedirectTo = %q, want %q", got.RedirectTo, test.wantRedirect)
			}
		})
	}
}
