package client

import (
	"errors"
	"testing"
)

func TestSessionStore_Initialize(t *testing.T) {
	tests := []struct {
		name     string
		script   func(*fakeDoer)
		wantAuth bool
		wantRole string
	}{
		{
			name: "probe success populates session",
			script: func(d *fakeDoer) {
				d.script("GET", "/api/auth/me", 200, successEnvelope(testIdentity("USER")))
			},
			wantAuth: true,
			wantRole: "USER",
		},
		{
			name: "probe business failure clears session",
			script: func(d *fakeDoer) {
				d.script("GET", "/api/auth/me", 401, failureEnvelope(2005, "User not authenticated"))
			},
			wantAuth: false,
		},
		{
			name: "probe transport failure clears session",
			script: func(d *fakeDoer) {
				d.scriptError("GET", "/api/auth/me", errors.New("connection refused"))
			},
			wantAuth: false,
		},
		{
			name: "probe malformed payload clears session",
			script: func(d *fakeDoer) {
				d.script("GET", "/api/auth/me", 200, successEnvelope(map[string]string{"unexpected": "shape"}))
			},
			wantAuth: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doer := newFakeDoer()
			test.script(doer)
			store := NewSessionStore(newTestClient(doer))

			if !store.Current().IsLoading {
				t.Fatal("session should be loading before Initialize")
			}

			store.Initialize()

			s := store.Current()
			if s.IsLoading {
				t.Error("session still loading after Initialize")
			}
			if s.IsAuthenticated != test.wantAuth {
				t.Errorf("IsAuthenticated = %v, want %v", s.IsAuthenticated, test.wantAuth)
			}
			if s.Role != test.wantRole {
				t.Errorf("Role = %q, want %q", s.Role, test.wantRole)
			}
		})
	}
}

// Requirement: a valid login yields a USER session that passes the auth
// guard and bounces off the admin guard to home.
func TestSessionStore_LoginScenario(t *testing.T) {
	doer := newFakeDoer()
	doer.script("POST", "/api/auth/login", 200, successEnvelope(testIdentity("USER")))
	store := NewSessionStore(newTestClient(doer))

	outcome, err := store.Login("rider@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !outcome.Success {
		t.Fatalf("Login() outcome = %+v, want success", outcome)
	}

	s := store.Current()
	if !s.IsAuthenticated || s.Role != "USER" {
		t.Fatalf("session = %+v, want authenticated USER", s)
	}
	if got := EvaluateAuthGuard(s, "/bookings"); got.Decision != GuardRender {
		t.Errorf("auth guard = %v, want GuardRender", got.Decision)
	}
	if got := EvaluateAdminGuard(s, "/admin"); got.Decision != GuardRedirect || got.RedirectTo != HomePath {
		t.Errorf("admin guard = %+v, want redirect to home", got)
	}
}

func TestSessionStore_LoginFailures(t *testing.T) {
	t.Run("business failure is a value", func(t *testing.T) {
		doer := newFakeDoer()
		doer.script("POST", "/api/auth/login", 401, failureEnvelope(2004, "Invalid email or password"))
		store := NewSessionStore(newTestClient(doer))

		outcome, err := store.Login("rider@example.com", "wrong")
		if err != nil {
			t.Fatalf("Login() error = %v, want nil for business failure", err)
		}
		if outcome.Success {
			t.Fatal("Login() succeeded with wrong password")
		}
		if outcome.Message != "Invalid email or password" {
			t.Errorf("Message = %q, want server message", outcome.Message)
		}
		if store.Current().IsAuthenticated {
			t.Error("session authenticated after failed login")
		}
	})

	t.Run("transport failure propagates", func(t *testing.T) {
		doer := newFakeDoer()
		doer.scriptError("POST", "/api/auth/login", errors.New("connection refused"))
		store := NewSessionStore(newTestClient(doer))

		_, err := store.Login("rider@example.com", "secret123")
		if err == nil {
			t.Fatal("Login() error = nil, want transport error")
		}
	})
}

func TestSessionStore_Logout(t *testing.T) {
	doer := newFakeDoer()
	doer.script("GET", "/api/auth/me", 200, successEnvelope(testIdentity("USER")))
	// Logout clears locally even when the server call fails.
	doer.scriptError("POST", "/api/auth/logout", errors.New("connection refused"))

	store := NewSessionStore(newTestClient(doer))
	store.Initialize()
	if !store.Current().IsAuthenticated {
		t.Fatal("precondition: session should be authenticated")
	}

	store.Logout()

	if store.Current().IsAuthenticated {
		t.Error("session still authenticated after Logout")
	}
}

func TestSessionStore_SubscribeNotified(t *testing.T) {
	doer := newFakeDoer()
	doer.script("GET", "/api/auth/me", 200, successEnvelope(testIdentity("USER")))
	store := NewSessionStore(newTestClient(doer))

	var seen []Session
	store.Subscribe(func(s Session) { seen = append(seen, s) })

	store.Initialize()

	if len(seen) != 1 {
		t.Fatalf("listener called %d times, want 1", len(seen))
	}
	if !seen[0].IsAuthenticated {
		t.Error("listener saw unauthenticated session after successful probe")
	}
}
