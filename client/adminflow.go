package client

import (
	"encoding/json"
	"strings"
)

// AdminFlowState is the two-step admin login progression.
type AdminFlowState int

const (
	AwaitingCredentials AdminFlowState = iota
	AwaitingCode
	Completed
)

// PendingVerification correlates the password step with the code step. It
// lives both in navigation state and in the transient store so it survives
// a full page navigation between the two steps.
type PendingVerification struct {
	Username       string `json:"username"`
	ExpiresIn      int    `json:"expiresIn"`
	RedirectTarget string `json:"redirectTarget"`
}

// AdminLoginFlow orchestrates the password step and the one-time-code step.
// Every transition is driven by the server's response code; the flow's only
// state of its own is the pending username hand-off.
type AdminLoginFlow struct {
	api     *Client
	session *SessionStore
	store   TransientStore

	state    AdminFlowState
	pending  *PendingVerification // navigation-state primary
	redirect string
}

func NewAdminLoginFlow(api *Client, session *SessionStore, store TransientStore) *AdminLoginFlow {
	return &AdminLoginFlow{
		api:     api,
		session: session,
		store:   store,
		state:   AwaitingCredentials,
	}
}

// State returns the current step.
func (f *AdminLoginFlow) State() AdminFlowState { return f.state }

// RedirectTarget returns where to navigate after completion.
func (f *AdminLoginFlow) RedirectTarget() string { return f.redirect }

// NormalizeUsername is the client-side fallback when the server response
// omits the normalized username.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// alreadySignedIn short-circuits the flow when a stale tab is still
// authenticated as an admin.
func (f *AdminLoginFlow) alreadySignedIn() bool {
	s := f.session.Current()
	if s.IsAuthenticated && s.Role == RoleAdmin {
		f.state = Completed
		f.redirect = AdminHomePath
		return true
	}
	return false
}

// SubmitCredentials runs the password step. On success the flow holds the
// pending verification and moves to AwaitingCode. Business failures keep
// the flow in place with the server's message; transport failures keep it
// in place with a generic message and return the cause.
func (f *AdminLoginFlow) SubmitCredentials(username, password, redirectTarget string) (AuthOutcome, error) {
	if f.alreadySignedIn() {
		return AuthOutcome{Success: true}, nil
	}

	res := f.api.Post("/api/auth/admin/login", map[string]string{
		"username": username,
		"password": password,
	})
	switch res.Kind {
	case TransportFailure:
		return AuthOutcome{Success: false, Message: res.Message}, res.Err
	case BusinessFailure:
		return AuthOutcome{Success: false, Message: res.Message}, nil
	}

	var payload struct {
		Username  string `json:"username"`
		ExpiresIn int    `json:"expiresIn"`
	}
	if err := res.Decode(&payload); err != nil {
		return AuthOutcome{Success: false, Message: genericFailureMessage}, err
	}
	if payload.Username == "" {
		payload.Username = NormalizeUsername(username)
	}
	if redirectTarget == "" {
		redirectTarget = AdminHomePath
	}

	pending := PendingVerification{
		Username:       payload.Username,
		ExpiresIn:      payload.ExpiresIn,
		RedirectTarget: redirectTarget,
	}
	f.pending = &pending
	if data, err := json.Marshal(pending); err == nil {
		f.store.Set(adminPendingKey, string(data))
	}
	f.state = AwaitingCode

	return AuthOutcome{Success: true}, nil
}

// ResumePending rehydrates the hand-off after a full page navigation:
// navigation state first, transient store as fallback.
func (f *AdminLoginFlow) ResumePending() *PendingVerification {
	if f.pending != nil {
		return f.pending
	}
	data, ok := f.store.Get(adminPendingKey)
	if !ok {
		return nil
	}
	var pending PendingVerification
	if err := json.Unmarshal([]byte(data), &pending); err != nil || pending.Username == "" {
		return nil
	}
	f.pending = &pending
	f.state = AwaitingCode
	return f.pending
}

// restartMessage tells the operator to begin again from the password step.
const restartMessage = "Your login session expired. Please log in again."

// SanitizeCode keeps only digits, at most six.
func SanitizeCode(code string) string {
	var b strings.Builder
	for _, r := range code {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == 6 {
			break
		}
	}
	return b.String()
}

// SubmitCode runs the verification step. Without a resolvable pending
// username it fails locally and never issues a network call. On success it
// consumes the hand-off, refreshes the session and completes the flow.
func (f *AdminLoginFlow) SubmitCode(code string) (AuthOutcome, error) {
	if f.alreadySignedIn() {
		return AuthOutcome{Success: true}, nil
	}

	pending := f.ResumePending()
	if pending == nil {
		return AuthOutcome{Success: false, Message: restartMessage}, nil
	}

	code = SanitizeCode(code)
	if code == "" {
		return AuthOutcome{Success: false, Message: "Enter the verification code."}, nil
	}

	res := f.api.Post("/api/auth/admin/verify", map[string]string{
		"username": pending.Username,
		"code":     code,
	})
	switch res.Kind {
	case TransportFailure:
		return AuthOutcome{Success: false, Message: res.Message}, res.Err
	case BusinessFailure:
		return AuthOutcome{Success: false, Message: res.Message}, nil
	}

	f.store.Delete(adminPendingKey)
	f.session.Refresh()
	f.state = Completed
	f.redirect = pending.RedirectTarget
	if f.redirect == "" {
		f.redirect = AdminHomePath
	}
	f.pending = nil

	return AuthOutcome{Success: true}, nil
}
