package client

import "sync"

// TransientStore is a short-lived per-browser-session key/value store. It
// carries exactly two things: the path to return to after login, and the
// pending admin-verification username across the two-factor hand-off.
// Neither entry is a security boundary; both are re-validated server-side.
type TransientStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// Store keys.
const (
	returnPathKey   = "postLoginRedirect"
	adminPendingKey = "adminLoginPending"
)

// MemoryTransientStore is the in-process TransientStore.
type MemoryTransientStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryTransientStore() *MemoryTransientStore {
	return &MemoryTransientStore{values: make(map[string]string)}
}

func (s *MemoryTransientStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryTransientStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *MemoryTransientStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// RememberReturnPath stores where to send the user after a login forced by
// a route guard.
func RememberReturnPath(store TransientStore, path string) {
	if path == "" {
		return
	}
	store.Set(returnPathKey, path)
}

// ConsumeReturnPath pops the stored return path, defaulting to home.
func ConsumeReturnPath(store TransientStore) string {
	path, ok := store.Get(returnPathKey)
	store.Delete(returnPathKey)
	if !ok || path == "" {
		return HomePath
	}
	return path
}
