package user

import (
	"errors"
	"fmt"
	"testing"

	"rentvehicle/models"
	"rentvehicle/utils"
)

type fakeUserRepo struct {
	users         map[string]*models.User
	statusUpdates map[string]string
	searched      []string
	listedAll     bool
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*models.User{}, statusUpdates: map[string]string{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s not found", id)
	}
	return u, nil
}

func (r *fakeUserRepo) GetAll() ([]models.User, error) {
	r.listedAll = true
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Search(keyword string) ([]models.User, error) {
	r.searched = append(r.searched, keyword)
	return nil, nil
}

func (r *fakeUserRepo) UpdateStatus(userID, status string) error {
	r.statusUpdates[userID] = status
	return nil
}

func (r *fakeUserRepo) Create(u *models.User) error                   { return nil }
func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(u *models.User) error                   { return nil }
func (r *fakeUserRepo) UpdateFCMToken(userID, token string) error     { return nil }

func customer(id string) *models.User {
	return &models.User{ID: id, Role: models.RoleUser, Status: models.UserStatusActive}
}

func TestList_KeywordRouting(t *testing.T) {
	repo := newFakeUserRepo(customer("u-1"), customer("u-2"))
	svc := &DefaultUserService{Repo: repo}

	users, err := svc.List("  ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !repo.listedAll || len(users) != 2 {
		t.Fatalf("expected a full listing for a blank keyword, got %d users", len(users))
	}
	if len(repo.searched) != 0 {
		t.Fatalf("blank keyword should not hit search, got %v", repo.searched)
	}

	if _, err := svc.List(" linh "); err != nil {
		t.Fatalf("List with keyword: %v", err)
	}
	if len(repo.searched) != 1 || repo.searched[0] != "linh" {
		t.Fatalf("expected a trimmed keyword search, got %v", repo.searched)
	}
}

func TestBan(t *testing.T) {
	repo := newFakeUserRepo(customer("u-1"))
	var revoked []string
	svc := &DefaultUserService{
		Repo:      repo,
		RevokeAll: func(userID string) error { revoked = append(revoked, userID); return nil },
	}

	u, err := svc.Ban("u-1")
	if err != nil {
		t.Fatalf("Ban: %v", err)
	}
	if u.Status != models.UserStatusBanned {
		t.Fatalf("expected banned status, got %q", u.Status)
	}
	if repo.statusUpdates["u-1"] != models.UserStatusBanned {
		t.Fatalf("status not persisted: %v", repo.statusUpdates)
	}
	if len(revoked) != 1 || revoked[0] != "u-1" {
		t.Fatalf("expected sessions revoked for u-1, got %v", revoked)
	}
}

func TestBan_Rejections(t *testing.T) {
	admin := customer("a-1")
	admin.Role = models.RoleAdmin
	repo := newFakeUserRepo(admin)
	svc := &DefaultUserService{
		Repo:      repo,
		RevokeAll: func(userID string) error { return nil },
	}

	tests := []struct {
		name    string
		userID  string
		wantErr error
	}{
		{"unknown account", "ghost", utils.ErrUserNotFound},
		{"admin account", "a-1", utils.ErrAccessDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Ban(tt.userID); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Ban(%q) err = %v, want %v", tt.userID, err, tt.wantErr)
			}
			if len(repo.statusUpdates) != 0 {
				t.Fatalf("no status should be written, got %v", repo.statusUpdates)
			}
		})
	}
}

func TestUnban(t *testing.T) {
	banned := customer("u-1")
	banned.Status = models.UserStatusBanned
	repo := newFakeUserRepo(banned)
	svc := &DefaultUserService{
		Repo:      repo,
		RevokeAll: func(userID string) error { return nil },
	}

	u, err := svc.Unban("u-1")
	if err != nil {
		t.Fatalf("Unban: %v", err)
	}
	if u.Status != models.UserStatusActive {
		t.Fatalf("expected active status, got %q", u.Status)
	}
	if repo.statusUpdates["u-1"] != models.UserStatusActive {
		t.Fatalf("status not persisted: %v", repo.statusUpdates)
	}
}
