package auth

import (
	"errors"
	"testing"
	"time"

	"rentvehicle/config"
	"rentvehicle/models"
	"rentvehicle/utils"

	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(u *models.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}
func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) Update(u *models.User) error                  { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) UpdateStatus(userID, status string) error     { return nil }
func (r *fakeUserRepo) UpdateFCMToken(userID, token string) error    { return nil }
func (r *fakeUserRepo) GetAll() ([]models.User, error)               { return nil, nil }
func (r *fakeUserRepo) Search(keyword string) ([]models.User, error) { return nil, nil }

type fakeOTPStore struct {
	codes map[string]string
}

func newFakeOTPStore() *fakeOTPStore { return &fakeOTPStore{codes: make(map[string]string)} }

func (s *fakeOTPStore) Save(key, code string, ttl time.Duration) error {
	s.codes[key] = code
	return nil
}
func (s *fakeOTPStore) Get(key string) (string, error) { return s.codes[key], nil }
func (s *fakeOTPStore) Delete(key string) error        { delete(s.codes, key); return nil }

type fakeMailSender struct {
	sent     []string // "kind to" entries in send order
	failWith error
}

func (m *fakeMailSender) record(kind, to string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.sent = append(m.sent, kind+" "+to)
	return nil
}

func (m *fakeMailSender) AdminLoginOTP(to, fullName, code string, expiresIn time.Duration) error {
	return m.record("adminLoginOTP", to)
}
func (m *fakeMailSender) PasswordResetOTP(to, fullName, code string, expiresIn time.Duration) error {
	return m.record("passwordResetOTP", to)
}
func (m *fakeMailSender) PasswordChangeOTP(to, fullName, code string, expiresIn time.Duration) error {
	return m.record("passwordChangeOTP", to)
}
func (m *fakeMailSender) PasswordChanged(to, fullName string) error {
	return m.record("passwordChanged", to)
}

func localUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return &models.User{
		ID:           "u-1",
		FullName:     "Linh Tran",
		Email:        "rider@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		AuthProvider: models.ProviderLocal,
		Status:       models.UserStatusActive,
	}
}

type passwordFixture struct {
	svc     *DefaultAuthService
	repo    *fakeUserRepo
	otps    *fakeOTPStore
	mail    *fakeMailSender
	revoked []string
}

func newPasswordFixture(t *testing.T, users ...*models.User) *passwordFixture {
	t.Helper()
	config.AppConfig.PasswordOTPDuration = 300
	config.AppConfig.AdminOTPDuration = 300

	f := &passwordFixture{
		repo: newFakeUserRepo(users...),
		otps: newFakeOTPStore(),
		mail: &fakeMailSender{},
	}
	f.svc = &DefaultAuthService{
		Repo: f.repo,
		OTPs: f.otps,
		Mail: f.mail,
		RevokeAll: func(userID string) error {
			f.revoked = append(f.revoked, userID)
			return nil
		},
	}
	return f
}

func TestRequestPasswordReset_SendsCode(t *testing.T) {
	f := newPasswordFixture(t, localUser(t, "oldpass1"))

	challenge, err := f.svc.RequestPasswordReset("Rider@Example.com ")
	if err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	if challenge.Email != "rider@example.com" {
		t.Errorf("challenge email = %q, want normalized address", challenge.Email)
	}
	if challenge.ExpiresIn != 300 {
		t.Errorf("expiresIn = %d, want 300", challenge.ExpiresIn)
	}
	if f.otps.codes["resetOtp:rider@example.com"] == "" {
		t.Error("no reset code stored")
	}
	if len(f.mail.sent) != 1 || f.mail.sent[0] != "passwordResetOTP rider@example.com" {
		t.Errorf("mail log = %v, want one reset code mail", f.mail.sent)
	}
}

func TestRequestPasswordReset_Rejections(t *testing.T) {
	social := localUser(t, "x")
	social.ID = "u-2"
	social.Email = "social@example.com"
	social.AuthProvider = models.ProviderGoogle

	f := newPasswordFixture(t, localUser(t, "oldpass1"), social)

	if _, err := f.svc.RequestPasswordReset("nobody@example.com"); !errors.Is(err, utils.ErrUserNotFound) {
		t.Errorf("unknown email: err = %v, want %v", err, utils.ErrUserNotFound)
	}
	if _, err := f.svc.RequestPasswordReset("social@example.com"); !errors.Is(err, utils.ErrPasswordNotAllowed) {
		t.Errorf("social account: err = %v, want %v", err, utils.ErrPasswordNotAllowed)
	}
	if len(f.otps.codes) != 0 {
		t.Errorf("codes stored for rejected requests: %v", f.otps.codes)
	}
}

func TestRequestPasswordReset_MailFailureRollsBackCode(t *testing.T) {
	f := newPasswordFixture(t, localUser(t, "oldpass1"))
	f.mail.failWith = errors.New("relay down")

	if _, err := f.svc.RequestPasswordReset("rider@example.com"); !errors.Is(err, utils.ErrUncategorized) {
		t.Fatalf("err = %v, want %v", err, utils.ErrUncategorized)
	}
	if _, ok := f.otps.codes["resetOtp:rider@example.com"]; ok {
		t.Error("undeliverable code left pending")
	}
}

func TestResetPassword(t *testing.T) {
	f := newPasswordFixture(t, localUser(t, "oldpass1"))
	f.otps.codes["resetOtp:rider@example.com"] = "123456"

	if err := f.svc.ResetPassword("rider@example.com", "123456", "newpass1", "newpass1"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	u := f.repo.users["u-1"]
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("newpass1")) != nil {
		t.Error("new password does not verify against the stored hash")
	}
	if _, ok := f.otps.codes["resetOtp:rider@example.com"]; ok {
		t.Error("reset code not consumed")
	}
	if len(f.revoked) != 1 || f.revoked[0] != "u-1" {
		t.Errorf("revoked sessions = %v, want all sessions of u-1", f.revoked)
	}
	if len(f.mail.sent) != 1 || f.mail.sent[0] != "passwordChanged rider@example.com" {
		t.Errorf("mail log = %v, want one confirmation mail", f.mail.sent)
	}
}

func TestResetPassword_Rejections(t *testing.T) {
	tests := []struct {
		name            string
		code            string
		stored          string
		newPassword     string
		confirmPassword string
		wantErr         error
	}{
		{"expired code", "123456", "", "newpass1", "newpass1", utils.ErrOTPExpired},
		{"wrong code", "999999", "123456", "newpass1", "newpass1", utils.ErrInvalidOTP},
		{"mismatched confirmation", "123456", "123456", "newpass1", "other", utils.ErrPasswordMismatch},
		{"too short", "123456", "123456", "abc", "abc", utils.ErrInvalidReq},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPasswordFixture(t, localUser(t, "oldpass1"))
			if tt.stored != "" {
				f.otps.codes["resetOtp:rider@example.com"] = tt.stored
			}

			err := f.svc.ResetPassword("rider@example.com", tt.code, tt.newPassword, tt.confirmPassword)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			u := f.repo.users["u-1"]
			if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("oldpass1")) != nil {
				t.Error("password changed despite the rejection")
			}
			if len(f.revoked) != 0 {
				t.Error("sessions revoked despite the rejection")
			}
		})
	}
}

func TestRequestPasswordChange_SendsCode(t *testing.T) {
	f := newPasswordFixture(t, localUser(t, "oldpass1"))

	challenge, err := f.svc.RequestPasswordChange("u-1")
	if err != nil {
		t.Fatalf("RequestPasswordChange: %v", err)
	}
	if challenge.Email != "rider@example.com" {
		t.Errorf("challenge email = %q", challenge.Email)
	}
	if f.otps.codes["pwChangeOtp:rider@example.com"] == "" {
		t.Error("no change code stored")
	}
}

func TestChangePassword(t *testing.T) {
	f := newPasswordFixture(t, localUser(t, "oldpass1"))
	f.otps.codes["pwChangeOtp:rider@example.com"] = "654321"

	if err := f.svc.ChangePassword("u-1", "654321", "oldpass1", "newpass1", "newpass1"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	u := f.repo.users["u-1"]
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("newpass1")) != nil {
		t.Error("new password does not verify against the stored hash")
	}
	if len(f.revoked) != 1 {
		t.Errorf("revoked = %v, want the account's sessions revoked", f.revoked)
	}
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	f := newPasswordFixture(t, localUser(t, "oldpass1"))
	f.otps.codes["pwChangeOtp:rider@example.com"] = "654321"

	err := f.svc.ChangePassword("u-1", "654321", "not-the-old-one", "newpass1", "newpass1")
	if !errors.Is(err, utils.ErrInvalidOldPassword) {
		t.Fatalf("err = %v, want %v", err, utils.ErrInvalidOldPassword)
	}
	u := f.repo.users["u-1"]
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("oldpass1")) != nil {
		t.Error("password changed despite the wrong old password")
	}
}

func TestVerifyAdminLogin_CodeChecks(t *testing.T) {
	admin := localUser(t, "adminpass")
	admin.ID = "a-1"
	admin.Email = "admin@example.com"
	admin.Role = models.RoleAdmin

	f := newPasswordFixture(t, admin)

	// Nothing pending yet.
	if _, err := f.svc.VerifyAdminLogin("admin@example.com", "123456"); !errors.Is(err, utils.ErrOTPExpired) {
		t.Errorf("no pending code: err = %v, want %v", err, utils.ErrOTPExpired)
	}

	f.otps.codes["adminOtp:admin@example.com"] = "123456"
	if _, err := f.svc.VerifyAdminLogin("admin@example.com", "654321"); !errors.Is(err, utils.ErrInvalidOTP) {
		t.Errorf("wrong code: err = %v, want %v", err, utils.ErrInvalidOTP)
	}
	if f.otps.codes["adminOtp:admin@example.com"] != "123456" {
		t.Error("pending code consumed by a failed attempt")
	}
}

func TestUpdateProfile(t *testing.T) {
	f := newPasswordFixture(t, localUser(t, "oldpass1"))

	identity, err := f.svc.UpdateProfile("u-1", "  Linh T. Tran ")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if identity.FullName != "Linh T. Tran" {
		t.Errorf("identity fullName = %q, want trimmed name", identity.FullName)
	}
	if f.repo.users["u-1"].FullName != "Linh T. Tran" {
		t.Errorf("stored fullName = %q", f.repo.users["u-1"].FullName)
	}

	if _, err := f.svc.UpdateProfile("u-1", "   "); !errors.Is(err, utils.ErrInvalidReq) {
		t.Errorf("blank name: err = %v, want %v", err, utils.ErrInvalidReq)
	}
}
