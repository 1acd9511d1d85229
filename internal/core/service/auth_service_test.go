package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/aibudget/tracker-api/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by username
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := r.users[username]
	return ok, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	for name, u := range r.users {
		if u.ID == user.ID {
			delete(r.users, name)
			r.users[user.Username] = cloneUser(user)
			return cloneUser(user), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) ListPendingAdmins(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.PendingAdmin() {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func newTestAuthService(repo *stubUserRepo, ownerID string) *AuthService {
	return NewAuthService(repo, NewTokenService("secret", time.Hour), ownerID)
}

func TestAuthService_Register_DefaultsToUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, domain.NoOwnerID)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "pw1", "")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role USER, got %s", user.Role)
	}
	if !user.AdminApproved {
		t.Fatalf("non-admin registration must be approved immediately")
	}
	if user.PasswordHash == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_AdminIsPending(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, domain.NoOwnerID)

	user, err := svc.Register(context.Background(), "bob", "bob@example.com", "pw2", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleAdmin || user.AdminApproved {
		t.Fatalf("expected pending admin, got role=%s approved=%v", user.Role, user.AdminApproved)
	}
	if !user.PendingAdmin() {
		t.Fatalf("PendingAdmin should report true")
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, domain.NoOwnerID)

	if _, err := svc.Register(context.Background(), "alice", "a@example.com", "pw", ""); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	// Role and other fields must not matter for the uniqueness check.
	if _, err := svc.Register(context.Background(), "alice", "other@example.com", "pw2", domain.RoleAdmin); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_RejectsOwnerRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, domain.NoOwnerID)

	if _, err := svc.Register(context.Background(), "eve", "eve@example.com", "pw", domain.RoleOwner); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for OWNER signup, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, domain.NoOwnerID)

	if _, err := svc.Register(context.Background(), "alice", "alice@example.com", "pw1", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, err := svc.Login(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, domain.NoOwnerID)

	if _, err := svc.Login(context.Background(), "ghost", "pw"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, domain.NoOwnerID)

	_, _ = svc.Register(context.Background(), "alice", "alice@example.com", "goodpass", "")
	if _, err := svc.Login(context.Background(), "alice", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Banned(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, domain.NoOwnerID)

	user, _ := svc.Register(context.Background(), "alice", "alice@example.com", "pw1", "")
	user.Banned = true
	if _, err := repo.Update(context.Background(), user); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), "alice", "pw1"); err != domain.ErrUserBanned {
		t.Fatalf("expected ErrUserBanned, got %v", err)
	}
}

func TestAuthService_Login_BanCheckedBeforeApproval(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, domain.NoOwnerID)

	user, _ := svc.Register(context.Background(), "bob", "bob@example.com", "pw2", domain.RoleAdmin)
	user.Banned = true
	_, _ = repo.Update(context.Background(), user)

	if _, err := svc.Login(context.Background(), "bob", "pw2"); err != domain.ErrUserBanned {
		t.Fatalf("expected ErrUserBanned for banned pending admin, got %v", err)
	}
}

func TestAuthService_Login_PendingAdminBlocked(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, domain.NoOwnerID)

	_, _ = svc.Register(context.Background(), "bob", "bob@example.com", "pw2", domain.RoleAdmin)
	if _, err := svc.Login(context.Background(), "bob", "pw2"); err != domain.ErrAdminApprovalPending {
		t.Fatalf("expected ErrAdminApprovalPending, got %v", err)
	}
}

func TestAuthService_Login_ConfiguredOwnerBypassesApproval(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, domain.NoOwnerID)

	user, _ := svc.Register(context.Background(), "root", "root@example.com", "pw", domain.RoleAdmin)

	// Same account, now configured as the process owner.
	owned := newTestAuthService(repo, user.ID)
	if _, err := owned.Login(context.Background(), "root", "pw"); err != nil {
		t.Fatalf("configured owner should bypass approval gate, got %v", err)
	}
}

func TestAuthService_Login_OwnerRoleBypassesApproval(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, domain.NoOwnerID)

	user, _ := svc.Register(context.Background(), "root", "root@example.com", "pw", domain.RoleAdmin)
	user.Role = domain.RoleOwner
	user.AdminApproved = false
	_, _ = repo.Update(context.Background(), user)

	if _, err := svc.Login(context.Background(), "root", "pw"); err != nil {
		t.Fatalf("OWNER role should bypass approval gate, got %v", err)
	}
}

func TestAuthService_ApprovalLifecycle(t *testing.T) {
	repo := newStubUserRepo()
	authSvc := newTestAuthService(repo, domain.NoOwnerID)
	adminSvc := NewAdminService(repo, nil)
	owner := domain.Identity{ID: "owner", Username: "root", Role: domain.RoleOwner}

	bob, _ := authSvc.Register(context.Background(), "bob", "bob@example.com", "pw2", domain.RoleAdmin)

	if _, err := authSvc.Login(context.Background(), "bob", "pw2"); err != domain.ErrAdminApprovalPending {
		t.Fatalf("expected ErrAdminApprovalPending before approval, got %v", err)
	}

	if _, err := adminSvc.ApproveAdmin(context.Background(), owner, bob.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := authSvc.Login(context.Background(), "bob", "pw2"); err != nil {
		t.Fatalf("login after approval failed: %v", err)
	}

	if _, err := adminSvc.RevokeAdmin(context.Background(), owner, bob.ID); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	demoted, _ := repo.FindByID(context.Background(), bob.ID)
	if demoted.Role != domain.RoleUser || demoted.AdminApproved {
		t.Fatalf("expected demoted USER, got role=%s approved=%v", demoted.Role, demoted.AdminApproved)
	}
	// As a plain USER the account logs in fine; it simply has no admin role.
	if _, err := authSvc.Login(context.Background(), "bob", "pw2"); err != nil {
		t.Fatalf("login after revoke failed: %v", err)
	}
}
