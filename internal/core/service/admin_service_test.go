package service

import (
	"context"
	"testing"

	"github.com/aibudget/tracker-api/internal/core/domain"
)

type stubAuditRecorder struct {
	entries []domain.AuditEntry
}

func (s *stubAuditRecorder) Enqueue(entry domain.AuditEntry) {
	s.entries = append(s.entries, entry)
}

func seedUser(t *testing.T, repo *stubUserRepo, username string, role domain.Role, approved bool) *domain.User {
	t.Helper()
	user, err := repo.Create(context.Background(), &domain.User{
		Username:      username,
		Email:         username + "@example.com",
		PasswordHash:  "hash",
		Role:          role,
		AdminApproved: approved,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

var adminActor = domain.Identity{ID: "a1", Username: "admin", Role: domain.RoleAdmin}

func TestAdminService_BanUnban(t *testing.T) {
	repo := newStubUserRepo()
	audit := &stubAuditRecorder{}
	svc := NewAdminService(repo, audit)
	alice := seedUser(t, repo, "alice", domain.RoleUser, true)

	banned, err := svc.Ban(context.Background(), adminActor, alice.ID)
	if err != nil {
		t.Fatalf("ban failed: %v", err)
	}
	if !banned.Banned {
		t.Fatalf("expected banned flag set")
	}

	// Banning again is a state no-op but still succeeds.
	if _, err := svc.Ban(context.Background(), adminActor, alice.ID); err != nil {
		t.Fatalf("double ban should succeed: %v", err)
	}

	unbanned, err := svc.Unban(context.Background(), adminActor, alice.ID)
	if err != nil {
		t.Fatalf("unban failed: %v", err)
	}
	if unbanned.Banned {
		t.Fatalf("expected banned flag cleared")
	}

	if len(audit.entries) != 3 {
		t.Fatalf("expected 3 audit entries, got %d", len(audit.entries))
	}
	want := []domain.AuditAction{domain.AuditBan, domain.AuditBan, domain.AuditUnban}
	for i, entry := range audit.entries {
		if entry.Action != want[i] {
			t.Fatalf("audit entry %d: expected %s, got %s", i, want[i], entry.Action)
		}
		if entry.TargetID != alice.ID || entry.Actor != "admin" {
			t.Fatalf("unexpected audit entry: %+v", entry)
		}
	}
}

func TestAdminService_Ban_NotFound(t *testing.T) {
	svc := NewAdminService(newStubUserRepo(), &stubAuditRecorder{})

	if _, err := svc.Ban(context.Background(), adminActor, "missing"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAdminService_ApproveRevoke(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAdminService(repo, &stubAuditRecorder{})
	bob := seedUser(t, repo, "bob", domain.RoleAdmin, false)

	approved, err := svc.ApproveAdmin(context.Background(), adminActor, bob.ID)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Role != domain.RoleAdmin || !approved.AdminApproved {
		t.Fatalf("expected approved admin, got role=%s approved=%v", approved.Role, approved.AdminApproved)
	}

	revoked, err := svc.RevokeAdmin(context.Background(), adminActor, bob.ID)
	if err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if revoked.Role != domain.RoleUser || revoked.AdminApproved {
		t.Fatalf("expected demoted user, got role=%s approved=%v", revoked.Role, revoked.AdminApproved)
	}
}

func TestAdminService_ListPendingAdminRequests(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAdminService(repo, &stubAuditRecorder{})

	seedUser(t, repo, "alice", domain.RoleUser, true)
	seedUser(t, repo, "bob", domain.RoleAdmin, false)
	seedUser(t, repo, "carol", domain.RoleAdmin, true)

	pending, err := svc.ListPendingAdminRequests(context.Background())
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 || pending[0].Username != "bob" {
		t.Fatalf("expected only bob pending, got %+v", pending)
	}
}

func TestAdminService_NilAuditRecorder(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAdminService(repo, nil)
	alice := seedUser(t, repo, "alice", domain.RoleUser, true)

	if _, err := svc.Ban(context.Background(), adminActor, alice.ID); err != nil {
		t.Fatalf("ban without audit recorder failed: %v", err)
	}
}
