package service

import (
	"context"
	"time"

	"github.com/aibudget/tracker-api/internal/core/domain"
	"github.com/aibudget/tracker-api/internal/core/ports"
)

// AdminService implements the privileged account-management operations.
// Authorization (admin-or-owner, owner-only) is enforced by route
// middleware before these methods run; every mutation is recorded in the
// audit trail.
type AdminService struct {
	repo  ports.UserRepository
	audit ports.AuditRecorder
}

func NewAdminService(repo ports.UserRepository, audit ports.AuditRecorder) *AdminService {
	return &AdminService{repo: repo, audit: audit}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// Ban flags the account as banned. Banning an already-banned account is a
// state no-op but still succeeds. The flag takes effect on the next request
// carrying any of the account's tokens, since the gate re-reads it live.
func (s *AdminService) Ban(ctx context.Context, actor domain.Identity, id string) (*domain.User, error) {
	return s.setBanned(ctx, actor, id, true, domain.AuditBan)
}

func (s *AdminService) Unban(ctx context.Context, actor domain.Identity, id string) (*domain.User, error) {
	return s.setBanned(ctx, actor, id, false, domain.AuditUnban)
}

func (s *AdminService) setBanned(ctx context.Context, actor domain.Identity, id string, banned bool, action domain.AuditAction) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Banned = banned
	user.UpdatedAt = time.Now().UTC()
	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	s.record(actor, id, action)
	return updated, nil
}

func (s *AdminService) ListPendingAdminRequests(ctx context.Context) ([]*domain.User, error) {
	return s.repo.ListPendingAdmins(ctx)
}

// ApproveAdmin moves a pending account to ADMIN/approved, after which it can
// log in and use admin endpoints.
func (s *AdminService) ApproveAdmin(ctx context.Context, actor domain.Identity, id string) (*domain.User, error) {
	return s.setApproval(ctx, actor, id, true, domain.AuditApprove)
}

// RevokeAdmin demotes the account to USER and clears approval, returning it
// to the start of the approval state machine.
func (s *AdminService) RevokeAdmin(ctx context.Context, actor domain.Identity, id string) (*domain.User, error) {
	return s.setApproval(ctx, actor, id, false, domain.AuditRevoke)
}

func (s *AdminService) setApproval(ctx context.Context, actor domain.Identity, id string, approved bool, action domain.AuditAction) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if approved {
		user.Role = domain.RoleAdmin
		user.AdminApproved = true
	} else {
		user.Role = domain.RoleUser
		user.AdminApproved = false
	}
	user.UpdatedAt = time.Now().UTC()
	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	s.record(actor, id, action)
	return updated, nil
}

func (s *AdminService) record(actor domain.Identity, targetID string, action domain.AuditAction) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuditEntry{
		Action:     action,
		ActorID:    actor.ID,
		Actor:      actor.Username,
		TargetID:   targetID,
		OccurredAt: time.Now().UTC(),
	})
}
