package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/aibudget/tracker-api/internal/core/domain"
)

type stubAdminService struct {
	users     map[string]*domain.User
	lastActor domain.Identity
}

func newStubAdminService(users ...*domain.User) *stubAdminService {
	s := &stubAdminService{users: map[string]*domain.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *stubAdminService) ListUsers(context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *stubAdminService) find(actor domain.Identity, id string) (*domain.User, error) {
	s.lastActor = actor
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *stubAdminService) Ban(_ context.Context, actor domain.Identity, id string) (*domain.User, error) {
	u, err := s.find(actor, id)
	if err != nil {
		return nil, err
	}
	u.Banned = true
	return u, nil
}

func (s *stubAdminService) Unban(_ context.Context, actor domain.Identity, id string) (*domain.User, error) {
	u, err := s.find(actor, id)
	if err != nil {
		return nil, err
	}
	u.Banned = false
	return u, nil
}

func (s *stubAdminService) ListPendingAdminRequests(context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range s.users {
		if u.PendingAdmin() {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *stubAdminService) ApproveAdmin(_ context.Context, actor domain.Identity, id string) (*domain.User, error) {
	u, err := s.find(actor, id)
	if err != nil {
		return nil, err
	}
	u.Role = domain.RoleAdmin
	u.AdminApproved = true
	return u, nil
}

func (s *stubAdminService) RevokeAdmin(_ context.Context, actor domain.Identity, id string) (*domain.User, error) {
	u, err := s.find(actor, id)
	if err != nil {
		return nil, err
	}
	u.Role = domain.RoleUser
	u.AdminApproved = false
	return u, nil
}

func adminRequest(t *testing.T, h echo.HandlerFunc, id string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("identity", domain.Identity{ID: "a1", Username: "root", Role: domain.RoleAdmin})
	c.SetParamNames("id")
	c.SetParamValues(id)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAdminBan(t *testing.T) {
	svc := newStubAdminService(&domain.User{ID: "u1", Username: "alice", Role: domain.RoleUser})
	h := NewAdminHandler(svc)

	rec := adminRequest(t, h.Ban, "u1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !svc.users["u1"].Banned {
		t.Fatalf("user not banned")
	}
	if svc.lastActor.Username != "root" {
		t.Fatalf("actor identity not forwarded, got %+v", svc.lastActor)
	}

	var out domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.ID != "u1" || !out.Banned {
		t.Fatalf("response must carry the updated account: %+v", out)
	}
}

func TestAdminBan_UnknownUser(t *testing.T) {
	h := NewAdminHandler(newStubAdminService())

	rec := adminRequest(t, h.Ban, "ghost")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAdminApproveRevoke(t *testing.T) {
	svc := newStubAdminService(&domain.User{ID: "u1", Username: "alice", Role: domain.RoleAdmin})
	h := NewAdminHandler(svc)

	if rec := adminRequest(t, h.Approve, "u1"); rec.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d", rec.Code)
	}
	if !svc.users["u1"].AdminApproved {
		t.Fatalf("approve did not stick")
	}

	if rec := adminRequest(t, h.Revoke, "u1"); rec.Code != http.StatusOK {
		t.Fatalf("revoke: expected 200, got %d", rec.Code)
	}
	if svc.users["u1"].Role != domain.RoleUser {
		t.Fatalf("revoke must demote to USER, got %q", svc.users["u1"].Role)
	}
}

func TestAdminListPending(t *testing.T) {
	svc := newStubAdminService(
		&domain.User{ID: "u1", Username: "alice", Role: domain.RoleUser},
		&domain.User{ID: "u2", Username: "bob", Role: domain.RoleAdmin},
		&domain.User{ID: "u3", Username: "carol", Role: domain.RoleAdmin, AdminApproved: true},
	)
	h := NewAdminHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.ListPending(c); err != nil {
		t.Fatalf("ListPending: %v", err)
	}

	var out []domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 1 || out[0].Username != "bob" {
		t.Fatalf("expected only the unapproved admin, got %+v", out)
	}
}
