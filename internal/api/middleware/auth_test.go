package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/aibudget/tracker-api/internal/core/domain"
)

type stubTokens struct {
	subject string
	err     error
}

func (s *stubTokens) Issue(username string) (string, error) { return "token-" + username, nil }

func (s *stubTokens) Validate(string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.subject, nil
}

type stubUsers struct {
	users map[string]*domain.User
}

func (s *stubUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *stubUsers) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, domain.ErrUserExists
}
func (s *stubUsers) FindByID(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUsers) ExistsByUsername(context.Context, string) (bool, error) { return false, nil }
func (s *stubUsers) Update(context.Context, *domain.User) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUsers) List(context.Context) ([]*domain.User, error)              { return nil, nil }
func (s *stubUsers) ListPendingAdmins(context.Context) ([]*domain.User, error) { return nil, nil }

func runGate(t *testing.T, tokens *stubTokens, users *stubUsers, header string) (*httptest.ResponseRecorder, *domain.Identity, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var identity *domain.Identity
	nextCalled := false
	handler := Auth(tokens, users)(func(c echo.Context) error {
		nextCalled = true
		if id, ok := CurrentIdentity(c); ok {
			identity = &id
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, identity, nextCalled
}

func TestAuth_MissingHeaderIsAnonymous(t *testing.T) {
	rec, identity, nextCalled := runGate(t, &stubTokens{}, &stubUsers{}, "")

	if !nextCalled {
		t.Fatalf("anonymous request must reach the handler")
	}
	if identity != nil {
		t.Fatalf("expected no identity, got %+v", identity)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_InvalidTokenIsAnonymous(t *testing.T) {
	tokens := &stubTokens{err: domain.ErrInvalidToken}
	_, identity, nextCalled := runGate(t, tokens, &stubUsers{}, "Bearer broken")

	if !nextCalled {
		t.Fatalf("invalid token must degrade to anonymous, not reject")
	}
	if identity != nil {
		t.Fatalf("expected no identity, got %+v", identity)
	}
}

func TestAuth_MalformedHeaderIsAnonymous(t *testing.T) {
	_, identity, nextCalled := runGate(t, &stubTokens{subject: "alice"}, &stubUsers{}, "Token abc")

	if !nextCalled || identity != nil {
		t.Fatalf("non-bearer header must degrade to anonymous")
	}
}

func TestAuth_UnknownSubjectIsAnonymous(t *testing.T) {
	tokens := &stubTokens{subject: "ghost"}
	users := &stubUsers{users: map[string]*domain.User{}}
	_, identity, nextCalled := runGate(t, tokens, users, "Bearer ok")

	if !nextCalled || identity != nil {
		t.Fatalf("token for a vanished account must degrade to anonymous")
	}
}

func TestAuth_BannedUserIsRejected(t *testing.T) {
	tokens := &stubTokens{subject: "alice"}
	users := &stubUsers{users: map[string]*domain.User{
		"alice": {ID: "u1", Username: "alice", Role: domain.RoleUser, Banned: true},
	}}
	rec, _, nextCalled := runGate(t, tokens, users, "Bearer ok")

	if nextCalled {
		t.Fatalf("banned user must never reach the handler")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAuth_EstablishesIdentity(t *testing.T) {
	tokens := &stubTokens{subject: "alice"}
	users := &stubUsers{users: map[string]*domain.User{
		"alice": {ID: "u1", Username: "alice", Role: domain.RoleAdmin},
	}}
	rec, identity, nextCalled := runGate(t, tokens, users, "Bearer ok")

	if !nextCalled {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if identity == nil || identity.Username != "alice" || identity.Role != domain.RoleAdmin || identity.ID != "u1" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

// The gate reads live account state, so a ban flipped after token issuance
// takes effect on the very next request with the old token.
func TestAuth_BanAppliesToExistingToken(t *testing.T) {
	tokens := &stubTokens{subject: "alice"}
	users := &stubUsers{users: map[string]*domain.User{
		"alice": {ID: "u1", Username: "alice", Role: domain.RoleUser},
	}}

	rec, _, _ := runGate(t, tokens, users, "Bearer ok")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 before ban, got %d", rec.Code)
	}

	users.users["alice"].Banned = true
	rec, _, nextCalled := runGate(t, tokens, users, "Bearer ok")
	if nextCalled || rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 after ban, got %d (next called: %v)", rec.Code, nextCalled)
	}
}
