package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/aibudget/tracker-api/internal/core/domain"
	"github.com/aibudget/tracker-api/internal/core/ports"
)

// AuthService implements registration and login, including the ban and
// admin-approval gates applied at login time.
type AuthService struct {
	repo    ports.UserRepository
	tokens  ports.TokenService
	ownerID string
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, ownerID string) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, ownerID: ownerID}
}

// Register creates an account. Role defaults to USER; a requested ADMIN role
// is persisted immediately but unapproved, so the account cannot log in
// until the owner approves it.
func (s *AuthService) Register(ctx context.Context, username, email, password string, role domain.Role) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, domain.ErrInvalidCredentials
	}

	// Exact-match uniqueness, case-sensitive as stored.
	taken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:      username,
		Email:         email,
		PasswordHash:  string(hash),
		Role:          role,
		AdminApproved: role != domain.RoleAdmin,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return s.repo.Create(ctx, user)
}

// Login authenticates and returns a fresh bearer token. Checks run in a
// fixed order: existence, credential, ban, admin approval. The order is
// observable (a missing user fails before the password is checked) and is
// kept as-is rather than flattened into one opaque failure.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	if user.Banned {
		return "", domain.ErrUserBanned
	}

	// A pending admin cannot log in, unless the account is the configured
	// owner or carries the OWNER role outright.
	if user.PendingAdmin() && !domain.IsOwner(user.ID, user.Role, s.ownerID) {
		return "", domain.ErrAdminApprovalPending
	}

	return s.tokens.Issue(user.Username)
}
