package domain

import (
	"errors"
	"time"
)

// Role is the partial hierarchy USER < ADMIN, with OWNER as a distinguished
// super-role that can also be resolved by configured account id.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
	RoleOwner Role = "OWNER"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("username is already taken")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserBanned = errors.New("user is banned")
var ErrAdminApprovalPending = errors.New("admin approval pending")
var ErrInvalidToken = errors.New("invalid token")
var ErrForbidden = errors.New("access forbidden")
var ErrUsernameTaken = errors.New("username already taken")

// User models an account. Role and AdminApproved are stored independently;
// decision logic derives the gating state through PendingAdmin so the
// approval state machine lives in one place.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Role           Role      `json:"role"`
	AdminApproved  bool      `json:"adminApproved"`
	Banned         bool      `json:"banned"`
	MonthlyIncome  float64   `json:"monthlyIncome"`
	Savings        float64   `json:"savings"`
	TargetExpenses float64   `json:"targetExpenses"`
	FirstName      string    `json:"firstName,omitempty"`
	LastName       string    `json:"lastName,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PendingAdmin reports whether the account is an admin awaiting owner
// approval. Pending is a valid persisted state: the row exists and is
// listable, but it blocks login and every admin-privileged operation.
func (u *User) PendingAdmin() bool {
	return u.Role == RoleAdmin && !u.AdminApproved
}

// Identity is the request-scoped authenticated principal established by the
// auth middleware. It is a fresh snapshot taken from the store at gate time,
// never cached across requests and never reconstructed from token claims.
type Identity struct {
	ID       string
	Username string
	Role     Role
}
