package ports

// TokenService issues and validates stateless signed bearer tokens. Both
// operations are pure given the signing key and clock; nothing is persisted,
// so a token cannot be revoked directly; revocation happens by flipping
// account state, which the auth middleware re-checks on every request.
type TokenService interface {
	Issue(username string) (string, error)
	// Validate returns the subject username. Every failure mode (bad
	// signature, expiry, malformed input) is reported as domain.ErrInvalidToken.
	Validate(token string) (string, error)
}
