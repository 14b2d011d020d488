package ports

// TokenService issues and verifies signed bearer tokens.
//
// Verify is strict fail-closed: any structural, signature or expiry problem
// yields one of the sentinel errors in internal/core/service
// (ErrTokenMalformed, ErrTokenSignatureInvalid, ErrTokenExpired); the
// subject is returned unchanged only on full success.
type TokenService interface {
	Issue(username string) (string, error)
	Verify(raw string) (string, error)
}
