package auth

import (
	"context"
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/kobo/backend/internal/domain/shared"
	"github.com/kobo/backend/internal/infrastructure/config"
)

// Authenticator handles the admin login session. Credential failures all
// collapse into the same unauthorized error so the response does not reveal
// whether the username or the password was wrong.
type Authenticator struct {
	cfg     config.AuthConfig
	jwt     *JWTService
	revoker SessionRevoker
}

// NewAuthenticator creates a new Authenticator
func NewAuthenticator(cfg config.AuthConfig, jwtService *JWTService, revoker SessionRevoker) *Authenticator {
	return &Authenticator{
		cfg:     cfg,
		jwt:     jwtService,
		revoker: revoker,
	}
}

// Login verifies the admin credentials and issues a session token
func (a *Authenticator) Login(_ context.Context, username, password string) (*Session, error) {
	if a.cfg.AdminPasswordHash == "" {
		return nil, shared.ErrUnauthorized
	}
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(a.cfg.AdminUsername)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(a.cfg.AdminPasswordHash), []byte(password))
	if !usernameMatch || passwordErr != nil {
		return nil, shared.ErrUnauthorized
	}
	return a.jwt.GenerateSession(a.cfg.AdminUsername)
}

// Logout revokes the session token for its remaining lifetime
func (a *Authenticator) Logout(ctx context.Context, token string) error {
	claims, err := a.jwt.ValidateToken(token)
	if err != nil {
		// Expired or malformed tokens need no revocation entry
		return nil
	}
	return a.revoker.Revoke(ctx, claims.ID, claims.RemainingTTL())
}

// Authenticate validates a session token, rejecting revoked sessions
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := a.jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	revoked, err := a.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrRevokedToken
	}
	return claims, nil
}
