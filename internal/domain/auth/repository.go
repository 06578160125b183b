package auth

import "context"

// RefreshTokenRepository persists hashed refresh tokens so they can be rotated and revoked.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, session SessionTrackingRequest) error
	// IsRefreshTokenRevoked reports the owning user and whether the token is revoked or expired.
	// Unknown tokens yield ErrInvalidToken.
	IsRefreshTokenRevoked(ctx context.Context, token string) (userID string, revoked bool, err error)
	// RevokeRefreshToken reports whether an active token was revoked by this call.
	RevokeRefreshToken(ctx context.Context, token string) (bool, error)
}
