package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	ClaimUserID = "user_id"
	ClaimEmail  = "email"
	ClaimRole   = "role"
	ClaimType   = "type"
)

// ErrMalformedToken reports a verified token that lacks the expected claims.
var ErrMalformedToken = errors.New("token is missing required claims")

type Service interface {
	GenerateAccessToken(userID string, email string, role user.Role) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	// ParseRefreshToken verifies signature, expiry and token type and returns the owner.
	ParseRefreshToken(token string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration  time.Duration
	refreshTokenExpiration time.Duration
	tokenAuth              *jwtauth.JWTAuth
	now                    func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, refreshTokenExpirationTime string) (Service, error) {
	accessExp, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}
	refreshExp, err := time.ParseDuration(refreshTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token expiration: %w", err)
	}
	return &JWTService{
		accessTokenExpiration:  accessExp,
		refreshTokenExpiration: refreshExp,
		tokenAuth:              jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                    time.Now,
	}, nil
}

func (j *JWTService) GenerateAccessToken(userID string, email string, role user.Role) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		ClaimUserID: userID,
		ClaimEmail:  email,
		ClaimRole:   string(role),
		ClaimType:   TokenTypeAccess,
		"exp":       expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(userID string) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.refreshTokenExpiration).Unix()
	// jti keeps tokens issued within the same second distinct, since they are stored by hash.
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		ClaimUserID: userID,
		ClaimType:   TokenTypeRefresh,
		"jti":       uuid.NewString(),
		"exp":       expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) ParseRefreshToken(tokenString string) (userID string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get(ClaimType)
	if !ok || tokenType != TokenTypeRefresh {
		return "", ErrMalformedToken
	}

	userIDVal, ok := token.Get(ClaimUserID)
	if !ok {
		return "", ErrMalformedToken
	}
	userID, ok = userIDVal.(string)
	if !ok || userID == "" {
		return "", ErrMalformedToken
	}

	return userID, nil
}
