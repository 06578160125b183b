package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	database.Transactor
	user.UserRepository
	auth.RefreshTokenRepository
	jwt.Service
}

func NewAuthService(transactor database.Transactor, userRepository user.UserRepository, refreshTokenRepository auth.RefreshTokenRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		Transactor:             transactor,
		UserRepository:         userRepository,
		RefreshTokenRepository: refreshTokenRepository,
		Service:                jwtService,
	}
}

// HashPassword bcrypt-hashes a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	role := user.RoleEmployee
	if req.Role != "" {
		role = user.Role(req.Role)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var created user.User
	err = a.WithinTransaction(ctx, func(txCtx context.Context) error {
		// Self-registration as Admin is only possible while no administrator exists.
		if role == user.RoleAdmin {
			admins, err := a.CountByRole(txCtx, user.RoleAdmin)
			if err != nil {
				return fmt.Errorf("failed to count administrators: %w", err)
			}
			if admins > 0 {
				return auth.ErrAdminRegistrationClosed
			}
		}

		created, err = a.UserRepository.Create(txCtx, user.User{
			Name:         req.Name,
			Email:        auth.NormalizeEmail(req.Email),
			PasswordHash: hash,
			Role:         role,
		})
		return err
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("user registered", "user_id", created.ID, "role", created.Role)
	return user.NewUserResponse(created), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.GetByEmail(ctx, auth.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	var tokens auth.TokenResponse
	err = a.WithinTransaction(ctx, func(txCtx context.Context) error {
		tokens, err = a.issueTokens(txCtx, userData, session)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return tokens, nil
}

// RefreshToken implements auth.AuthService. The presented token is revoked and replaced, so each
// refresh token can be used once.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userID, err := a.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	ownerID, revoked, err := a.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if revoked {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}
	if ownerID != userID {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	userData, err := a.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	var tokens auth.TokenResponse
	err = a.WithinTransaction(ctx, func(txCtx context.Context) error {
		ok, err := a.RevokeRefreshToken(txCtx, req.RefreshToken)
		if err != nil {
			return err
		}
		if !ok {
			return auth.ErrRefreshTokenRevoked
		}
		tokens, err = a.issueTokens(txCtx, userData, session)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return tokens, nil
}

// Logout implements auth.AuthService. Revoking an unknown or already revoked token is not an
// error.
func (a *AuthServiceImpl) Logout(ctx context.Context, req auth.RefreshTokenRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if _, err := a.RevokeRefreshToken(ctx, req.RefreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, u user.User, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var (
		tokens auth.TokenResponse
		err    error
	)
	tokens.AccessToken, tokens.AccessTokenExpiresIn, err = a.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokens.RefreshToken, tokens.RefreshTokenExpiresIn, err = a.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}
	if err := a.CreateRefreshToken(ctx, u.ID, tokens.RefreshToken, tokens.RefreshTokenExpiresIn, session); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to save refresh token to database: %w", err)
	}

	resp := user.NewUserResponse(u)
	tokens.User = &resp
	return tokens, nil
}
