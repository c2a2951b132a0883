package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/translation-service/config"
	"github.com/guttosm/translation-service/internal/domain/dto"
	"github.com/guttosm/translation-service/internal/domain/model"
	"github.com/guttosm/translation-service/internal/repository"
	"github.com/guttosm/translation-service/internal/storage"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserExists is returned when trying to register an existing email.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidToken is returned when a token is malformed, badly signed or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrTokenBlacklisted is returned when an access token was revoked at logout.
	ErrTokenBlacklisted = errors.New("token has been revoked")
)

// AuthService provides authentication operations.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*dto.TokenPair, *model.User, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenPair, *model.User, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, *model.User, error)
	ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
}

// AuthServiceImpl implements AuthService.
// It handles user authentication and delegates token operations to TokenService.
type AuthServiceImpl struct {
	userRepo     repository.UserRepositoryInterface
	tokenService TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepositoryInterface,
	tokenRepo repository.TokenRepositoryInterface,
	authConfig config.AuthConfig,
) *AuthServiceImpl {
	return NewAuthServiceWithTokenService(userRepo, NewTokenService(tokenRepo, NewTokenConfigFromAuthConfig(authConfig)))
}

// NewAuthServiceWithTokenService creates an authentication service with an existing TokenService.
func NewAuthServiceWithTokenService(userRepo repository.UserRepositoryInterface, tokenService TokenService) *AuthServiceImpl {
	return &AuthServiceImpl{userRepo: userRepo, tokenService: tokenService}
}

// Login authenticates a user and returns JWT tokens.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*dto.TokenPair, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if user == nil || !user.Active {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokenPair, err := s.tokenService.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate token pair: %w", err)
	}
	return tokenPair, user, nil
}

// Register creates an account and logs it in.
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenPair, *model.User, error) {
	email := normalizeEmail(req.Email)
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Email:    email,
		Password: string(hashedPassword),
		Name:     strings.TrimSpace(req.Name),
		Active:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, nil, ErrUserExists
		}
		return nil, nil, err
	}

	tokenPair, err := s.tokenService.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return tokenPair, user, nil
}

// RefreshToken rotates a refresh token: the presented token is deleted and a new pair issued.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, *model.User, error) {
	claims, err := s.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, err
	}

	token, err := s.tokenService.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, nil, err
	}
	if token == nil || token.UserID != claims.UserID {
		return nil, nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || !user.Active {
		return nil, nil, ErrInvalidCredentials
	}

	if err := s.tokenService.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, nil, fmt.Errorf("failed to delete old refresh token: %w", err)
	}

	tokenPair, err := s.tokenService.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return tokenPair, user, nil
}

// ValidateToken validates an access token.
func (s *AuthServiceImpl) ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	return s.tokenService.ValidateAccessToken(ctx, tokenString)
}

// GetUserByID returns the user with id, or ErrInvalidCredentials when it no longer exists.
func (s *AuthServiceImpl) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Logout revokes the access token. When a refresh token is given only that one is deleted;
// otherwise every refresh token of the user is.
func (s *AuthServiceImpl) Logout(ctx context.Context, accessToken, refreshToken string) error {
	var errs []error

	if accessToken != "" {
		if refreshToken == "" {
			if claims, err := s.tokenService.ValidateAccessToken(ctx, accessToken); err == nil {
				if err := s.tokenService.InvalidateUserTokens(ctx, claims.UserID); err != nil {
					log.Ctx(ctx).Warn().Err(err).Msg("failed to delete refresh tokens during logout")
					errs = append(errs, fmt.Errorf("delete refresh tokens: %w", err))
				}
			}
		}
		if err := s.tokenService.InvalidateAccessToken(ctx, accessToken); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to invalidate access token during logout")
			errs = append(errs, fmt.Errorf("invalidate access token: %w", err))
		}
	}

	if refreshToken != "" {
		if err := s.tokenService.DeleteRefreshToken(ctx, refreshToken); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to delete refresh token during logout")
			errs = append(errs, fmt.Errorf("delete refresh token: %w", err))
		}
	}

	return errors.Join(errs...)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ AuthService = (*AuthServiceImpl)(nil)
