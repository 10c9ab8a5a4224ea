package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"mindspark/internal/config"
	"mindspark/internal/domain"
	"mindspark/internal/dto"
	"mindspark/internal/logger"
	"mindspark/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidJWTToken = errors.New("invalid jwt token")

// AuthService defines the interface for authentication operations.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	// Login accepts either the username or the email address as identifier.
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(userID string, ttl time.Duration, tokenType string) (string, error)
}

type authServiceImpl struct {
	userRepo    domain.UserRepository
	profileRepo domain.ProfileRepository
	txManager   domain.TransactionManager
	jwtConfig   config.JWTConfig
	adminCode   string
	now         func() time.Time
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(
	userRepo domain.UserRepository,
	profileRepo domain.ProfileRepository,
	txManager domain.TransactionManager,
	appConfig *config.Config,
) (AuthService, error) {
	if appConfig.JWT.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	return &authServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		txManager:   txManager,
		jwtConfig:   appConfig.JWT,
		adminCode:   appConfig.Auth.AdminCode,
		now:         time.Now,
	}, nil
}

func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	appLogger := logger.Get()

	existing, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, domain.NewInternalError("failed to check username", err)
	}
	if existing != nil {
		return nil, domain.NewConflictError("username already exists")
	}
	existing, err = s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.NewInternalError("failed to check email", err)
	}
	if existing != nil {
		return nil, domain.NewConflictError("email already exists")
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}

	now := s.now()
	user := &domain.User{
		ID:           util.NewULID(),
		Username:     req.Username,
		Email:        req.Email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	profile := &domain.UserProfile{
		UserID:    user.ID,
		IsAdmin:   s.isAdminCode(req.AdminCode),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.CreateUser(txCtx, user); err != nil {
			return err
		}
		return s.profileRepo.CreateProfile(txCtx, profile)
	})
	if err != nil {
		return nil, domain.NewInternalError("failed to register user", err)
	}

	appLogger.Info("User registered", zap.String("userID", user.ID), zap.Bool("isAdmin", profile.IsAdmin))
	return s.issueTokens(user.ID)
}

func (s *authServiceImpl) isAdminCode(code string) bool {
	if s.adminCode == "" || code == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(code), []byte(s.adminCode)) == 1
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	var (
		user *domain.User
		err  error
	)
	if strings.Contains(req.Username, "@") {
		user, err = s.userRepo.GetUserByEmail(ctx, req.Username)
	} else {
		user, err = s.userRepo.GetUserByUsername(ctx, req.Username)
	}
	if err != nil {
		return nil, domain.NewInternalError("failed to look up user", err)
	}
	if user == nil || !checkPassword(user.PasswordHash, req.Password) {
		logger.Get().Info("Failed login attempt", zap.String("username", req.Username))
		return nil, domain.NewUnauthorizedError("invalid username or password")
	}

	logger.Get().Info("User logged in", zap.String("userID", user.ID))
	return s.issueTokens(user.ID)
}

func (s *authServiceImpl) issueTokens(userID string) (*dto.TokenResponse, error) {
	accessToken, err := s.CreateJWT(userID, s.jwtConfig.AccessTokenTTL, dto.TokenTypeAccess)
	if err != nil {
		return nil, domain.NewInternalError("failed to create access token", err)
	}
	refreshToken, err := s.CreateJWT(userID, s.jwtConfig.RefreshTokenTTL, dto.TokenTypeRefresh)
	if err != nil {
		return nil, domain.NewInternalError("failed to create refresh token", err)
	}
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtConfig.AccessTokenTTL.Seconds()),
	}, nil
}

func (s *authServiceImpl) CreateJWT(userID string, ttl time.Duration, tokenType string) (string, error) {
	now := s.now()
	claims := dto.AuthClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   userID,
			ID:        util.NewULID(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtConfig.SecretKey))
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Debug("JWT token expired", zap.Error(err))
		} else {
			logger.Get().Warn("JWT validation failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}

func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error) {
	claims, err := s.ValidateJWT(ctx, refreshTokenString)
	if err != nil {
		return nil, domain.NewUnauthorizedError("invalid refresh token")
	}
	if claims.TokenType != dto.TokenTypeRefresh {
		return nil, domain.NewUnauthorizedError("not a refresh token")
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up user", err)
	}
	if user == nil {
		return nil, domain.NewUnauthorizedError("user no longer exists")
	}

	logger.Get().Info("JWT token refreshed", zap.String("userID", user.ID))
	return s.issueTokens(user.ID)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
