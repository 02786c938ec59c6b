package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/odc-estimate/internal/pkg/errors"
	"github.com/odc-estimate/internal/usecase/dto"
)

const tokenIssuer = "odc-estimate"

// AdminClaims - claims токена администратора
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthUseCase - вход администратора и проверка токенов
type AuthUseCase struct {
	username     string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

func NewAuthUseCase(username, passwordHash, secret string, ttl time.Duration, logger *zap.Logger) *AuthUseCase {
	return &AuthUseCase{
		username:     username,
		passwordHash: []byte(passwordHash),
		secret:       []byte(secret),
		ttl:          ttl,
		logger:       logger,
		now:          time.Now,
	}
}

// Login checks the configured credentials and issues an HS256 token.
func (uc *AuthUseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if uc.username == "" || len(uc.passwordHash) == 0 {
		uc.logger.Warn("Admin login attempted but credentials are not configured")
		return nil, errors.ErrUnauthorized
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(uc.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(uc.passwordHash, []byte(req.Password))
	if !userOK || passErr != nil {
		uc.logger.Info("Admin login rejected", zap.String("username", req.Username))
		return nil, errors.ErrUnauthorized.WithMessage("Invalid username or password")
	}

	now := uc.now()
	expires := now.Add(uc.ttl)
	claims := AdminClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   uc.username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	uc.logger.Info("Admin logged in", zap.String("username", uc.username))
	return &dto.LoginResponse{Token: token, ExpiresAt: expires.Unix()}, nil
}

// ParseToken validates signature, issuer and expiry.
func (uc *AuthUseCase) ParseToken(raw string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return uc.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(uc.now),
	)
	if err != nil {
		return nil, errors.ErrUnauthorized
	}
	return claims, nil
}
