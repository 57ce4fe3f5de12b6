package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/infrastructure/config"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/ports"
)

// RoleAdmin is the only role the API knows
const RoleAdmin = "admin"

// adminSubject is the subject of tokens issued through the login endpoint
const adminSubject = "admin"

// Claims represents the JWT claims
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminService authorizes administrative operations such as resetting the
// task collection.
type AdminService struct {
	adminConfig config.AdminConfig
	jwtConfig   config.JWTConfig
	logger      *logger.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(adminConfig config.AdminConfig, jwtConfig config.JWTConfig, logger *logger.Logger) *AdminService {
	return &AdminService{
		adminConfig: adminConfig,
		jwtConfig:   jwtConfig,
		logger:      logger.WithComponent("admin"),
	}
}

// Login checks the admin password and returns an access token
func (s *AdminService) Login(ctx context.Context, req ports.AdminLoginRequest) (*ports.TokenResponse, error) {
	if s.adminConfig.PasswordHash == "" {
		s.logger.Warnw("Admin login attempted but no password hash is configured")
		return nil, entities.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.adminConfig.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warnw("Admin login with invalid password")
		return nil, entities.ErrUnauthorized
	}

	s.logger.Infow("Admin logged in")
	return s.IssueToken(adminSubject)
}

// IssueToken signs an admin token for subject
func (s *AdminService) IssueToken(subject string) (*ports.TokenResponse, error) {
	now := time.Now()
	claims := &Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.ExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.jwtConfig.Issuer,
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &ports.TokenResponse{
		AccessToken: tokenString,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtConfig.ExpiresIn.Seconds()),
	}, nil
}

// ValidateToken validates a JWT token and returns claims
func (s *AdminService) ValidateToken(tokenString string) (*ports.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	}, jwt.WithIssuer(s.jwtConfig.Issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", entities.ErrUnauthorized)
	}

	return &ports.Claims{
		Subject: claims.Subject,
		Role:    claims.Role,
	}, nil
}
