package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/adnex-platform/partner-api/internal/cache"
	"github.com/adnex-platform/partner-api/internal/config"
	"github.com/adnex-platform/partner-api/internal/constants"
	"github.com/adnex-platform/partner-api/internal/models"
	"github.com/adnex-platform/partner-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// PartnerAuthService authenticates partner accounts.
type PartnerAuthService struct {
	cfg         *config.Config
	userRepo    repository.UserRepository
	partnerRepo repository.PartnerRepository
}

func NewPartnerAuthService(cfg *config.Config, userRepo repository.UserRepository, partnerRepo repository.PartnerRepository) *PartnerAuthService {
	return &PartnerAuthService{
		cfg:         cfg,
		userRepo:    userRepo,
		partnerRepo: partnerRepo,
	}
}

// PartnerJWTClaims are the token claims of a logged in partner.
type PartnerJWTClaims struct {
	UserID       uint   `json:"user_id"`
	PartnerID    uint   `json:"partner_id"`
	Email        string `json:"email"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// LoginResult carries everything the login endpoint responds with.
type LoginResult struct {
	User      *models.User
	Partner   *models.Partner
	Token     string
	ExpiresAt time.Time
}

// Login verifies credentials and issues a signed token. The account must
// be active and linked to a partner profile.
func (s *PartnerAuthService) Login(email, password string) (*LoginResult, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if strings.ToLower(user.Status) != constants.UserStatusActive {
		return nil, ErrUserDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	partner, err := s.partnerRepo.GetByUserID(user.ID)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, ErrPartnerNotFound
	}

	token, expiresAt, err := s.GenerateToken(user, partner)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	_ = cache.SetPartnerAuthState(context.Background(), cache.BuildPartnerAuthState(user, partner))

	return &LoginResult{
		User:      user,
		Partner:   partner,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// GenerateToken signs a partner token with the configured HS256 secret.
func (s *PartnerAuthService) GenerateToken(user *models.User, partner *models.Partner) (string, time.Time, error) {
	expireHours := s.cfg.JWT.ExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(expireHours) * time.Hour)
	claims := PartnerJWTClaims{
		UserID:       user.ID,
		PartnerID:    partner.ID,
		Email:        user.Email,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates a partner token and returns its claims.
func (s *PartnerAuthService) ParseToken(tokenString string) (*PartnerJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &PartnerJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*PartnerJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// GetProfile loads the user and partner behind a token.
func (s *PartnerAuthService) GetProfile(userID uint) (*models.User, *models.Partner, error) {
	if userID == 0 {
		return nil, nil, ErrUserNotFound
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}
	partner, err := s.partnerRepo.GetByUserID(user.ID)
	if err != nil {
		return nil, nil, err
	}
	if partner == nil {
		return nil, nil, ErrPartnerNotFound
	}
	return user, partner, nil
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidCredentials
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidCredentials
	}
	return normalized, nil
}
