package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pageza/pantrychef/backend/internal/middleware"
	"github.com/pageza/pantrychef/backend/internal/model"
	"gorm.io/gorm"
)

var ErrInvalidToken = errors.New("invalid token")

type sessionClaims struct {
	HouseholdID string `json:"household_id"`
	jwt.RegisteredClaims
}

// SessionService creates households and the bearer tokens that identify them.
type SessionService struct {
	db        *gorm.DB
	jwtSecret string
	ttl       time.Duration
}

func NewSessionService(db *gorm.DB, jwtSecret string, ttl time.Duration) *SessionService {
	return &SessionService{
		db:        db,
		jwtSecret: jwtSecret,
		ttl:       ttl,
	}
}

// Create starts a new household and returns its token.
func (s *SessionService) Create(ctx context.Context) (*model.Household, string, error) {
	h := &model.Household{}
	if err := s.db.WithContext(ctx).Create(h).Error; err != nil {
		return nil, "", fmt.Errorf("failed to create household: %w", err)
	}
	token, err := s.GenerateToken(h.ID)
	if err != nil {
		return nil, "", err
	}
	return h, token, nil
}

func (s *SessionService) GenerateToken(householdID uuid.UUID) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		HouseholdID: householdID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   householdID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks the signature and expiry and that the household
// still exists.
func (s *SessionService) ValidateToken(tokenString string) (*middleware.TokenClaims, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.HouseholdID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var count int64
	if err := s.db.Model(&model.Household{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to look up household: %w", err)
	}
	if count == 0 {
		return nil, ErrInvalidToken
	}

	return &middleware.TokenClaims{HouseholdID: id}, nil
}
