// Package auth implements local account registration and token-based
// login for the single-device deployment model.
package auth

import (
	"crypto/subtle"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/gmsas95/healthmate/internal/errors"
	"github.com/gmsas95/healthmate/internal/schedule"
)

// Service handles registration, login, and token validation.
type Service struct {
	store    *Store
	secret   []byte
	tokenTTL time.Duration
	clock    schedule.Clock
	logger   *zap.Logger
}

func NewService(store *Store, secret string, tokenTTL time.Duration, clock schedule.Clock, logger *zap.Logger) *Service {
	if clock == nil {
		clock = schedule.SystemClock()
	}
	return &Service{
		store:    store,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		clock:    clock,
		logger:   logger,
	}
}

// CheckComplexity enforces the password policy: at least eight
// characters, one uppercase letter, and one special character.
func CheckComplexity(password string) error {
	if len(password) < 8 {
		return apperrors.Wrap(apperrors.ErrPasswordComplexity, apperrors.ErrPasswordComplexity.Code, "password must be at least 8 characters")
	}
	var hasUpper, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case r == '_' || (!unicode.IsLetter(r) && !unicode.IsDigit(r)):
			hasSpecial = true
		}
	}
	if !hasUpper {
		return apperrors.Wrap(apperrors.ErrPasswordComplexity, apperrors.ErrPasswordComplexity.Code, "password must contain an uppercase letter")
	}
	if !hasSpecial {
		return apperrors.Wrap(apperrors.ErrPasswordComplexity, apperrors.ErrPasswordComplexity.Code, "password must contain a special character")
	}
	return nil
}

// Register creates a new account after validating the credentials.
func (s *Service) Register(creds Credentials) (*User, error) {
	username := strings.TrimSpace(creds.Username)
	if username == "" || creds.Password == "" {
		return nil, apperrors.Wrap(apperrors.ErrMissingField, apperrors.ErrMissingField.Code, "username and password are required")
	}
	if err := CheckComplexity(creds.Password); err != nil {
		return nil, err
	}

	existing, err := s.store.GetUser(username)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrPersistRead.Code, "failed to look up user")
	}
	if existing != nil {
		return nil, apperrors.ErrUserExists
	}

	user := &User{
		ID:       "user_" + uuid.NewString(),
		Username: username,
		Password: creds.Password,
	}
	if err := s.store.CreateUser(user); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrPersistWrite.Code, "failed to create user")
	}

	s.logger.Info("User registered", zap.String("username", username))
	return user, nil
}

// Login checks the credentials and issues a signed token.
func (s *Service) Login(creds Credentials) (*Token, error) {
	user, err := s.store.GetUser(strings.TrimSpace(creds.Username))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrPersistRead.Code, "failed to look up user")
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(creds.Password)) != 1 {
		return nil, apperrors.ErrBadPassword
	}

	expiresAt := s.clock.Now().Add(s.tokenTTL)
	claims := jwt.MapClaims{
		"sub": user.ID,
		"usr": user.Username,
		"iat": s.clock.Now().Unix(),
		"exp": expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, "failed to sign token")
	}

	s.logger.Info("User logged in", zap.String("username", user.Username))
	return &Token{Value: signed, ExpiresAt: expiresAt}, nil
}

// ValidateToken parses a token and returns the username it carries.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrUnauthorized
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !token.Valid {
		return "", apperrors.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperrors.ErrUnauthorized
	}
	username, _ := claims["usr"].(string)
	if username == "" {
		return "", apperrors.ErrUnauthorized
	}
	return username, nil
}
