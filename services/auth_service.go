package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hotel-rooms/models"
	"hotel-rooms/stores"
)

const DefaultSessionTTL = 24 * time.Hour

// AuthService logs admins in and resolves their session tokens.
type AuthService struct {
	Admins   stores.AdminStore
	Sessions stores.SessionStore
	TTL      time.Duration

	Now      func() time.Time
	NewToken func() string
}

func NewAuthService(admins stores.AdminStore, sessions stores.SessionStore, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthService{
		Admins:   admins,
		Sessions: sessions,
		TTL:      ttl,
		Now:      time.Now,
		NewToken: uuid.NewString,
	}
}

// Login checks credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", time.Time{}, Validation("username and password required")
	}

	admin, err := s.Admins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return "", time.Time{}, Unauthorized("invalid credentials")
		}
		return "", time.Time{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", time.Time{}, Unauthorized("invalid credentials")
	}

	token := s.NewToken()
	expires := s.Now().Add(s.TTL).UTC()
	if err := s.Sessions.Create(ctx, token, stores.Session{AdminID: admin.ID, ExpiresAt: expires}); err != nil {
		return "", time.Time{}, err
	}
	return token, expires, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.Sessions.Delete(ctx, token)
}

// Authenticate resolves a bearer token to its admin.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Admin, error) {
	if token == "" {
		return nil, Unauthorized("Not authorized to access this route")
	}
	sess, err := s.Sessions.Lookup(ctx, token)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, Unauthorized("Not authorized to access this route")
		}
		return nil, err
	}
	if !sess.ExpiresAt.After(s.Now()) {
		_ = s.Sessions.Delete(ctx, token)
		return nil, Unauthorized("Session expired")
	}
	admin, err := s.Admins.FindByID(ctx, sess.AdminID)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, Unauthorized("Not authorized to access this route")
		}
		return nil, err
	}
	return admin, nil
}

// HashPassword returns a bcrypt hash suitable for models.Admin.Password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
