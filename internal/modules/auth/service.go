package auth

import (
	"context"
	"strings"
	"time"

	"github.com/pitchcraft/core/internal/models"
	jwtpkg "github.com/pitchcraft/core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// Service handles account registration and password login.
type Service struct {
	users      UserStore
	sessionTTL time.Duration
	failDelay  time.Duration
}

func NewService(users UserStore, sessionTTL time.Duration) *Service {
	return &Service{users: users, sessionTTL: sessionTTL, failDelay: 3 * time.Second}
}

// Login verifies credentials and returns a signed session token. Failures
// are delayed to blunt brute-force probing.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", err
	}
	if u == nil {
		time.Sleep(s.failDelay)
		return "", errAuthUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		time.Sleep(s.failDelay)
		return "", errAuthWrongPassword
	}
	return jwtpkg.Sign(u.ID.Hex(), s.sessionTTL)
}

// Register creates a new account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, dto *RegisterDTO) (*models.UserModel, error) {
	username := strings.TrimSpace(dto.Username)
	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(dto.Name)
	if name == "" {
		name = username
	}
	u := models.UserModel{Username: username, Password: string(hash), Name: name}
	return s.users.Create(ctx, &u)
}

// Profile loads the account for a verified user id, or nil.
func (s *Service) Profile(ctx context.Context, userID string) (*models.UserModel, error) {
	return s.users.FindByID(ctx, userID)
}
