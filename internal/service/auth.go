package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/models"
)

var (
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials is returned for unknown users and wrong
	// passwords alike; callers must not distinguish the two.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// TokenClaims is the identity carried by an API token.
type TokenClaims struct {
	UserID uint
}

// AuthService implements both authentication schemes: stateless signed
// tokens for the JSON API and server-side sessions for rendered pages.
type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	sessions  SessionStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(db *gorm.DB, jwtSecret string, sessions SessionStore) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		sessions:  sessions,
	}
}

// Register creates a new user with a bcrypt-hashed password. The stored
// password is never the submitted plaintext.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	var existing models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Login checks credentials and returns the matching user.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// GenerateToken issues a signed API token for the user.
func (s *AuthService) GenerateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken checks a token's signature and extracts the identity claim.
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return &TokenClaims{UserID: uint(userID)}, nil
}

// StartSession establishes a server-side session for the user.
func (s *AuthService) StartSession(ctx context.Context, userID uint) (string, error) {
	return s.sessions.Create(ctx, userID)
}

// ResolveSession maps a session ID back to its user. A session whose user
// row no longer exists is treated as no session at all.
func (s *AuthService) ResolveSession(ctx context.Context, sessionID string) (*models.User, error) {
	userID, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, ErrSessionNotFound
	}
	return &user, nil
}

// EndSession clears a server-side session.
func (s *AuthService) EndSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}
