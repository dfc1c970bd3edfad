package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// AuthService implements registration and login with bcrypt-hashed passwords
// and HS256 session tokens.
type AuthService struct {
	repo      ports.AuthorRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.AuthorRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

// TokenTTL is the validity window of issued tokens; the auth cookie max-age
// must match it.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Author, error) {
	if input.Username == "" || input.Password == "" || input.Email == "" ||
		input.FirstName == "" || input.LastName == "" {
		return nil, domain.ErrMissingFields
	}

	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))

	exists, err := s.repo.Exists(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAuthorExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	author := &domain.Author{
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		Email:          email,
		Username:       username,
		PasswordHash:   string(hash),
		Bio:            strings.TrimSpace(input.Bio),
		ProfilePicture: domain.DefaultProfilePicture,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// The unique indexes still back the invariant: a concurrent registration
	// slipping past the Exists pre-check surfaces as ErrAuthorExists here.
	created, err := s.repo.Create(ctx, author)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("author registered")
	return created, nil
}

// Login verifies the credentials and returns a signed session token. Unknown
// username and wrong password are deliberately indistinguishable.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Author, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	author, err := s.repo.FindByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, domain.ErrAuthorNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(author.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(author)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("username", author.Username).Msg("author logged in")
	return token, author, nil
}

func (s *AuthService) generateToken(author *domain.Author) (string, error) {
	now := time.Now()
	claims := domain.Claims{
		AuthorID: author.ID,
		Username: author.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
