package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

type stubAuthorRepo struct {
	authors map[string]*domain.Author // keyed by username
	nextID  int
}

func newStubAuthorRepo() *stubAuthorRepo {
	return &stubAuthorRepo{authors: make(map[string]*domain.Author)}
}

func cloneAuthor(a *domain.Author) *domain.Author {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAuthorRepo) Create(_ context.Context, author *domain.Author) (*domain.Author, error) {
	for _, existing := range r.authors {
		if existing.Username == author.Username || existing.Email == author.Email {
			return nil, domain.ErrAuthorExists
		}
	}
	created := cloneAuthor(author)
	r.nextID++
	created.ID = fmt.Sprintf("author-%d", r.nextID)
	r.authors[created.Username] = cloneAuthor(created)
	return created, nil
}

func (r *stubAuthorRepo) FindByID(_ context.Context, id string) (*domain.Author, error) {
	for _, a := range r.authors {
		if a.ID == id {
			return cloneAuthor(a), nil
		}
	}
	return nil, domain.ErrAuthorNotFound
}

func (r *stubAuthorRepo) FindByUsername(_ context.Context, username string) (*domain.Author, error) {
	if a, ok := r.authors[username]; ok {
		return cloneAuthor(a), nil
	}
	return nil, domain.ErrAuthorNotFound
}

func (r *stubAuthorRepo) Exists(_ context.Context, username, email string) (bool, error) {
	for _, a := range r.authors {
		if a.Username == username || a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func registerInput() ports.RegisterInput {
	return ports.RegisterInput{
		Username:  "alice",
		Password:  "s3cret99",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Austen",
		Bio:       "Occasional writer.",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthorRepo()
	svc := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())

	author, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if author.PasswordHash == "s3cret99" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(author.PasswordHash), []byte("s3cret99")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if author.ProfilePicture != domain.DefaultProfilePicture {
		t.Fatalf("expected default profile picture, got %q", author.ProfilePicture)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	repo := newStubAuthorRepo()
	svc := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())

	input := registerInput()
	input.Email = ""
	if _, err := svc.Register(context.Background(), input); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if len(repo.authors) != 0 {
		t.Fatalf("no author must be created on validation failure")
	}
}

func TestAuthService_Register_DuplicateUsernameOrEmail(t *testing.T) {
	repo := newStubAuthorRepo()
	svc := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	dupUsername := registerInput()
	dupUsername.Email = "other@example.com"
	if _, err := svc.Register(context.Background(), dupUsername); err != domain.ErrAuthorExists {
		t.Fatalf("expected ErrAuthorExists for duplicate username, got %v", err)
	}

	dupEmail := registerInput()
	dupEmail.Username = "someoneelse"
	if _, err := svc.Register(context.Background(), dupEmail); err != domain.ErrAuthorExists {
		t.Fatalf("expected ErrAuthorExists for duplicate email, got %v", err)
	}

	if len(repo.authors) != 1 {
		t.Fatalf("expected exactly one stored author, got %d", len(repo.authors))
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthorRepo()
	svc := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())

	registered, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	before := time.Now()
	token, author, err := svc.Login(context.Background(), "alice", "s3cret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if author == nil || author.Username != "alice" {
		t.Fatalf("unexpected author: %+v", author)
	}

	claims := &domain.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.AuthorID != registered.ID {
		t.Fatalf("expected authorId %q in claims, got %q", registered.ID, claims.AuthorID)
	}
	if claims.Username != "alice" {
		t.Fatalf("expected username in claims, got %q", claims.Username)
	}

	// expiry must be exactly one hour from issuance
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != time.Hour {
		t.Fatalf("expected 1h token lifetime, got %v", lifetime)
	}
	if claims.ExpiresAt.Before(before.Add(59 * time.Minute)) {
		t.Fatalf("expiry not anchored at issuance: %v", claims.ExpiresAt)
	}
}

func TestAuthService_Login_NonDistinguishingFailure(t *testing.T) {
	repo := newStubAuthorRepo()
	svc := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, badPassword := svc.Login(context.Background(), "alice", "wrongpass")
	_, _, unknownUser := svc.Login(context.Background(), "nobody", "s3cret99")

	if badPassword != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", badPassword)
	}
	if unknownUser != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown username, got %v", unknownUser)
	}
	if badPassword.Error() != unknownUser.Error() {
		t.Fatalf("failure messages must be identical: %q vs %q", badPassword, unknownUser)
	}
}
