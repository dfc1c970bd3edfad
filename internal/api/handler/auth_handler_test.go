package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/api/middleware"
	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

type stubAuthService struct {
	registered []ports.RegisterInput
	loginErr   error
}

func (s *stubAuthService) Register(_ context.Context, input ports.RegisterInput) (*domain.Author, error) {
	s.registered = append(s.registered, input)
	return &domain.Author{ID: "author-1", Username: input.Username}, nil
}

func (s *stubAuthService) Login(_ context.Context, username, _ string) (string, *domain.Author, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return "signed-token", &domain.Author{ID: "author-1", Username: username}, nil
}

func newAuthTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_SetsCookieAndRedirects(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, time.Hour, false)

	c, rec := newAuthTestContext(t, http.MethodPost, "/login", `{"username":"alice","password":"s3cret99"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", loc)
	}

	res := rec.Result()
	var cookie *http.Cookie
	for _, ck := range res.Cookies() {
		if ck.Name == middleware.CookieName {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatalf("authToken cookie not set")
	}
	if cookie.Value != "signed-token" {
		t.Fatalf("unexpected cookie value %q", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Fatalf("cookie must be HttpOnly")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie must be SameSite=Lax")
	}
	if cookie.MaxAge != int(time.Hour.Seconds()) {
		t.Fatalf("cookie max-age must match the 1h token lifetime, got %d", cookie.MaxAge)
	}
	if cookie.Secure {
		t.Fatalf("cookie must not be Secure outside production")
	}
}

func TestAuthHandler_Login_SecureCookieInProduction(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, time.Hour, true)

	c, rec := newAuthTestContext(t, http.MethodPost, "/login", `{"username":"alice","password":"s3cret99"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.CookieName && !ck.Secure {
			t.Fatalf("cookie must be Secure in production")
		}
	}
}

func TestAuthHandler_Login_FailurePropagatesInvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials}, time.Hour, false)

	c, rec := newAuthTestContext(t, http.MethodPost, "/login", `{"username":"alice","password":"wrong"}`)
	err := h.Login(c)
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.CookieName {
			t.Fatalf("no cookie may be issued on failed login")
		}
	}
}

func TestAuthHandler_Register_SuccessRedirectsToLogin(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, time.Hour, false)

	body := `{"username":"alice","password":"s3cret99","email":"alice@example.com","firstName":"Alice","lastName":"Austen"}`
	c, rec := newAuthTestContext(t, http.MethodPost, "/register", body)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected 302 to /login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	if len(svc.registered) != 1 || svc.registered[0].Username != "alice" {
		t.Fatalf("service not called with the form input: %+v", svc.registered)
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, time.Hour, false)

	c, _ := newAuthTestContext(t, http.MethodPost, "/register", `{"username":"alice","password":"s3cret99"}`)
	if err := h.Register(c); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if len(svc.registered) != 0 {
		t.Fatalf("service must not be called when required fields are absent")
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, time.Hour, false)

	c, rec := newAuthTestContext(t, http.MethodGet, "/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected 302 to /login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	var cleared bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.CookieName && ck.MaxAge < 0 && ck.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("authToken cookie not cleared")
	}
}
