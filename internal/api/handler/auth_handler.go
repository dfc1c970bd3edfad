package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-platform/internal/api/metrics"
	"github.com/inkwell/blog-platform/internal/api/middleware"
	"github.com/inkwell/blog-platform/internal/core/domain"
	"github.com/inkwell/blog-platform/internal/core/ports"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService  ports.AuthService
	tokenTTL     time.Duration
	secureCookie bool
}

// NewAuthHandler creates an AuthHandler. tokenTTL must match the validity
// window of issued tokens so the cookie max-age lines up with token expiry;
// secureCookie marks the cookie Secure in production-like environments.
func NewAuthHandler(authService ports.AuthService, tokenTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, tokenTTL: tokenTTL, secureCookie: secureCookie}
}

// LoginPage serves the login form locals.
//
// @Summary      Login page
// @Tags         auth
// @Produce      json
// @Success      200  {object}  pageLocals
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.JSON(http.StatusOK, pageLocals{
		Title:       "Login",
		Description: "Sign in to manage your articles.",
	})
}

// RegisterPage serves the registration form locals.
//
// @Summary      Registration page
// @Tags         auth
// @Produce      json
// @Success      200  {object}  pageLocals
// @Router       /register [get]
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.JSON(http.StatusOK, pageLocals{
		Title:       "Register",
		Description: "Create an author account.",
	})
}

// Register creates a new author account and redirects to the login page.
//
// @Summary      Register a new author
// @Tags         auth
// @Accept       json
// @Param        body  body  registerRequest  true  "Registration details"
// @Success      302
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	// The absence of any required field gets the single generic message; the
	// validator only checks format constraints (lengths, email shape).
	if !req.hasRequiredFields() {
		return domain.ErrMissingFields
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	_, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.Redirect(http.StatusFound, "/login")
}

// Login verifies the credentials, sets the authToken cookie and redirects to
// the dashboard. Unknown username and wrong password produce the identical
// error.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Param        body  body  loginRequest  true  "Login credentials"
// @Success      302
// @Failure      401   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Logout expires the auth cookie and redirects to the login page. There is no
// server-side revocation list; the token stays valid until natural expiry.
//
// @Summary      Logout
// @Tags         auth
// @Success      302
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, "/login")
}
