package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tunedeck/internal/service"
	"tunedeck/internal/session"
)

// User-facing failure messages. Every authentication failure collapses to
// one message with no distinction between wrong password, unknown account
// or backend error.
const (
	loginFailedMessage    = "Email atau password salah"
	registerFailedMessage = "Register gagal"
)

// AuthPage is the template data for the login and register pages.
type AuthPage struct {
	Error string
}

// LoginRequest is the login form.
type LoginRequest struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// RegisterRequest is the registration form.
type RegisterRequest struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

// AuthHandler handles login, registration and logout.
type AuthHandler struct {
	authService service.AuthService
	sessions    *session.Manager
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// Index redirects to the dashboard when a session exists, otherwise to
// the login page.
func (h *AuthHandler) Index(c echo.Context) error {
	if _, ok := h.sessions.User(c); ok {
		return c.Redirect(http.StatusFound, "/dashboard")
	}
	return c.Redirect(http.StatusFound, "/login")
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", AuthPage{})
}

// Login authenticates the submitted credentials and establishes the
// session. Any failure re-renders the login page with the generic
// message and leaves no session behind.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusOK, "login.html", AuthPage{Error: loginFailedMessage})
	}
	if err := c.Validate(&req); err != nil {
		return c.Render(http.StatusOK, "login.html", AuthPage{Error: loginFailedMessage})
	}

	user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		c.Logger().Debugf("login failed for %s: %v", req.Email, err)
		return c.Render(http.StatusOK, "login.html", AuthPage{Error: loginFailedMessage})
	}

	if err := h.sessions.Create(c, session.Data{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create session")
	}

	return c.Redirect(http.StatusFound, "/dashboard")
}

// RegisterForm renders the registration page.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", AuthPage{})
}

// Register creates the identity record and the users row. Failures are
// logged with their cause but rendered as one generic message.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusOK, "register.html", AuthPage{Error: registerFailedMessage})
	}
	if err := c.Validate(&req); err != nil {
		return c.Render(http.StatusOK, "register.html", AuthPage{Error: registerFailedMessage})
	}

	if err := h.authService.Register(c.Request().Context(), req.Email, req.Password); err != nil {
		c.Logger().Errorf("register failed for %s: %v", req.Email, err)
		return c.Render(http.StatusOK, "register.html", AuthPage{Error: registerFailedMessage})
	}

	return c.Redirect(http.StatusFound, "/login")
}

// Logout clears the session and returns to the login page.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Clear(c); err != nil {
		c.Logger().Errorf("clear session: %v", err)
	}
	return c.Redirect(http.StatusFound, "/login")
}
