package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"tunedeck/internal/handler"
	"tunedeck/internal/session"
	"tunedeck/internal/view"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	sessions *session.Manager,
	authHandler *handler.AuthHandler,
	songHandler *handler.SongHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.Renderer = view.NewRenderer()
	e.Static("/static", "static")

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// Public routes
	e.GET("/", authHandler.Index)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.RegisterForm)
	e.POST("/register", authHandler.Register)
	e.GET("/logout", authHandler.Logout)

	// Session-protected routes
	dashboard := e.Group("/dashboard", RequireSession(sessions))
	dashboard.GET("", songHandler.Dashboard)

	// Admin routes
	songs := e.Group("/songs", RequireAdmin(sessions))
	songs.POST("/add", songHandler.Add)
	songs.GET("/edit/:id", songHandler.EditForm)
	songs.POST("/edit/:id", songHandler.Edit)
	songs.POST("/delete/:id", songHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
