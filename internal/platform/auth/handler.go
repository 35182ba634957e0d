package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	users  UserRepository
	secret []byte
	ttl    time.Duration
}

func NewHandler(users UserRepository, secret []byte, ttl time.Duration) *Handler {
	return &Handler{users: users, secret: secret, ttl: ttl}
}

// RegisterRoutes mounts the login endpoint on the public group and user
// management on the authenticated group.
func (h *Handler) RegisterRoutes(public, api *echo.Group) {
	public.POST("/auth/login", h.Login)

	adminGroup := api.Group("", RequireRole("admin"))
	adminGroup.POST("/auth/register", h.Register)
	adminGroup.GET("/users", h.ListUsers)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	u, err := h.users.GetByUsername(c.Request().Context(), req.Username)
	if err != nil || !CheckPassword(u.PasswordHash, req.Password) {
		// Same response for unknown user and wrong password.
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, err := IssueToken(h.secret, h.ttl, u)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not issue token")
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: u})
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u, err := NewUser(req.Username, req.Password, req.Role)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.users.Create(c.Request().Context(), u); err != nil {
		return echo.NewHTTPError(http.StatusConflict, "username already taken")
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) ListUsers(c echo.Context) error {
	items, total, err := h.users.List(c.Request().Context(), 100, 0)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": items, "total": total})
}
