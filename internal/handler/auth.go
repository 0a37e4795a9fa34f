package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	"github.com/iliyamo/restaurant-table-reservation/internal/utils"
)

// AuthHandler implements staff account registration and login.  Staff
// tokens are only enforced on mutating routes when the deployment
// enables API_AUTH_REQUIRED; the handler itself is always mounted so
// accounts can be provisioned ahead of turning enforcement on.
type AuthHandler struct {
	Users      UserStore
	JWTSecret  string
	AccessTTL  time.Duration
	BcryptCost int
}

// NewAuthHandler constructs an AuthHandler and panics when the user
// store is nil.
func NewAuthHandler(users UserStore, secret string, accessTTL time.Duration, bcryptCost int) *AuthHandler {
	if users == nil {
		panic("nil store passed to NewAuthHandler")
	}
	return &AuthHandler{Users: users, JWTSecret: secret, AccessTTL: accessTTL, BcryptCost: bcryptCost}
}

type registerRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /auth/register.  It creates a staff account
// and returns a signed access token so the client is logged in
// immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "a valid email is required"})
	}
	if req.FullName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name is required"})
	}
	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters"})
	}

	hash, err := utils.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to hash password"})
	}
	user := &model.StaffUser{Email: req.Email, FullName: req.FullName, PasswordHash: hash}
	if err := h.Users.Create(c.Request().Context(), user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		}
		return dbError(c)
	}

	token, err := utils.NewAccessToken(h.JWTSecret, user.ID, user.Email, h.AccessTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to sign token"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"access_token": token,
		"user":         echo.Map{"id": user.ID, "email": user.Email, "full_name": user.FullName},
	})
}

// Login handles POST /auth/login.  Unknown emails and wrong passwords
// return the same 401 so credentials cannot be probed.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := h.Users.GetByEmail(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return dbError(c)
	}
	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := utils.NewAccessToken(h.JWTSecret, user.ID, user.Email, h.AccessTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to sign token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": token,
		"user":         echo.Map{"id": user.ID, "email": user.Email, "full_name": user.FullName},
	})
}

// Me handles GET /auth/me for authenticated staff.
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	user, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data": echo.Map{"id": user.ID, "email": user.Email, "full_name": user.FullName},
	})
}
