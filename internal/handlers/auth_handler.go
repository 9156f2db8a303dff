package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-bot/internal/httperr"
	"github.com/BruksfildServices01/barber-bot/internal/infra/repository"
	"github.com/BruksfildServices01/barber-bot/internal/middleware"
	"github.com/BruksfildServices01/barber-bot/internal/models"
)

const tokenTTL = 24 * time.Hour

type AdminStore interface {
	FindAdminByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	UpsertAdmin(ctx context.Context, username, passwordHash string) (*models.AdminUser, error)
}

type AuthHandler struct {
	admins AdminStore
	secret string
	now    func() time.Time
}

func NewAuthHandler(admins AdminStore, secret string) *AuthHandler {
	return &AuthHandler{admins: admins, secret: secret, now: time.Now}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	admin, err := h.admins.FindAdminByUsername(c.Request.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password.")
			return
		}
		httperr.Internal(c, "internal_error", "Could not check credentials.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password.")
		return
	}

	token, err := h.generateToken(admin)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue a token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admin": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
		},
		"token": token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(admin *models.AdminUser) (string, error) {
	now := h.now()
	claims := jwt.MapClaims{
		"sub":      admin.ID,
		"username": admin.Username,
		"role":     middleware.RoleAdmin,
		"exp":      now.Add(tokenTTL).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.secret))
}

// BootstrapAdmin makes sure the configured account exists with the
// configured password. Empty credentials leave storage untouched.
func BootstrapAdmin(ctx context.Context, admins AdminStore, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil
	}

	if existing, err := admins.FindAdminByUsername(ctx, username); err == nil {
		if bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(password)) == nil {
			return nil
		}
	} else if !errors.Is(err, repository.ErrAdminNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = admins.UpsertAdmin(ctx, username, string(hashed))
	return err
}
