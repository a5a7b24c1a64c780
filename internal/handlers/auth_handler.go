package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"tbexpert/internal/middleware"
	"tbexpert/internal/models"
	"tbexpert/internal/repositories"
	"tbexpert/internal/services"
	"tbexpert/internal/utils"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

type AuthHandler struct {
	users        repositories.UserRepository
	auth         services.AuthService
	registration *services.RegistrationService
}

func NewAuthHandler(users repositories.UserRepository, auth services.AuthService, registration *services.RegistrationService) *AuthHandler {
	return &AuthHandler{users: users, auth: auth, registration: registration}
}

// issueTokens — access JWT плюс непрозрачный refresh, сохраняемый в БД.
func (h *AuthHandler) issueTokens(userID int) (access, refresh string, err error) {
	accessClaims := &middleware.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
		},
	}
	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	access, err = accessToken.SignedString(middleware.JWTKey)
	if err != nil {
		return "", "", err
	}

	refresh, err = utils.NewOpaqueToken(32)
	if err != nil {
		return "", "", err
	}
	if err := h.users.UpdateRefresh(userID, refresh, time.Now().Add(refreshTokenTTL)); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// @Summary      Вход в систему
// @Description  Аутентифицирует пользователя и возвращает токены доступа
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Данные для входа"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][login] bad request: bind json failed: err=%v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	log.Printf("[auth][login] attempt email=%q", email)

	user, err := h.users.GetByEmail(email)
	if err != nil || user == nil {
		log.Printf("[auth][login] user not found by email=%q: err=%v", email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if !user.IsActive {
		log.Printf("[auth][login] inactive account userID=%d email=%q", user.ID, email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is not activated"})
		return
	}

	if err := h.auth.CheckPassword(user.PasswordHash, strings.TrimSpace(req.Password)); err != nil {
		log.Printf("[auth][login] password mismatch userID=%d email=%q", user.ID, email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	access, refresh, err := h.issueTokens(user.ID)
	if err != nil {
		log.Printf("[auth][login] issue tokens failed userID=%d: err=%v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	log.Printf("[auth][login] success userID=%d", user.ID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user, // у модели PasswordHash помечен json:"-", наружу не уйдет
		"tokens": gin.H{
			"access_token":  access,
			"refresh_token": refresh,
		},
	})
}

// @Summary      Обновление токенов
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	old := strings.TrimSpace(req.RefreshToken)
	user, err := h.users.GetByRefreshToken(old)
	if err != nil || user == nil || user.RefreshToken == nil || user.RefreshExpiresAt == nil || user.RefreshRevoked {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}
	if time.Now().After(*user.RefreshExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token expired"})
		return
	}

	// rotate refresh
	newRT, err := utils.NewOpaqueToken(32)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rotate refresh token"})
		return
	}
	rotatedUser, err := h.users.RotateRefresh(old, newRT, time.Now().Add(refreshTokenTTL))
	if err != nil || rotatedUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	accessClaims := &middleware.Claims{
		UserID: rotatedUser.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
		},
	}
	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString(middleware.JWTKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessTokenString,
		"refresh_token": newRT, // возвращаем новый (ротация)
	})
}

// @Summary      Регистрация: отправка кода подтверждения
// @Description  Создаёт неактивный аккаунт и шлёт четырёхзначный код на почту
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        register  body      models.RegisterRequest  true  "Данные регистрации"
// @Success      200       {object}  map[string]string
// @Failure      400       {object}  map[string]string
// @Failure      409       {object}  map[string]string
// @Failure      502       {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.registration.Register(middleware.SessionToken(c), &req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Код подтверждения отправлен на вашу почту."})
	case errors.Is(err, services.ErrAlreadyRegistered):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPasswordMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDeliveryFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		log.Printf("[auth][register] err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось выполнить регистрацию"})
	}
}

// @Summary      Регистрация: подтверждение кода
// @Description  Сверяет код, активирует аккаунт и выдаёт токены
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /auth/register/confirm [post]
func (h *AuthHandler) ConfirmRegistration(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.registration.Confirm(middleware.SessionToken(c), strings.TrimSpace(req.Code))
	if err != nil {
		if errors.Is(err, services.ErrInvalidOrExpired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[auth][confirm] err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось подтвердить регистрацию"})
		return
	}

	access, refresh, err := h.issueTokens(user.ID)
	if err != nil {
		log.Printf("[auth][confirm] issue tokens failed userID=%d: err=%v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Вы успешно вошли в систему.",
		"user":    user,
		"tokens": gin.H{
			"access_token":  access,
			"refresh_token": refresh,
		},
	})
}

// @Summary      Регистрация: повторная отправка кода
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /auth/register/resend [post]
func (h *AuthHandler) ResendCode(c *gin.Context) {
	err := h.registration.Resend(middleware.SessionToken(c))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Код подтверждения отправлен повторно."})
	case errors.Is(err, services.ErrInvalidOrExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Нет незавершённой регистрации"})
	case errors.Is(err, services.ErrDeliveryFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		log.Printf("[auth][resend] err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось отправить код"})
	}
}

// @Summary      Регистрация: отказ от подтверждения
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/register/abort [post]
func (h *AuthHandler) AbortRegistration(c *gin.Context) {
	if err := h.registration.Abort(middleware.SessionToken(c)); err != nil {
		log.Printf("[auth][abort] err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось прервать регистрацию"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Регистрация прервана."})
}
