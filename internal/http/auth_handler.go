package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripflux/internal/service"
)

// Mensaje único para forgot-password: idéntico exista o no la cuenta.
const resetSentMsg = "If an account exists, a reset link has been sent"

// AuthHandler mantiene dependencias para endpoints de autenticación.
type AuthHandler struct {
	logger   *zap.Logger
	authServ *service.AuthService
	jwtServ  *service.JWTService
}

// NewAuthHandler crea una instancia de AuthHandler con dependencias necesarias.
func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService, jwtServ *service.JWTService) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		authServ: authServ,
		jwtServ:  jwtServ,
	}
}

// Signup maneja POST /api/auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Please fill all fields"})
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Please fill all fields"})
		return
	}

	user, err := h.authServ.Signup(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists):
			c.JSON(http.StatusBadRequest, gin.H{"msg": "User already exist"})
		case errors.Is(err, service.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Password must be at least 6 characters"})
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Please fill all fields"})
		default:
			h.logger.Error("signup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		}
		return
	}

	token, err := h.jwtServ.Issue(user.ID)
	if err != nil {
		h.logger.Error("jwt issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "User registered successfully.", "token": token})
}

// Login maneja POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Please fill all fields."})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Please fill all fields."})
		return
	}

	user, err := h.authServ.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid credentials."})
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}

	token, err := h.jwtServ.Issue(user.ID)
	if err != nil {
		h.logger.Error("jwt issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Logged in successfully.", "token": token})
}

// Me maneja GET /api/auth. Devuelve el usuario sin el hash de contraseña.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := AuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	user, err := h.authServ.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
			return
		}
		h.logger.Error("auth fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// ForgotPassword maneja POST /api/auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Email is required"})
		return
	}

	if err := h.authServ.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrRateLimited) {
			c.JSON(http.StatusTooManyRequests, gin.H{"msg": "Too many reset requests, try again later"})
			return
		}
		h.logger.Error("forgot password failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": resetSentMsg})
}

// ResetPassword maneja POST /api/auth/reset-password/:token.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Password is required"})
		return
	}

	err := h.authServ.ResetPassword(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Password must be at least 6 characters"})
		case errors.Is(err, service.ErrResetInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Reset link is invalid or expired"})
		default:
			h.logger.Error("reset password failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Password reset successful"})
}
