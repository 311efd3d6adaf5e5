package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"tripflux/internal/domain"
	"tripflux/internal/email"
	"tripflux/internal/repository"
)

// AuthService coordina registro, login y el ciclo de reset de contraseña.
type AuthService struct {
	logger       *zap.Logger
	users        repository.UserRepository
	emailSender  email.Sender
	resetLimiter RateLimiter
	resetTTL     time.Duration
	appBaseURL   string
}

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password too short")
	ErrRateLimited        = errors.New("rate limited")
	ErrResetInvalid       = errors.New("reset token invalid or expired")
)

const defaultResetTTL = 15 * time.Minute

func NewAuthService(logger *zap.Logger, users repository.UserRepository, emailSender email.Sender, resetLimiter RateLimiter, resetTTL time.Duration, appBaseURL string) *AuthService {
	if resetTTL <= 0 {
		resetTTL = defaultResetTTL
	}
	if resetLimiter == nil {
		resetLimiter = NewRateLimiter(10*time.Minute, 3)
	}
	return &AuthService{
		logger:       logger,
		users:        users,
		emailSender:  emailSender,
		resetLimiter: resetLimiter,
		resetTTL:     resetTTL,
		appBaseURL:   strings.TrimRight(appBaseURL, "/"),
	}
}

// Signup crea un usuario nuevo con la contraseña hasheada.
func (s *AuthService) Signup(ctx context.Context, username, emailAddr, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	emailAddr = normalizeEmail(emailAddr)
	if username == "" || emailAddr == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if len(password) < MinPasswordLength {
		return domain.User{}, ErrWeakPassword
	}

	if _, err := s.users.GetByEmail(ctx, emailAddr); err == nil {
		return domain.User{}, ErrUserExists
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        emailAddr,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, ErrUserExists
		}
		return domain.User{}, err
	}
	return user, nil
}

// Authenticate valida credenciales. Email desconocido y contraseña
// incorrecta devuelven el mismo error.
func (s *AuthService) Authenticate(ctx context.Context, emailAddr, password string) (domain.User, error) {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if user.PasswordHash == "" || !VerifyPassword(password, user.PasswordHash) {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser devuelve el usuario autenticado por id.
func (s *AuthService) GetUser(ctx context.Context, id string) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// RequestPasswordReset registra un token de reset y despacha el enlace.
// Para un email inexistente no hace nada y no devuelve error, de modo que
// la respuesta externa sea idéntica en ambos casos.
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" {
		return ErrInvalidCredentials
	}
	if s.resetLimiter != nil && !s.resetLimiter.Allow(emailAddr) {
		return ErrRateLimited
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	rawSecret, tokenHash, err := generateResetSecret()
	if err != nil {
		return err
	}
	expires := time.Now().UTC().Add(s.resetTTL)

	// Un solo token de reset vigente por usuario: el nuevo pisa al anterior.
	if err := s.users.SetResetToken(ctx, user.ID, tokenHash, expires); err != nil {
		return err
	}

	resetURL := s.appBaseURL + "/reset-password/" + rawSecret
	s.dispatchResetLink(user.Email, resetURL, expires)
	return nil
}

// ResetPassword consume un token de reset y reescribe la contraseña.
// Token incorrecto, expirado o ya usado producen el mismo error.
func (s *AuthService) ResetPassword(ctx context.Context, rawSecret, newPassword string) error {
	rawSecret = strings.TrimSpace(rawSecret)
	if rawSecret == "" {
		return ErrResetInvalid
	}
	if len(newPassword) < MinPasswordLength {
		return ErrWeakPassword
	}

	tokenHash := hashResetSecret(rawSecret)
	newHash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	ok, err := s.users.ConsumeReset(ctx, tokenHash, newHash, time.Now().UTC())
	if err != nil {
		return err
	}
	if !ok {
		return ErrResetInvalid
	}
	return nil
}

// dispatchResetLink envía el correo fuera del camino de la respuesta; un
// fallo de entrega solo se registra.
func (s *AuthService) dispatchResetLink(toEmail, resetURL string, expires time.Time) {
	if s.emailSender == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.emailSender.SendPasswordReset(ctx, toEmail, resetURL, expires); err != nil {
			if s.logger != nil {
				s.logger.Warn("send reset link failed", zap.Error(err), zap.String("email", toEmail))
			}
		}
	}()
}

func generateResetSecret() (string, string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw := hex.EncodeToString(buf)
	return raw, hashResetSecret(raw), nil
}

// hashResetSecret es determinista: el hash sirve como clave de búsqueda.
func hashResetSecret(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
