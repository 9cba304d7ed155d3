package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/gestorventas/deposito-api/internal/application/dto"
	"github.com/gestorventas/deposito-api/internal/application/ports"
	"github.com/gestorventas/deposito-api/internal/domain"
	"github.com/gestorventas/deposito-api/internal/domain/entity"
	"github.com/gestorventas/deposito-api/internal/domain/repository"
	"github.com/gestorventas/deposito-api/pkg/jwt"
	"github.com/gestorventas/deposito-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// maxResetAttempts intentos fallidos permitidos contra un mismo código de recuperación.
const maxResetAttempts = 5

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret            string
	ExpMinutes        int
	RefreshExpMinutes int
	Issuer            string
}

// AuthUseCase casos de uso de autenticación: login, refresh y recuperación de contraseña.
type AuthUseCase struct {
	vendors      repository.VendorRepository
	mailer       ports.Mailer
	jwtCfg       JWTConfig
	resetCodeTTL time.Duration
	log          *logger.Logger
	now          func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth. mailer y log pueden ser nil.
func NewAuthUseCase(vendors repository.VendorRepository, mailer ports.Mailer, jwtCfg JWTConfig, resetCodeTTL time.Duration, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if resetCodeTTL <= 0 {
		resetCodeTTL = 10 * time.Minute
	}
	return &AuthUseCase{vendors: vendors, mailer: mailer, jwtCfg: jwtCfg, resetCodeTTL: resetCodeTTL, log: log, now: time.Now}
}

// Login verifica email/password y emite access + refresh token. El refresh se guarda con su expiración.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	v, err := uc.vendors.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(v.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issueTokens(ctx, v)
}

// Refresh valida el refresh token (firma, tipo, coincidencia con el guardado y expiración) y lo rota.
func (uc *AuthUseCase) Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.TokenResponse, error) {
	if in.RefreshToken == "" {
		return nil, domain.ErrUnauthorized
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, in.RefreshToken)
	if err != nil || !claims.Refresh {
		return nil, domain.ErrUnauthorized
	}
	v, err := uc.vendors.GetByID(ctx, claims.VendorID)
	if err != nil {
		return nil, err
	}
	if v == nil || v.RefreshToken == "" {
		return nil, domain.ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(v.RefreshToken), []byte(in.RefreshToken)) != 1 {
		return nil, domain.ErrUnauthorized
	}
	if v.RefreshTokenExpiry != nil && uc.now().After(*v.RefreshTokenExpiry) {
		v.RefreshToken = ""
		v.RefreshTokenExpiry = nil
		if err := uc.vendors.UpdateTokens(ctx, v); err != nil {
			return nil, err
		}
		return nil, domain.ErrUnauthorized
	}
	return uc.issueTokens(ctx, v)
}

// ForgotPassword genera un código de 6 dígitos y lo envía por correo. No revela si el email existe.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, in dto.ForgotPasswordRequest) error {
	v, err := uc.vendors.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return err
	}
	if v == nil {
		uc.log.Debug().Str("email", in.Email).Msg("recuperación solicitada para email inexistente")
		return nil
	}
	code, err := newResetCode()
	if err != nil {
		return err
	}
	exp := uc.now().Add(uc.resetCodeTTL)
	v.ResetCode = code
	v.ResetCodeExpiry = &exp
	v.ResetAttempts = 0
	if err := uc.vendors.UpdateTokens(ctx, v); err != nil {
		return err
	}
	if uc.mailer != nil {
		body := fmt.Sprintf("<p>Hola %s,</p><p>Tu código de recuperación es <strong>%s</strong>. Caduca en %d minutos.</p>",
			v.Name, code, int(uc.resetCodeTTL.Minutes()))
		if err := uc.mailer.Send(ctx, v.Email, "Recuperación de contraseña", body); err != nil {
			uc.log.Warn().Err(err).Str("vendor_id", v.ID).Msg("no se pudo enviar el código de recuperación")
		}
	}
	return nil
}

// ResetPassword cambia la contraseña si el código coincide y no ha caducado. El código es de un solo uso
// y se anula tras maxResetAttempts intentos fallidos.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	if in.NewPassword == "" {
		return fmt.Errorf("%w: password obligatorio", domain.ErrInvalidInput)
	}
	v, err := uc.vendors.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return err
	}
	if v == nil || v.ResetCode == "" || in.Code == "" {
		return domain.ErrInvalidResetCode
	}
	if v.ResetCodeExpiry == nil || uc.now().After(*v.ResetCodeExpiry) {
		return domain.ErrInvalidResetCode
	}
	if subtle.ConstantTimeCompare([]byte(v.ResetCode), []byte(in.Code)) != 1 {
		return uc.failResetAttempt(ctx, v)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	clearReset(v)
	// Invalida sesiones abiertas.
	v.RefreshToken = ""
	v.RefreshTokenExpiry = nil
	if err := uc.vendors.UpdateTokens(ctx, v); err != nil {
		return err
	}
	v.PasswordHash = string(hash)
	v.UpdatedAt = uc.now()
	return uc.vendors.Update(ctx, v)
}

// failResetAttempt cuenta un intento fallido y anula el código al llegar al límite.
func (uc *AuthUseCase) failResetAttempt(ctx context.Context, v *entity.Vendor) error {
	v.ResetAttempts++
	if v.ResetAttempts >= maxResetAttempts {
		uc.log.Warn().Str("vendor_id", v.ID).Int("attempts", v.ResetAttempts).Msg("código de recuperación anulado por intentos fallidos")
		clearReset(v)
	}
	if err := uc.vendors.UpdateTokens(ctx, v); err != nil {
		return err
	}
	return domain.ErrInvalidResetCode
}

func clearReset(v *entity.Vendor) {
	v.ResetCode = ""
	v.ResetCodeExpiry = nil
	v.ResetAttempts = 0
}

func (uc *AuthUseCase) issueTokens(ctx context.Context, v *entity.Vendor) (*dto.TokenResponse, error) {
	id := jwt.Identity{VendorID: v.ID, Email: v.Email, Name: v.Name, Roles: v.Roles}
	access, err := jwt.GenerateAccess(uc.jwtCfg.Secret, id, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.GenerateRefresh(uc.jwtCfg.Secret, id, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshExpMinutes)
	if err != nil {
		return nil, err
	}
	exp := uc.now().Add(time.Duration(uc.jwtCfg.RefreshExpMinutes) * time.Minute)
	v.RefreshToken = refresh
	v.RefreshTokenExpiry = &exp
	if err := uc.vendors.UpdateTokens(ctx, v); err != nil {
		return nil, err
	}
	return &dto.TokenResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func newResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
