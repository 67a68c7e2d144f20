package auth

import (
	"fmt"

	"github.com/jvillada/almacen-api/internal/application/dto"
	"github.com/jvillada/almacen-api/internal/domain"
	"github.com/jvillada/almacen-api/internal/domain/repository"
	"github.com/jvillada/almacen-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen longitud mínima de contraseña nueva.
const MinPasswordLen = 6

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y cambio de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password contra el hash bcrypt, genera el JWT y
// retorna token + rol. Usuario desconocido y contraseña incorrecta devuelven
// errores distinguibles; el handler los mapea ambos a 400.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Role: user.Role}, nil
}

// ChangePassword valida la contraseña actual del usuario autenticado y
// persiste el nuevo hash bcrypt.
func (uc *AuthUseCase) ChangePassword(userID string, in dto.ChangePasswordRequest) error {
	if in.CurrentPassword == "" || in.NewPassword == "" {
		return fmt.Errorf("%w: contraseña actual y nueva son requeridas", domain.ErrInvalidInput)
	}
	if len(in.NewPassword) < MinPasswordLen {
		return fmt.Errorf("%w: la nueva contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLen)
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return fmt.Errorf("%w: contraseña actual incorrecta", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdatePassword(user.ID, string(hash))
}
