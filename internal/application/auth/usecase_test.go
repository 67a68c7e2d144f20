package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jvillada/almacen-api/internal/application/auth"
	"github.com/jvillada/almacen-api/internal/application/dto"
	"github.com/jvillada/almacen-api/internal/domain"
	"github.com/jvillada/almacen-api/internal/domain/entity"
	pkgjwt "github.com/jvillada/almacen-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake UserRepository en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memUsers struct {
	byID map[string]*entity.User
}

func (r *memUsers) Create(u *entity.User) error { r.byID[u.ID] = u; return nil }

func (r *memUsers) GetByID(id string) (*entity.User, error) { return r.byID[id], nil }

func (r *memUsers) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUsers) UpdatePassword(id, passwordHash string) error {
	r.byID[id].PasswordHash = passwordHash
	return nil
}

func newAuthFixture(t *testing.T) (*auth.AuthUseCase, *memUsers) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreta123"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &memUsers{byID: map[string]*entity.User{
		"user-1": {ID: "user-1", Email: "ana@almacen.test", PasswordHash: string(hash), Role: entity.RoleOperario},
	}}
	uc := auth.NewAuthUseCase(users, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "almacen-api-test",
	})
	return uc, users
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidas_EmiteToken(t *testing.T) {
	uc, _ := newAuthFixture(t)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@almacen.test", Password: "secreta123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOperario, out.Role)

	userID, email, role, err := pkgjwt.Parse("test-secret", out.Token)
	require.NoError(t, err, "el token emitido debe ser verificable")
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "ana@almacen.test", email)
	assert.Equal(t, entity.RoleOperario, role)
}

func TestLogin_UsuarioDesconocido(t *testing.T) {
	uc, _ := newAuthFixture(t)
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@almacen.test", Password: "lo-que-sea"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, _ := newAuthFixture(t)
	_, err := uc.Login(dto.LoginRequest{Email: "ana@almacen.test", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ChangePassword
// ──────────────────────────────────────────────────────────────────────────────

func TestChangePassword_Flujo(t *testing.T) {
	uc, users := newAuthFixture(t)

	err := uc.ChangePassword("user-1", dto.ChangePasswordRequest{
		CurrentPassword: "secreta123",
		NewPassword:     "nueva-secreta",
	})
	require.NoError(t, err)

	// El hash persistido debe corresponder a la nueva contraseña.
	updated := users.byID["user-1"]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("nueva-secreta")))

	_, err = uc.Login(dto.LoginRequest{Email: "ana@almacen.test", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "la contraseña anterior deja de servir")
}

func TestChangePassword_ActualIncorrecta(t *testing.T) {
	uc, _ := newAuthFixture(t)
	err := uc.ChangePassword("user-1", dto.ChangePasswordRequest{
		CurrentPassword: "incorrecta",
		NewPassword:     "nueva-secreta",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChangePassword_NuevaMuyCorta(t *testing.T) {
	uc, _ := newAuthFixture(t)
	err := uc.ChangePassword("user-1", dto.ChangePasswordRequest{
		CurrentPassword: "secreta123",
		NewPassword:     "abc",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChangePassword_UsuarioDesconocido(t *testing.T) {
	uc, _ := newAuthFixture(t)
	err := uc.ChangePassword("user-fantasma", dto.ChangePasswordRequest{
		CurrentPassword: "secreta123",
		NewPassword:     "nueva-secreta",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
