package auth_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/seed"
	pkgjwt "github.com/jhoicas/Tienda-api/pkg/jwt"
)

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	s := memory.NewStore(memory.Options{})
	require.NoError(t, seed.Load(context.Background(), seed.Targets{
		Users:      memory.NewUserRepository(s),
		Categories: memory.NewCategoryRepository(s),
		Suppliers:  memory.NewSupplierRepository(s),
		Products:   memory.NewProductRepository(s),
	}, "clave-demo", zerolog.Nop()))
	return auth.NewAuthUseCase(memory.NewUserRepository(s), auth.JWTConfig{Secret: "s3cret", ExpMinutes: 10, Issuer: "tienda-test"})
}

func TestLogin_OK(t *testing.T) {
	uc := newAuth(t)
	res, err := uc.Login(context.Background(), dto.LoginRequest{Username: "cashier", Password: "clave-demo"})
	require.NoError(t, err)
	assert.Equal(t, "u2", res.User.ID)
	assert.Equal(t, entity.RoleCashier, res.User.Role)

	claims, err := pkgjwt.Parse("s3cret", res.Token)
	require.NoError(t, err)
	assert.Equal(t, "u2", claims.UserID)
	assert.Equal(t, entity.RoleCashier, claims.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuth(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "cashier", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "clave-demo"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
