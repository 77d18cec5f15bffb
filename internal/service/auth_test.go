package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"cestas/internal/database/memstore"
	"cestas/internal/models"
	"cestas/internal/service"
)

const testSecret = "test-secret"

func TestAuth_LoginIssuesAdminToken(t *testing.T) {
	store := memstore.New()
	svc := service.NewAuthService(store, testSecret, time.Hour)

	created, err := svc.EnsureAdmin(context.Background(), "Gerencia@Fazenda.com", "senha-forte")
	require.NoError(t, err)
	require.True(t, created)

	created, err = svc.EnsureAdmin(context.Background(), "gerencia@fazenda.com", "outra-senha")
	require.NoError(t, err)
	require.False(t, created)

	result, err := svc.Login(context.Background(), service.LoginInput{Email: " gerencia@fazenda.com ", Password: "senha-forte"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(result.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, claims["role"])
	require.Equal(t, "gerencia@fazenda.com", claims["email"])
}

func TestAuth_LoginRejectsBadCredentials(t *testing.T) {
	store := memstore.New()
	svc := service.NewAuthService(store, testSecret, time.Hour)
	_, err := svc.CreateAdmin(context.Background(), service.CreateAdminInput{Email: "a@fazenda.com", Password: "senha-forte"})
	require.NoError(t, err)

	var unauthorized *service.UnauthorizedError
	_, err = svc.Login(context.Background(), service.LoginInput{Email: "a@fazenda.com", Password: "errada"})
	require.True(t, errors.As(err, &unauthorized))
	_, err = svc.Login(context.Background(), service.LoginInput{Email: "b@fazenda.com", Password: "senha-forte"})
	require.True(t, errors.As(err, &unauthorized))

	_, err = svc.Login(context.Background(), service.LoginInput{Email: "not-an-email", Password: "x"})
	requireValidation(t, err)
}

func TestAuth_CreateAdmin(t *testing.T) {
	store := memstore.New()
	svc := service.NewAuthService(store, testSecret, time.Hour)

	_, err := svc.CreateAdmin(context.Background(), service.CreateAdminInput{Email: "a@fazenda.com", Password: "curta"})
	requireValidation(t, err)

	admin, err := svc.CreateAdmin(context.Background(), service.CreateAdminInput{Email: "a@fazenda.com", Password: "senha-forte"})
	require.NoError(t, err)
	require.NotEqual(t, "senha-forte", admin.PasswordHash)

	_, err = svc.CreateAdmin(context.Background(), service.CreateAdminInput{Email: "A@fazenda.com", Password: "senha-forte"})
	requireValidation(t, err)
}
