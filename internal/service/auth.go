package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"cestas/internal/models"
)

const (
	invalidCredentialsMsg = "E-mail ou senha inválidos."
	adminInputMsg         = "E-mail válido e senha com ao menos 8 caracteres são obrigatórios."
	adminExistsMsg        = "Já existe um administrador com este e-mail."
)

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateAdminInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResult struct {
	Token     string         `json:"token"`
	ExpiresAt models.Instant `json:"expiresAt"`
}

// AuthService authenticates back-office users and issues their tokens.
type AuthService struct {
	admins    AdminStore
	jwtSecret []byte
	accessTTL time.Duration
	Now       func() time.Time
}

func NewAuthService(admins AdminStore, jwtSecret string, accessTTL time.Duration) *AuthService {
	return &AuthService{admins: admins, jwtSecret: []byte(jwtSecret), accessTTL: accessTTL, Now: time.Now}
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := checkInput(input, invalidCredentialsMsg); err != nil {
		return LoginResult{}, err
	}
	if len(s.jwtSecret) == 0 {
		return LoginResult{}, internal("login", errors.New("jwt secret not configured"))
	}

	admin, err := s.admins.FindAdminByEmail(ctx, input.Email)
	if errors.Is(err, models.ErrNotFound) {
		return LoginResult{}, &UnauthorizedError{Message: invalidCredentialsMsg}
	}
	if err != nil {
		return LoginResult{}, internal("find admin", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)); err != nil {
		return LoginResult{}, &UnauthorizedError{Message: invalidCredentialsMsg}
	}

	now := s.Now()
	expiresAt := now.Add(s.accessTTL)
	claims := jwt.MapClaims{
		"sub":   admin.ID,
		"role":  models.RoleAdmin,
		"email": admin.Email,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return LoginResult{}, internal("sign token", err)
	}
	return LoginResult{Token: signed, ExpiresAt: models.NewInstant(expiresAt)}, nil
}

func (s *AuthService) CreateAdmin(ctx context.Context, input CreateAdminInput) (models.Admin, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := checkInput(input, adminInputMsg); err != nil {
		return models.Admin{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Admin{}, internal("hash password", err)
	}

	admin := models.Admin{
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		CreatedAt:    models.NewInstant(s.Now()),
	}
	err = s.admins.InsertAdmin(ctx, &admin)
	if errors.Is(err, models.ErrDuplicateKey) {
		return models.Admin{}, invalid(adminExistsMsg, "email already registered")
	}
	if err != nil {
		return models.Admin{}, internal("create admin", err)
	}
	return admin, nil
}

// EnsureAdmin creates the bootstrap administrator unless one with that e-mail
// already exists. It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := s.admins.FindAdminByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return false, internal("find admin", err)
	}
	if _, err := s.CreateAdmin(ctx, CreateAdminInput{Email: email, Password: password}); err != nil {
		return false, fmt.Errorf("ensure admin %s: %w", email, err)
	}
	return true, nil
}
