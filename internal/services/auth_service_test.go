package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/skillforge/backend/internal/auth"
	"github.com/skillforge/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	user        *models.User
	emailExists bool
	err         error
	createErr   error
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 1
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.user == nil {
		return nil, fmt.Errorf("user not found")
	}
	return m.user, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.user == nil {
		return nil, fmt.Errorf("user not found")
	}
	return m.user, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.emailExists, nil
}

// mockUserTokenRepository is a mock implementation of UserTokenRepository
type mockUserTokenRepository struct {
	userToken *models.UserToken
	err       error
	createErr error
	updateErr error
}

func (m *mockUserTokenRepository) Create(ctx context.Context, userToken *models.UserToken) error {
	if m.createErr != nil {
		return m.createErr
	}
	userToken.ID = 1
	return nil
}

func (m *mockUserTokenRepository) GetByToken(ctx context.Context, token string) (*models.UserToken, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.userToken == nil {
		return nil, fmt.Errorf("user token not found")
	}
	return m.userToken, nil
}

func (m *mockUserTokenRepository) UpdateToken(ctx context.Context, oldToken, newToken string, userID int) error {
	return m.updateErr
}

func (m *mockUserTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	return nil
}

func newTestTokenGenerator() *auth.TokenGenerator {
	return auth.NewTokenGenerator("test-secret", time.Minute, time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		req           *models.RegisterRequest
		userRepo      *mockUserRepository
		expectedError bool
		errorContains string
	}{
		{
			name: "successful registration",
			req: &models.RegisterRequest{
				Email:    "Student@Example.com",
				Password: "Password1!",
				City:     "Москва",
			},
			userRepo: &mockUserRepository{},
		},
		{
			name: "invalid email format",
			req: &models.RegisterRequest{
				Email:    "not-an-email",
				Password: "Password1!",
			},
			userRepo:      &mockUserRepository{},
			expectedError: true,
			errorContains: "invalid email format",
		},
		{
			name: "weak password",
			req: &models.RegisterRequest{
				Email:    "student@example.com",
				Password: "short",
			},
			userRepo:      &mockUserRepository{},
			expectedError: true,
			errorContains: "password must be",
		},
		{
			name: "email already exists",
			req: &models.RegisterRequest{
				Email:    "student@example.com",
				Password: "Password1!",
			},
			userRepo:      &mockUserRepository{emailExists: true},
			expectedError: true,
			errorContains: "email already exists",
		},
		{
			name: "repository error on create",
			req: &models.RegisterRequest{
				Email:    "student@example.com",
				Password: "Password1!",
			},
			userRepo:      &mockUserRepository{createErr: errors.New("database error")},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(tt.userRepo, &mockUserTokenRepository{}, newTestTokenGenerator(), zap.NewNop())

			accessToken, refreshToken, err := svc.Register(context.Background(), tt.req)

			if tt.expectedError {
				require.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, accessToken)
			assert.NotEmpty(t, refreshToken)
		})
	}
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	userRepo := &mockUserRepository{}
	svc := NewAuthService(userRepo, &mockUserTokenRepository{}, newTestTokenGenerator(), zap.NewNop())

	_, _, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email:    "  Student@Example.COM  ",
		Password: "Password1!",
	})

	require.NoError(t, err)
}

func TestAuthService_Login(t *testing.T) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("Password1!"), bcrypt.DefaultCost)
	require.NoError(t, err)

	validUser := &models.User{
		ID:           1,
		Email:        "student@example.com",
		PasswordHash: string(passwordHash),
		Role:         models.RoleUser,
	}

	tests := []struct {
		name          string
		req           *models.LoginRequest
		userRepo      *mockUserRepository
		expectedError bool
		errorContains string
	}{
		{
			name: "successful login",
			req: &models.LoginRequest{
				Email:    "student@example.com",
				Password: "Password1!",
			},
			userRepo: &mockUserRepository{user: validUser},
		},
		{
			name: "empty email",
			req: &models.LoginRequest{
				Email:    "   ",
				Password: "Password1!",
			},
			userRepo:      &mockUserRepository{user: validUser},
			expectedError: true,
			errorContains: "email cannot be empty",
		},
		{
			name: "empty password",
			req: &models.LoginRequest{
				Email: "student@example.com",
			},
			userRepo:      &mockUserRepository{user: validUser},
			expectedError: true,
			errorContains: "password cannot be empty",
		},
		{
			name: "unknown user",
			req: &models.LoginRequest{
				Email:    "ghost@example.com",
				Password: "Password1!",
			},
			userRepo:      &mockUserRepository{},
			expectedError: true,
			errorContains: "not found",
		},
		{
			name: "wrong password",
			req: &models.LoginRequest{
				Email:    "student@example.com",
				Password: "WrongPassword1!",
			},
			userRepo:      &mockUserRepository{user: validUser},
			expectedError: true,
			errorContains: "invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(tt.userRepo, &mockUserTokenRepository{}, newTestTokenGenerator(), zap.NewNop())

			accessToken, refreshToken, err := svc.Login(context.Background(), tt.req)

			if tt.expectedError {
				require.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, accessToken)
			assert.NotEmpty(t, refreshToken)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	tokenGenerator := newTestTokenGenerator()
	_, validRefreshToken, err := tokenGenerator.GenerateTokens(1, int(models.RoleUser))
	require.NoError(t, err)

	tests := []struct {
		name          string
		refreshToken  string
		userRepo      *mockUserRepository
		tokenRepo     *mockUserTokenRepository
		expectedError bool
	}{
		{
			name:         "successful refresh",
			refreshToken: validRefreshToken,
			userRepo:     &mockUserRepository{user: &models.User{ID: 1, Role: models.RoleUser}},
			tokenRepo: &mockUserTokenRepository{
				userToken: &models.UserToken{ID: 1, UserID: 1, Token: validRefreshToken},
			},
		},
		{
			name:          "token not stored",
			refreshToken:  validRefreshToken,
			userRepo:      &mockUserRepository{user: &models.User{ID: 1, Role: models.RoleUser}},
			tokenRepo:     &mockUserTokenRepository{},
			expectedError: true,
		},
		{
			name:         "malformed refresh token",
			refreshToken: "not.a.token",
			userRepo:     &mockUserRepository{user: &models.User{ID: 1, Role: models.RoleUser}},
			tokenRepo: &mockUserTokenRepository{
				userToken: &models.UserToken{ID: 1, UserID: 1, Token: "not.a.token"},
			},
			expectedError: true,
		},
		{
			name:         "update token failure",
			refreshToken: validRefreshToken,
			userRepo:     &mockUserRepository{user: &models.User{ID: 1, Role: models.RoleUser}},
			tokenRepo: &mockUserTokenRepository{
				userToken: &models.UserToken{ID: 1, UserID: 1, Token: validRefreshToken},
				updateErr: errors.New("database error"),
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(tt.userRepo, tt.tokenRepo, tokenGenerator, zap.NewNop())

			accessToken, newRefreshToken, err := svc.Refresh(context.Background(), tt.refreshToken)

			if tt.expectedError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, accessToken)
			assert.NotEmpty(t, newRefreshToken)
		})
	}
}
