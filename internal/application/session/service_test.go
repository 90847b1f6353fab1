package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/daeseda/laundry-api/internal/domain"
)

// --- mocks ---

type mockSessionStore struct{ mock.Mock }

func (m *mockSessionStore) Put(ctx context.Context, s *domain.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSessionStore) GetByRefreshToken(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if s, _ := args.Get(0).(*domain.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionStore) RotateRefreshToken(ctx context.Context, sessionID, newToken string, newExpiry int64) error {
	return m.Called(ctx, sessionID, newToken, newExpiry).Error(0)
}

func (m *mockSessionStore) Update(ctx context.Context, sessionID string, updates map[string]interface{}) error {
	return m.Called(ctx, sessionID, updates).Error(0)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSigner struct{ mock.Mock }

func (m *mockSigner) Sign(userID, role, sessionID string) (string, error) {
	args := m.Called(userID, role, sessionID)
	return args.String(0), args.Error(1)
}

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		UserID:       "u1",
		Email:        "wash@daeseda.kr",
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Enable:       1,
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := new(mockUserStore)
	users.On("GetByEmail", mock.Anything, "ghost@daeseda.kr").
		Return(nil, fmt.Errorf("not found: %w", domain.ErrNotFound))

	svc := NewService(new(mockSessionStore), users, new(mockSigner), time.Hour)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@daeseda.kr", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(mockUserStore)
	users.On("GetByEmail", mock.Anything, "wash@daeseda.kr").Return(activeUser(t, "correct"), nil)

	svc := NewService(new(mockSessionStore), users, new(mockSigner), time.Hour)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "wash@daeseda.kr", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_DisabledAccount(t *testing.T) {
	u := activeUser(t, "correct")
	u.Enable = 0
	users := new(mockUserStore)
	users.On("GetByEmail", mock.Anything, "wash@daeseda.kr").Return(u, nil)

	svc := NewService(new(mockSessionStore), users, new(mockSigner), time.Hour)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "wash@daeseda.kr", Password: "correct"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_IssuesBearerAndRefreshToken(t *testing.T) {
	users := new(mockUserStore)
	users.On("GetByEmail", mock.Anything, "wash@daeseda.kr").Return(activeUser(t, "correct"), nil)

	sessions := new(mockSessionStore)
	sessions.On("Put", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil)

	signer := new(mockSigner)
	signer.On("Sign", "u1", domain.RoleUser, mock.AnythingOfType("string")).Return("bearer-token", nil)

	svc := NewService(sessions, users, signer, time.Hour)
	result, err := svc.Login(context.Background(), LoginRequest{Email: "wash@daeseda.kr", Password: "correct"})
	require.NoError(t, err)

	assert.Equal(t, "bearer-token", result.Bearer)
	assert.NotEmpty(t, result.RefreshToken)
	assert.True(t, result.Session.Enable)
	assert.Greater(t, result.Session.RefreshExpiresAt, time.Now().Unix())
	sessions.AssertExpectations(t)
}

func TestLogout_DisablesSession(t *testing.T) {
	sessions := new(mockSessionStore)
	sessions.On("Update", mock.Anything, "sess1", map[string]interface{}{"enable": false}).Return(nil)

	svc := NewService(sessions, new(mockUserStore), new(mockSigner), time.Hour)
	require.NoError(t, svc.Logout(context.Background(), "sess1"))
	sessions.AssertExpectations(t)
}

func TestRefresh_UnknownToken(t *testing.T) {
	sessions := new(mockSessionStore)
	sessions.On("GetByRefreshToken", mock.Anything, "bad").
		Return(nil, fmt.Errorf("not found: %w", domain.ErrNotFound))

	svc := NewService(sessions, new(mockUserStore), new(mockSigner), time.Hour)
	_, _, err := svc.Refresh(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	sessions := new(mockSessionStore)
	sessions.On("GetByRefreshToken", mock.Anything, "old").Return(&domain.Session{
		SessionID:        "sess1",
		UserID:           "u1",
		Enable:           true,
		RefreshToken:     "old",
		RefreshExpiresAt: time.Now().Add(-time.Minute).Unix(),
	}, nil)

	svc := NewService(sessions, new(mockUserStore), new(mockSigner), time.Hour)
	_, _, err := svc.Refresh(context.Background(), "old")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh_RotatesToken(t *testing.T) {
	sessions := new(mockSessionStore)
	sessions.On("GetByRefreshToken", mock.Anything, "current").Return(&domain.Session{
		SessionID:        "sess1",
		UserID:           "u1",
		Enable:           true,
		RefreshToken:     "current",
		RefreshExpiresAt: time.Now().Add(time.Hour).Unix(),
	}, nil)
	sessions.On("RotateRefreshToken", mock.Anything, "sess1", mock.AnythingOfType("string"), mock.AnythingOfType("int64")).Return(nil)

	users := new(mockUserStore)
	users.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Role: domain.RoleUser}, nil)

	signer := new(mockSigner)
	signer.On("Sign", "u1", domain.RoleUser, "sess1").Return("fresh-bearer", nil)

	svc := NewService(sessions, users, signer, time.Hour)
	bearer, newToken, err := svc.Refresh(context.Background(), "current")
	require.NoError(t, err)
	assert.Equal(t, "fresh-bearer", bearer)
	assert.NotEmpty(t, newToken)
	assert.NotEqual(t, "current", newToken)
	sessions.AssertExpectations(t)
}
