package user

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
	"github.com/daeseda/laundry-api/internal/pkg/page"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) GetByNickname(ctx context.Context, nickname string) (*domain.User, error) {
	args := m.Called(ctx, nickname)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}

func (m *mockUserStore) SoftDelete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockUserStore) ScanActive(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if users, _ := args.Get(0).([]domain.User); users != nil {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSessionStore struct{ mock.Mock }

func (m *mockSessionStore) DisableByUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func notFoundErr() error {
	return fmt.Errorf("not found: %w", domain.ErrNotFound)
}

var signupReq = domain.SignupRequest{
	Name:     "김세탁",
	Nickname: "washking",
	Phone:    "010-1234-5678",
	Email:    "wash@daeseda.kr",
	Password: "secret-password",
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := new(mockUserStore)
	repo.On("GetByEmail", mock.Anything, signupReq.Email).Return(&domain.User{UserID: "u1"}, nil)

	svc := NewService(repo, new(mockSessionStore))
	_, err := svc.Signup(context.Background(), signupReq)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSignup_DuplicateNickname(t *testing.T) {
	repo := new(mockUserStore)
	repo.On("GetByEmail", mock.Anything, signupReq.Email).Return(nil, notFoundErr())
	repo.On("GetByNickname", mock.Anything, signupReq.Nickname).Return(&domain.User{UserID: "u2"}, nil)

	svc := NewService(repo, new(mockSessionStore))
	_, err := svc.Signup(context.Background(), signupReq)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSignup_CreatesActiveUserWithHashedPassword(t *testing.T) {
	repo := new(mockUserStore)
	repo.On("GetByEmail", mock.Anything, signupReq.Email).Return(nil, notFoundErr())
	repo.On("GetByNickname", mock.Anything, signupReq.Nickname).Return(nil, notFoundErr())
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	svc := NewService(repo, new(mockSessionStore))
	u, err := svc.Signup(context.Background(), signupReq)
	require.NoError(t, err)

	assert.NotEmpty(t, u.UserID)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.Equal(t, 1, u.Enable)
	assert.NotEqual(t, signupReq.Password, u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(signupReq.Password)))
	repo.AssertExpectations(t)
}

func TestUpdateField_RejectsUnknownField(t *testing.T) {
	svc := NewService(new(mockUserStore), new(mockSessionStore))
	err := svc.UpdateField(context.Background(), "u1", "role", "admin")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestUpdateField_NicknameTaken(t *testing.T) {
	repo := new(mockUserStore)
	repo.On("GetByNickname", mock.Anything, "taken").Return(&domain.User{UserID: "other"}, nil)

	svc := NewService(repo, new(mockSessionStore))
	err := svc.UpdateField(context.Background(), "u1", FieldNickname, "taken")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateField_NicknameKeptBySameUser(t *testing.T) {
	repo := new(mockUserStore)
	repo.On("GetByNickname", mock.Anything, "mine").Return(&domain.User{UserID: "u1"}, nil)
	repo.On("Update", mock.Anything, "u1", map[string]interface{}{FieldNickname: "mine"}).Return(nil)

	svc := NewService(repo, new(mockSessionStore))
	assert.NoError(t, svc.UpdateField(context.Background(), "u1", FieldNickname, "mine"))
	repo.AssertExpectations(t)
}

func TestUpdateField_MissingUser(t *testing.T) {
	repo := new(mockUserStore)
	repo.On("Update", mock.Anything, "ghost", mock.Anything).Return(notFoundErr())

	svc := NewService(repo, new(mockSessionStore))
	err := svc.UpdateField(context.Background(), "ghost", FieldName, "새이름")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_DisablesSessions(t *testing.T) {
	repo := new(mockUserStore)
	sessions := new(mockSessionStore)
	repo.On("SoftDelete", mock.Anything, "u1").Return(nil)
	sessions.On("DisableByUser", mock.Anything, "u1").Return(nil)

	svc := NewService(repo, sessions)
	require.NoError(t, svc.Delete(context.Background(), "u1"))
	repo.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestDelete_MissingUser(t *testing.T) {
	repo := new(mockUserStore)
	repo.On("SoftDelete", mock.Anything, "ghost").Return(notFoundErr())

	svc := NewService(repo, new(mockSessionStore))
	assert.ErrorIs(t, svc.Delete(context.Background(), "ghost"), domain.ErrNotFound)
}

func TestList_FiltersAndPaginates(t *testing.T) {
	base := time.Now().UTC()
	users := []domain.User{
		{UserID: "u1", Name: "김철수", Nickname: "chul", Email: "chul@a.com", CreatedAt: base.Add(1 * time.Minute)},
		{UserID: "u2", Name: "박영희", Nickname: "young", Email: "young@a.com", CreatedAt: base.Add(2 * time.Minute)},
		{UserID: "u3", Name: "김영수", Nickname: "soo", Email: "soo@b.com", CreatedAt: base.Add(3 * time.Minute)},
	}
	repo := new(mockUserStore)
	repo.On("ScanActive", mock.Anything).Return(users, nil)

	svc := NewService(repo, new(mockSessionStore))
	result, err := svc.List(context.Background(), page.Query{Page: 1, PerPage: 10, PerPagination: 5, Type: "n", Keyword: "김"})
	require.NoError(t, err)

	require.Len(t, result.Data, 2)
	// Newest first.
	assert.Equal(t, "u3", result.Data[0].UserID)
	assert.Equal(t, "u1", result.Data[1].UserID)
}

func TestList_SearchByEmail(t *testing.T) {
	users := []domain.User{
		{UserID: "u1", Email: "one@daeseda.kr"},
		{UserID: "u2", Email: "two@gmail.com"},
	}
	repo := new(mockUserStore)
	repo.On("ScanActive", mock.Anything).Return(users, nil)

	svc := NewService(repo, new(mockSessionStore))
	result, err := svc.List(context.Background(), page.Query{Page: 1, PerPage: 10, PerPagination: 5, Type: "e", Keyword: "daeseda"})
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "u1", result.Data[0].UserID)
}
