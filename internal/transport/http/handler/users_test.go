package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/daeseda/laundry-api/internal/domain"
	jwtinfra "github.com/daeseda/laundry-api/internal/infrastructure/jwt"
	"github.com/daeseda/laundry-api/internal/pkg/page"
	"github.com/daeseda/laundry-api/internal/transport/http/middleware"
)

// --- mock ---

type mockUserSvc struct{ mock.Mock }

func (m *mockUserSvc) Signup(ctx context.Context, req domain.SignupRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserSvc) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserSvc) UpdateField(ctx context.Context, userID, field, value string) error {
	return m.Called(ctx, userID, field, value).Error(0)
}

func (m *mockUserSvc) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockUserSvc) List(ctx context.Context, q page.Query) (page.Result[domain.User], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(page.Result[domain.User]), args.Error(1)
}

// --- helpers ---

func authedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	claims := &jwtinfra.Claims{UserID: "u1", Role: domain.RoleUser, SessionID: "s1"}
	return req.WithContext(middleware.WithClaims(req.Context(), claims))
}

var signupBody = []byte(`{
	"userName": "김세탁",
	"userNickname": "washking",
	"userPhone": "010-1234-5678",
	"userEmail": "wash@daeseda.kr",
	"userPassword": "secret-password"
}`)

func TestSignupForm_ListsFields(t *testing.T) {
	h := NewUserHandler(new(mockUserSvc))

	rr := httptest.NewRecorder()
	h.SignupForm(rr, httptest.NewRequest(http.MethodGet, "/users/signup", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string][]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp["fields"], "userEmail")
	assert.Contains(t, resp["fields"], "userPassword")
}

func TestSignup_Created(t *testing.T) {
	svc := new(mockUserSvc)
	svc.On("Signup", mock.Anything, mock.AnythingOfType("domain.SignupRequest")).
		Return(&domain.User{UserID: "u1", Email: "wash@daeseda.kr"}, nil)

	h := NewUserHandler(svc)
	rr := httptest.NewRecorder()
	h.Signup(rr, httptest.NewRequest(http.MethodPost, "/users/signup", bytes.NewReader(signupBody)))

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc := new(mockUserSvc)
	svc.On("Signup", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("email already registered: %w", domain.ErrConflict))

	h := NewUserHandler(svc)
	rr := httptest.NewRecorder()
	h.Signup(rr, httptest.NewRequest(http.MethodPost, "/users/signup", bytes.NewReader(signupBody)))

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestSignup_InvalidBody(t *testing.T) {
	h := NewUserHandler(new(mockUserSvc))

	rr := httptest.NewRecorder()
	h.Signup(rr, httptest.NewRequest(http.MethodPost, "/users/signup", bytes.NewReader([]byte("{not json"))))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSignup_ValidationFailure(t *testing.T) {
	h := NewUserHandler(new(mockUserSvc))

	// Password below minimum length.
	body := []byte(`{"userName":"a","userNickname":"b","userPhone":"c","userEmail":"a@b.com","userPassword":"short"}`)
	rr := httptest.NewRecorder()
	h.Signup(rr, httptest.NewRequest(http.MethodPost, "/users/signup", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMyInfo_ReturnsCallersProfile(t *testing.T) {
	svc := new(mockUserSvc)
	svc.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Nickname: "washking"}, nil)

	h := NewUserHandler(svc)
	rr := httptest.NewRecorder()
	h.MyInfo(rr, authedRequest(http.MethodGet, "/users/myInfo", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var u domain.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &u))
	assert.Equal(t, "washking", u.Nickname)
}

func TestMyInfo_NoClaims(t *testing.T) {
	h := NewUserHandler(new(mockUserSvc))

	rr := httptest.NewRecorder()
	h.MyInfo(rr, httptest.NewRequest(http.MethodGet, "/users/myInfo", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUpdateField_PatchesNickname(t *testing.T) {
	svc := new(mockUserSvc)
	svc.On("UpdateField", mock.Anything, "u1", "nickname", "newnick").Return(nil)

	h := NewUserHandler(svc)
	rr := httptest.NewRecorder()
	h.UpdateField("nickname")(rr, authedRequest(http.MethodPatch, "/users/nickname", []byte(`{"value":"newnick"}`)))

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestUpdateField_MissingUser(t *testing.T) {
	svc := new(mockUserSvc)
	svc.On("UpdateField", mock.Anything, "u1", "name", "이름").
		Return(fmt.Errorf("not found: %w", domain.ErrNotFound))

	h := NewUserHandler(svc)
	rr := httptest.NewRecorder()
	h.UpdateField("name")(rr, authedRequest(http.MethodPatch, "/users/name", []byte(`{"value":"이름"}`)))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDelete_NoContent(t *testing.T) {
	svc := new(mockUserSvc)
	svc.On("Delete", mock.Anything, "u1").Return(nil)

	h := NewUserHandler(svc)
	rr := httptest.NewRecorder()
	h.Delete(rr, authedRequest(http.MethodDelete, "/users/delete", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	svc.AssertExpectations(t)
}
