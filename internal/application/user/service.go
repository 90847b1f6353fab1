package user

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/daeseda/laundry-api/internal/domain"
	"github.com/daeseda/laundry-api/internal/pkg/id"
	"github.com/daeseda/laundry-api/internal/pkg/page"
	"golang.org/x/crypto/bcrypt"
)

// DynamoDB attribute names accepted by UpdateField.
const (
	FieldName     = "name"
	FieldNickname = "nickname"
	FieldPhone    = "phone"
)

type Service interface {
	Signup(ctx context.Context, req domain.SignupRequest) (*domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	// UpdateField patches one profile field. Returns domain.ErrNotFound when
	// the user does not exist and domain.ErrBadRequest for a field outside
	// the whitelist.
	UpdateField(ctx context.Context, userID, field, value string) error
	Delete(ctx context.Context, userID string) error
	List(ctx context.Context, q page.Query) (page.Result[domain.User], error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByNickname(ctx context.Context, nickname string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, userID string) error
	ScanActive(ctx context.Context) ([]domain.User, error)
}

type sessionStore interface {
	DisableByUser(ctx context.Context, userID string) error
}

type service struct {
	repo        userStore
	sessionRepo sessionStore
}

func NewService(repo userStore, sessionRepo sessionStore) Service {
	return &service{repo: repo, sessionRepo: sessionRepo}
}

func (s *service) Signup(ctx context.Context, req domain.SignupRequest) (*domain.User, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	if _, err := s.repo.GetByNickname(ctx, req.Nickname); err == nil {
		return nil, fmt.Errorf("nickname already taken: %w", domain.ErrConflict)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Name:         req.Name,
		Nickname:     req.Nickname,
		Phone:        req.Phone,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Enable:       1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}

func (s *service) UpdateField(ctx context.Context, userID, field, value string) error {
	switch field {
	case FieldName, FieldNickname, FieldPhone:
	default:
		return fmt.Errorf("field %q not updatable: %w", field, domain.ErrBadRequest)
	}
	if field == FieldNickname {
		if other, err := s.repo.GetByNickname(ctx, value); err == nil && other.UserID != userID {
			return fmt.Errorf("nickname already taken: %w", domain.ErrConflict)
		}
	}
	return s.repo.Update(ctx, userID, map[string]interface{}{field: value})
}

func (s *service) Delete(ctx context.Context, userID string) error {
	if err := s.repo.SoftDelete(ctx, userID); err != nil {
		return err
	}
	return s.sessionRepo.DisableByUser(ctx, userID)
}

// List scans active users, applies the keyword filter, orders newest first
// and slices out the requested page.
func (s *service) List(ctx context.Context, q page.Query) (page.Result[domain.User], error) {
	users, err := s.repo.ScanActive(ctx)
	if err != nil {
		return page.Result[domain.User]{}, err
	}
	users = filterUsers(users, q.Type, q.Keyword)
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return page.Paginate(users, q), nil
}

// filterUsers keeps users matching keyword. Search types follow the original
// form: "n" matches name or nickname, "e" matches email.
func filterUsers(users []domain.User, searchType, keyword string) []domain.User {
	if keyword == "" {
		return users
	}
	kw := strings.ToLower(keyword)
	out := users[:0]
	for _, u := range users {
		var hit bool
		switch searchType {
		case "e":
			hit = strings.Contains(strings.ToLower(u.Email), kw)
		default:
			hit = strings.Contains(strings.ToLower(u.Name), kw) ||
				strings.Contains(strings.ToLower(u.Nickname), kw)
		}
		if hit {
			out = append(out, u)
		}
	}
	return out
}
