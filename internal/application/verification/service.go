// Package verification implements the email ownership check that gates
// signup: a one-time code is issued per email, delivered out of band, and
// consumed exactly once.
package verification

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/daeseda/laundry-api/internal/domain"
	"github.com/daeseda/laundry-api/internal/infrastructure/smtp"
)

// CodeStore holds at most one pending code per email. Confirm must resolve
// compare-and-delete atomically so two concurrent confirms cannot both
// consume the same code.
type CodeStore interface {
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	Confirm(ctx context.Context, email, submitted string) error
}

type userDirectory interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type Service interface {
	// RequestCode issues a fresh code for email and returns it. A previous
	// pending code for the same email is overwritten — last request wins.
	RequestCode(ctx context.Context, email string) (string, error)
	// ConfirmCode validates a submitted code. On a match the code is consumed
	// and a replay fails with domain.ErrNotFound. A mismatch leaves the code
	// pending until the attempt budget runs out.
	ConfirmCode(ctx context.Context, email, code string) error
}

type service struct {
	codes   CodeStore
	users   userDirectory
	mailer  smtp.Mailer
	codeTTL time.Duration
}

func NewService(codes CodeStore, users userDirectory, mailer smtp.Mailer, codeTTL time.Duration) Service {
	return &service{codes: codes, users: users, mailer: mailer, codeTTL: codeTTL}
}

func (s *service) RequestCode(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("email required: %w", domain.ErrBadRequest)
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return "", fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}

	code, err := newCode()
	if err != nil {
		return "", err
	}
	if err := s.codes.Put(ctx, email, code, s.codeTTL); err != nil {
		return "", err
	}

	// The code is also echoed in the response, so mail delivery is best
	// effort rather than a hard failure.
	if err := s.mailer.SendEmail(email, "대세다 이메일 인증", "인증코드: "+code); err != nil {
		slog.Warn("failed to send verification email", "email", email, "err", err)
	}
	return code, nil
}

func (s *service) ConfirmCode(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		return fmt.Errorf("email and code required: %w", domain.ErrBadRequest)
	}
	return s.codes.Confirm(ctx, email, code)
}

func newCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
