package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/daeseda/laundry-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Key layout, kept compatible with the original deployment:
// EMAIL_CODE<email>     -> pending code (with TTL)
// EMAIL_CODE_TRY<email> -> failed-attempt counter (same TTL window)
const (
	codeKeyPrefix    = "EMAIL_CODE"
	attemptKeyPrefix = "EMAIL_CODE_TRY"
)

// confirmScript compares the submitted code against the stored one and
// resolves the outcome server-side, so concurrent confirms for the same email
// cannot both consume the code.
//
// KEYS[1] = code key, KEYS[2] = attempt key
// ARGV[1] = submitted code, ARGV[2] = max attempts
var confirmScript = redis.NewScript(`
local stored = redis.call('GET', KEYS[1])
if not stored then
  return 'missing'
end
if stored == ARGV[1] then
  redis.call('DEL', KEYS[1], KEYS[2])
  return 'ok'
end
local tries = redis.call('INCR', KEYS[2])
local ttl = redis.call('PTTL', KEYS[1])
if ttl > 0 then
  redis.call('PEXPIRE', KEYS[2], ttl)
end
if tries >= tonumber(ARGV[2]) then
  redis.call('DEL', KEYS[1], KEYS[2])
  return 'exhausted'
end
return 'mismatch'
`)

// CodeStore keeps one pending verification code per email address in Redis.
type CodeStore struct {
	client      *redis.Client
	maxAttempts int
}

func NewCodeStore(client *redis.Client, maxAttempts int) *CodeStore {
	return &CodeStore{client: client, maxAttempts: maxAttempts}
}

// Put stores code under the email key with the given TTL, replacing any
// pending code and resetting the attempt counter. Last request wins.
func (s *CodeStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, codeKeyPrefix+email, code, ttl)
	pipe.Del(ctx, attemptKeyPrefix+email)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}
	return nil
}

// Confirm checks submitted against the pending code for email in a single
// atomic script call.
//
// Outcomes:
//   - match: entry deleted, nil returned — the code cannot be replayed
//   - mismatch within budget: domain.ErrConflict, code left in place
//   - attempt budget exhausted: domain.ErrConflict, entry deleted
//   - no pending code (never requested, expired, or consumed): domain.ErrNotFound
func (s *CodeStore) Confirm(ctx context.Context, email, submitted string) error {
	res, err := confirmScript.Run(ctx, s.client,
		[]string{codeKeyPrefix + email, attemptKeyPrefix + email},
		submitted, s.maxAttempts,
	).Text()
	if err != nil {
		return fmt.Errorf("confirm verification code: %w", err)
	}
	switch res {
	case "ok":
		return nil
	case "missing":
		return fmt.Errorf("no pending code for %s: %w", email, domain.ErrNotFound)
	case "exhausted":
		return fmt.Errorf("attempt limit reached for %s: %w", email, domain.ErrConflict)
	default: // mismatch
		return fmt.Errorf("code mismatch for %s: %w", email, domain.ErrConflict)
	}
}
