package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

// ErrLockHeld is returned by Acquire when another process holds the lock.
var ErrLockHeld = errors.New(errors.ErrCodeInternal, "lock already held")

// releaseScript deletes the lock key only when it still holds our token, so a
// lock that expired and was re-acquired elsewhere is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// extendScript refreshes the TTL only when the key still holds our token.
var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RunLock serializes batch runs that target the same corpus directory.  Two
// concurrent runs over one corpus would interleave summary-file writes, so the
// batch command takes this lock keyed by the corpus suffix before starting.
type RunLock struct {
	client *Client
	key    string
	token  string
	ttl    time.Duration
}

// NewRunLock builds a lock for the named corpus.  ttl should comfortably
// exceed the expected run time between Extend calls.
func NewRunLock(client *Client, corpus string, ttl time.Duration) *RunLock {
	return &RunLock{
		client: client,
		key:    "caselaw:runlock:" + corpus,
		token:  uuid.NewString(),
		ttl:    ttl,
	}
}

// Acquire takes the lock, returning ErrLockHeld when another holder exists.
func (l *RunLock) Acquire(ctx context.Context) error {
	rdb, err := l.client.cmdable()
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(ctx, opTimeout)
	defer cancel()

	ok, err := rdb.SetNX(ctx, l.key, l.token, l.ttl).Result()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "lock acquire failed")
	}
	if !ok {
		return ErrLockHeld
	}
	return nil
}

// Release frees the lock if this instance still holds it.
func (l *RunLock) Release(ctx context.Context) error {
	rdb, err := l.client.cmdable()
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(ctx, opTimeout)
	defer cancel()

	if err := releaseScript.Run(ctx, rdb, []string{l.key}, l.token).Err(); err != nil && err != redis.Nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "lock release failed")
	}
	return nil
}

// Extend refreshes the lock TTL.  It returns ErrLockHeld when the lock has
// expired and been taken by another holder.
func (l *RunLock) Extend(ctx context.Context) error {
	rdb, err := l.client.cmdable()
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(ctx, opTimeout)
	defer cancel()

	res, err := extendScript.Run(ctx, rdb, []string{l.key}, l.token, l.ttl.Milliseconds()).Int64()
	if err != nil && err != redis.Nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "lock extend failed")
	}
	if res == 0 {
		return ErrLockHeld
	}
	return nil
}
