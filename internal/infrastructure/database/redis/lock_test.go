package redis

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lockTTL = 30 * time.Minute

func newTestLock(t *testing.T) (*RunLock, redismock.ClientMock) {
	t.Helper()
	client, mock := newTestClient(t)
	return NewRunLock(client, "v1", lockTTL), mock
}

func TestRunLock_Acquire(t *testing.T) {
	lock, mock := newTestLock(t)
	mock.ExpectSetNX(lock.key, lock.token, lockTTL).SetVal(true)

	require.NoError(t, lock.Acquire(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunLock_AcquireHeldByOther(t *testing.T) {
	lock, mock := newTestLock(t)
	mock.ExpectSetNX(lock.key, lock.token, lockTTL).SetVal(false)

	err := lock.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrLockHeld)
}

func TestRunLock_Release(t *testing.T) {
	lock, mock := newTestLock(t)
	mock.ExpectEvalSha(releaseScript.Hash(), []string{lock.key}, lock.token).SetVal(int64(1))

	require.NoError(t, lock.Release(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunLock_ExtendLost(t *testing.T) {
	lock, mock := newTestLock(t)
	mock.ExpectEvalSha(extendScript.Hash(), []string{lock.key}, lock.token, lockTTL.Milliseconds()).
		SetVal(int64(0))

	err := lock.Extend(context.Background())
	assert.ErrorIs(t, err, ErrLockHeld)
}

func TestRunLock_TokensAreUnique(t *testing.T) {
	client, _ := newTestClient(t)
	a := NewRunLock(client, "v1", lockTTL)
	b := NewRunLock(client, "v1", lockTTL)
	assert.Equal(t, a.key, b.key)
	assert.NotEqual(t, a.token, b.token)
}
