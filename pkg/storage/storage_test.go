package storage

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokmz/fdbook/pkg/cache"
	"github.com/tokmz/fdbook/pkg/logger"
)

func TestStorageScopes(t *testing.T) {
	local := NewLocal(cache.NewMemory())
	ctxA := WithScope(context.Background(), "client-a")
	ctxB := WithScope(context.Background(), "client-b")

	require.NoError(t, local.SetItem(ctxA, KeyUserID, "user-42"))

	v, ok, err := local.GetItem(ctxA, KeyUserID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "user-42", v)

	_, ok, err = local.GetItem(ctxB, KeyUserID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, local.RemoveItem(ctxA, KeyUserID))
	_, ok, _ = local.GetItem(ctxA, KeyUserID)
	assert.False(t, ok)

	assert.Equal(t, DefaultScope, ScopeFromContext(context.Background()))
}

func TestLocalAndSessionAreSeparate(t *testing.T) {
	shared := cache.NewMemory()
	local, session := NewLocal(shared), NewSession(shared, time.Hour)
	ctx := context.Background()

	require.NoError(t, local.SetItem(ctx, "k", "durable"))
	_, ok, err := session.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionSlidingExpiry(t *testing.T) {
	session := NewSession(cache.NewMemory(), 80*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, session.SetItem(ctx, KeySessionID, "s1"))
	for range 3 {
		time.Sleep(40 * time.Millisecond)
		_, ok, err := session.GetItem(ctx, KeySessionID)
		require.NoError(t, err)
		assert.True(t, ok, "read should extend the session")
	}

	time.Sleep(150 * time.Millisecond)
	_, ok, err := session.GetItem(ctx, KeySessionID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIdentityUserID(t *testing.T) {
	id := NewIdentity(NewLocal(cache.NewMemory()), NewSession(cache.NewMemory(), 0))
	ctx := context.Background()

	assert.Equal(t, logger.AnonymousUser, id.UserID(ctx))

	require.NoError(t, id.SetUserID(ctx, "user-42"))
	assert.Equal(t, "user-42", id.UserID(ctx))

	require.NoError(t, id.SetUserID(ctx, ""))
	assert.Equal(t, logger.AnonymousUser, id.UserID(ctx))
}

func TestIdentitySessionID(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	id := NewIdentity(NewLocal(cache.NewMemory()), NewSession(cache.NewMemory(), 0),
		WithClock(func() time.Time { return now }))
	ctx := context.Background()

	first := id.SessionID(ctx)
	assert.Regexp(t, `^session_1700000000000_[0-9a-z]{9}$`, first)
	assert.Equal(t, first, id.SessionID(ctx))

	// 清除后生成带新时间戳的标识
	require.NoError(t, id.ResetSession(ctx))
	now = now.Add(time.Second)
	second := id.SessionID(ctx)
	assert.NotEqual(t, first, second)
	assert.Regexp(t, `^session_1700000001000_`, second)
}

func TestIdentitySessionIDConcurrent(t *testing.T) {
	id := NewIdentity(NewLocal(cache.NewMemory()), NewSession(cache.NewMemory(), time.Hour))
	ctx := WithScope(context.Background(), "c1")

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = id.SessionID(ctx)
		}()
	}
	wg.Wait()

	for i := range results {
		assert.Equal(t, results[0], results[i], strconv.Itoa(i))
	}
}

// failingStorage 所有操作都失败
type failingStorage struct{}

func (failingStorage) GetItem(context.Context, string) (string, bool, error) {
	return "", false, errors.New("storage unavailable")
}

func (failingStorage) SetItem(context.Context, string, string) error {
	return errors.New("storage unavailable")
}

func (failingStorage) RemoveItem(context.Context, string) error {
	return errors.New("storage unavailable")
}

func TestIdentityStorageFailure(t *testing.T) {
	id := NewIdentity(failingStorage{}, failingStorage{})
	ctx := context.Background()

	assert.Equal(t, logger.AnonymousUser, id.UserID(ctx))
	assert.Regexp(t, `^session_\d+_[0-9a-z]{9}$`, id.SessionID(ctx))
}
