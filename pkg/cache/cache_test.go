package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHelpersWithoutConnection(t *testing.T) {
	RDB = nil
	ctx := context.Background()

	_, ok, err := GetString(ctx, "k")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrUnavailable)

	assert.ErrorIs(t, SetString(ctx, "k", "v", time.Minute), ErrUnavailable)
	assert.ErrorIs(t, Del(ctx, "k"), ErrUnavailable)
	assert.NoError(t, Close())
}

func TestConnectFailureLeavesCacheUnavailable(t *testing.T) {
	t.Setenv("REDIS_ADDR", "127.0.0.1:1")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.Error(t, Connect(ctx))
	assert.Nil(t, RDB)
	assert.NoError(t, Close())
}
