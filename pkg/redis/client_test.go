package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/kitchenboard/pkg/config"
)

func TestLeaseOwnershipScripts(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}
	key := client.LeaseKey("board")

	won, err := client.SetNX(ctx, key, "replica-a", time.Minute)
	require.NoError(t, err)
	assert.True(t, won)
	won, err = client.SetNX(ctx, key, "replica-b", time.Minute)
	require.NoError(t, err)
	assert.False(t, won)

	renewed, err := client.RenewOwned(ctx, key, "replica-b", time.Minute)
	require.NoError(t, err)
	assert.False(t, renewed, "non-owner cannot renew")

	renewed, err = client.RenewOwned(ctx, key, "replica-a", 2*time.Minute)
	require.NoError(t, err)
	assert.True(t, renewed)
	assert.Equal(t, []any{"replica-a", int64(120000)}, mock.lastArgs)

	released, err := client.ReleaseOwned(ctx, key, "replica-b")
	require.NoError(t, err)
	assert.False(t, released)
	released, err = client.ReleaseOwned(ctx, key, "replica-a")
	require.NoError(t, err)
	assert.True(t, released)

	_, err = client.Get(ctx, key)
	assert.ErrorIs(t, err, redis.Nil)
}

func TestSetGet(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}

	require.NoError(t, client.Set(ctx, "kb:settings:auto_print", "false", 0))
	value, err := client.Get(ctx, "kb:settings:auto_print")
	require.NoError(t, err)
	assert.Equal(t, "false", value)
}

func TestUninitializedClient(t *testing.T) {
	client := &Client{}
	assert.ErrorIs(t, client.Ping(context.Background()), errNotInitialized)
	_, err := client.RenewOwned(context.Background(), "k", "o", time.Second)
	assert.ErrorIs(t, err, errNotInitialized)
	assert.NoError(t, client.Close(), "close without raw client is a no-op")
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	assert.Equal(t, "kb:settings:auto_print", client.SettingsKey("auto_print"))
	assert.Equal(t, "kb:lease:board", client.LeaseKey("board"))
	assert.Equal(t, "kb:lease", client.LeaseKey(" "))
	assert.Equal(t, "kb", Key())
}

func TestOptionsFromConfig(t *testing.T) {
	_, err := optionsFromConfig(config.RedisConfig{})
	require.Error(t, err)

	opts, err := optionsFromConfig(config.RedisConfig{Address: "localhost:6380", PoolSize: 10, DialTimeout: 3 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6380", opts.Addr)
	assert.Equal(t, 10, opts.PoolSize)
	assert.Equal(t, 3*time.Second, opts.DialTimeout)

	opts, err = optionsFromConfig(config.RedisConfig{URL: "redis://:pw@cache:6379/2", Address: "ignored:1", PoolSize: 4})
	require.NoError(t, err)
	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 4, opts.PoolSize)
}

type mockCmdable struct {
	data     map[string]string
	lastArgs []any
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) SetNX(_ context.Context, key string, value any, _ time.Duration) *redis.BoolCmd {
	if _, exists := m.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

// Eval emulates the two owner-checked scripts.
func (m *mockCmdable) Eval(_ context.Context, script string, keys []string, args ...any) *redis.Cmd {
	m.lastArgs = args
	if m.data[keys[0]] != args[0] {
		return redis.NewCmdResult(int64(0), nil)
	}
	if script == releaseOwnedScript {
		delete(m.data, keys[0])
	}
	return redis.NewCmdResult(int64(1), nil)
}
