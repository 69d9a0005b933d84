package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/angelmondragon/kitchenboard/pkg/errors"
	"github.com/angelmondragon/kitchenboard/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data   map[string]string
	getErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	value, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.data[key] = value.(string)
	return nil
}

func (f *fakeRedis) SettingsKey(name string) string {
	return "kb:settings:" + name
}

func newTestService(t *testing.T, store Store) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Store:    store,
		Logger:   logger.New(logger.Options{ServiceName: "settings-test"}),
		Defaults: DefaultFlags(),
	})
	require.NoError(t, err)
	return svc
}

func boolPtr(v bool) *bool { return &v }

func TestEffectiveAutoStatusRequiresAutoPrint(t *testing.T) {
	assert.False(t, Flags{AutoPrint: false, AutoStatus: true}.EffectiveAutoStatus())
	assert.True(t, Flags{AutoPrint: true, AutoStatus: true}.EffectiveAutoStatus())
	assert.False(t, DefaultFlags().EffectiveAutoStatus())
	assert.True(t, DefaultFlags().AutoPrint)
}

func TestRedisStoreDefaultsAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	store, err := NewRedisStore(client)
	require.NoError(t, err)

	flags, err := store.Load(ctx, DefaultFlags())
	require.NoError(t, err)
	assert.Equal(t, DefaultFlags(), flags)

	require.NoError(t, store.Save(ctx, Flags{AutoPrint: false, AutoStatus: true}))
	assert.Equal(t, "false", client.data["kb:settings:auto_print"])
	assert.Equal(t, "true", client.data["kb:settings:auto_status"])

	flags, err = store.Load(ctx, DefaultFlags())
	require.NoError(t, err)
	assert.Equal(t, Flags{AutoPrint: false, AutoStatus: true}, flags)
}

func TestRedisStoreRejectsGarbage(t *testing.T) {
	client := newFakeRedis()
	client.data["kb:settings:auto_print"] = "maybe"
	store, err := NewRedisStore(client)
	require.NoError(t, err)

	_, err = store.Load(context.Background(), DefaultFlags())
	require.Error(t, err)
}

func TestServiceUpdateIsPartial(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, NewMemoryStore())

	flags, err := svc.Update(ctx, UpdateInput{AutoStatus: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, Flags{AutoPrint: true, AutoStatus: true}, flags)

	flags, err = svc.Update(ctx, UpdateInput{AutoPrint: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, Flags{AutoPrint: false, AutoStatus: true}, flags)
	assert.False(t, flags.EffectiveAutoStatus())

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, flags, got)
}

func TestServiceUpdateRequiresAField(t *testing.T) {
	svc := newTestService(t, NewMemoryStore())

	_, err := svc.Update(context.Background(), UpdateInput{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestServiceCurrentFallsBackToLastKnown(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	store, err := NewRedisStore(client)
	require.NoError(t, err)
	svc := newTestService(t, store)

	_, err = svc.Update(ctx, UpdateInput{AutoStatus: boolPtr(true)})
	require.NoError(t, err)

	client.getErr = errors.New("connection refused")
	flags := svc.Current(ctx)
	assert.Equal(t, Flags{AutoPrint: true, AutoStatus: true}, flags)

	_, err = svc.Get(ctx)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{Logger: logger.New(logger.Options{ServiceName: "x"})})
	require.Error(t, err)
	_, err = NewService(ServiceParams{Store: NewMemoryStore()})
	require.Error(t, err)
}
