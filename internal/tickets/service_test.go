package tickets

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/kitchenboard/internal/board"
	"github.com/angelmondragon/kitchenboard/pkg/db/models"
	"github.com/angelmondragon/kitchenboard/pkg/enums"
	pkgerrors "github.com/angelmondragon/kitchenboard/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, sinks ...Sink) (*Service, *bytes.Buffer) {
	t.Helper()
	client := newTestDB(t)
	buf := &bytes.Buffer{}
	clock := t0
	svc, err := NewService(ServiceParams{
		Repository: NewRepository(client.DB()),
		Renderer:   newTestRenderer(t),
		Sinks:      sinks,
		Logger:     newTestLogger(buf),
		Now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	})
	require.NoError(t, err)
	return svc, buf
}

func TestPrintArchivesAndDispatches(t *testing.T) {
	sink := &recordingSink{}
	svc, _ := newTestService(t, sink)
	ctx := context.Background()

	id, err := svc.Print(ctx, testRequest(enums.TriggerAuto, true))
	require.NoError(t, err)
	require.Equal(t, []string{id}, sink.sent)

	ticket, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "table-5-phone-555", ticket.GroupKey)
	assert.Equal(t, enums.TriggerAuto, ticket.Trigger)
	assert.True(t, ticket.AutoStatus)
	assert.Equal(t, []string{"101", "102"}, ticket.OrderIDList())
	assert.Equal(t, "23.25", ticket.Subtotal.StringFixed(2))
	assert.Contains(t, ticket.BodyText, "AUTO-PRINTED")
	assert.Contains(t, ticket.BodyHTML, "<html>")
	assert.True(t, ticket.PrintedAt.Equal(t0.Add(3*time.Minute)))
}

func TestPrintLogsSinkFailures(t *testing.T) {
	sink := &recordingSink{err: errors.New("printer offline")}
	svc, buf := newTestService(t, sink)

	id, err := svc.Print(context.Background(), testRequest(enums.TriggerManual, false))
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Contains(t, buf.String(), "ticket sink failed")
	assert.Contains(t, buf.String(), `"sink":"recording"`)
}

func TestPrintRejectsEmptyGroup(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Print(context.Background(), board.PrintRequest{Trigger: enums.TriggerAuto})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestGetErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "not-a-uuid")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Get(ctx, uuid.NewString())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListPagesMostRecentFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := svc.Print(ctx, testRequest(enums.TriggerAuto, false))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	first, err := svc.List(ctx, ListParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	assert.Equal(t, ids[2], first.Items[0].ID.String())
	assert.Equal(t, ids[1], first.Items[1].ID.String())
	require.NotEmpty(t, first.Cursor)

	second, err := svc.List(ctx, ListParams{Limit: 2, Cursor: first.Cursor})
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Equal(t, ids[0], second.Items[0].ID.String())
	assert.Empty(t, second.Cursor)

	filtered, err := svc.List(ctx, ListParams{GroupKey: "table-9-phone-no-phone"})
	require.NoError(t, err)
	assert.Empty(t, filtered.Items)

	_, err = svc.List(ctx, ListParams{Cursor: "%%%"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestLogSinkWritesTicketBody(t *testing.T) {
	buf := &bytes.Buffer{}
	svc, _ := newTestService(t, NewLogSink(newTestLogger(buf)))

	_, err := svc.Print(context.Background(), testRequest(enums.TriggerAuto, false))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "kitchen ticket printed")
	assert.Contains(t, buf.String(), `"trigger":"auto"`)
}

type failingCreateRepo struct {
	Repository
	err error
}

func (r failingCreateRepo) Create(context.Context, *models.PrintTicket) error {
	return r.err
}

func TestPrintMapsArchiveErrors(t *testing.T) {
	cases := map[string]struct {
		err  error
		code pkgerrors.Code
	}{
		"duplicate": {err: errors.New("UNIQUE constraint failed: print_tickets.id"), code: pkgerrors.CodeConflict},
		"db down":   {err: errors.New("connection reset"), code: pkgerrors.CodeDependency},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc, err := NewService(ServiceParams{
				Repository: failingCreateRepo{err: tc.err},
				Renderer:   newTestRenderer(t),
				Logger:     newTestLogger(&bytes.Buffer{}),
			})
			require.NoError(t, err)

			_, err = svc.Print(context.Background(), testRequest(enums.TriggerManual, false))
			require.Error(t, err)
			assert.Equal(t, tc.code, pkgerrors.As(err).Code())
		})
	}
}
