package board

import (
	"testing"
	"time"

	"github.com/angelmondragon/kitchenboard/internal/settings"
	"github.com/angelmondragon/kitchenboard/pkg/enums"
	pkgerrors "github.com/angelmondragon/kitchenboard/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var autoStatusOn = settings.Flags{AutoPrint: true, AutoStatus: true}

func TestPlanAutoStatusNeverFiresWhenDisabled(t *testing.T) {
	orders := []Order{
		newOrder("a", "1", "", enums.OrderStatusConfirmed, t0),
		newOrder("b", "1", "", enums.OrderStatusReady, t0),
	}
	later := t0.Add(24 * time.Hour)
	assert.Empty(t, PlanAutoStatus(later, orders, settings.Flags{AutoPrint: true}, DefaultRules()))
	assert.Empty(t, PlanAutoStatus(later, orders, settings.Flags{AutoStatus: true}, DefaultRules()))
}

func TestPlanAutoStatusConfirmedDwell(t *testing.T) {
	orders := []Order{newOrder("a", "1", "", enums.OrderStatusConfirmed, t0)}
	rules := DefaultRules()

	assert.Empty(t, PlanAutoStatus(t0.Add(119*time.Second), orders, autoStatusOn, rules))

	now := t0.Add(120 * time.Second)
	transitions := PlanAutoStatus(now, orders, autoStatusOn, rules)
	require.Len(t, transitions, 1)
	assert.Equal(t, enums.OrderStatusPreparing, transitions[0].To)
	assert.Equal(t, enums.TriggerAuto, transitions[0].Trigger)

	updated, ok := applyTransition(orders, transitions[0])
	require.True(t, ok)
	assert.Equal(t, enums.OrderStatusPreparing, updated[0].Status)
	assert.True(t, updated[0].StatusChangedAt.Equal(now))
}

func TestPlanAutoStatusUsesStatusChangedAt(t *testing.T) {
	order := newOrder("a", "1", "", enums.OrderStatusPreparing, t0)
	order.StatusChangedAt = t0.Add(10 * time.Minute)
	rules := DefaultRules()

	assert.Empty(t, PlanAutoStatus(t0.Add(24*time.Minute), []Order{order}, autoStatusOn, rules))
	transitions := PlanAutoStatus(t0.Add(25*time.Minute), []Order{order}, autoStatusOn, rules)
	require.Len(t, transitions, 1)
	assert.Equal(t, enums.OrderStatusReady, transitions[0].To)
}

func TestPlanAutoStatusOneTransitionPerOrder(t *testing.T) {
	order := newOrder("a", "1", "", enums.OrderStatusConfirmed, t0)
	duplicate := order
	transitions := PlanAutoStatus(t0.Add(3*time.Hour), []Order{order, duplicate}, autoStatusOn, DefaultRules())
	require.Len(t, transitions, 1)
	assert.Equal(t, enums.OrderStatusPreparing, transitions[0].To)
}

func TestPlanAutoStatusSkipsPending(t *testing.T) {
	orders := []Order{newOrder("a", "1", "", enums.OrderStatusPending, t0)}
	assert.Empty(t, PlanAutoStatus(t0.Add(time.Hour), orders, autoStatusOn, DefaultRules()))
}

func TestApplyServedRemovesOrder(t *testing.T) {
	orders := []Order{
		newOrder("a", "1", "", enums.OrderStatusReady, t0),
		newOrder("b", "1", "", enums.OrderStatusReady, t0),
	}
	tr := Transition{OrderID: "a", From: enums.OrderStatusReady, To: enums.OrderStatusServed, At: t0}
	assert.True(t, tr.RemovesOrder())

	updated, ok := applyTransition(orders, tr)
	require.True(t, ok)
	require.Len(t, updated, 1)
	assert.Equal(t, "b", updated[0].ID)
	assert.Equal(t, "a", orders[0].ID, "source slice must stay intact")

	_, ok = applyTransition(updated, tr)
	assert.False(t, ok)
}

func TestValidateManualTransition(t *testing.T) {
	rules := DefaultRules()
	pending := newOrder("a", "1", "", enums.OrderStatusPending, t0)

	err := ValidateManualTransition(pending, enums.OrderStatusConfirmed, t0.Add(time.Minute), rules)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeEditable, pkgerrors.As(err).Code())

	require.NoError(t, ValidateManualTransition(pending, enums.OrderStatusConfirmed, t0.Add(2*time.Minute), rules))

	err = ValidateManualTransition(pending, enums.OrderStatusReady, t0.Add(time.Hour), rules)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	err = ValidateManualTransition(pending, enums.OrderStatusCancelled, t0.Add(time.Hour), rules)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	fresh := newOrder("b", "1", "", enums.OrderStatusConfirmed, t0)
	require.NoError(t, ValidateManualTransition(fresh, enums.OrderStatusPreparing, t0.Add(time.Second), rules))
	ready := newOrder("c", "1", "", enums.OrderStatusReady, t0)
	require.NoError(t, ValidateManualTransition(ready, enums.OrderStatusServed, t0, rules))
}
