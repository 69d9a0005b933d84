package tickets

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/kitchenboard/pkg/db/models"
	"github.com/angelmondragon/kitchenboard/pkg/enums"
)

type stubResult struct {
	err error
}

func (r stubResult) Get(context.Context) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return "server-1", nil
}

type stubPublisher struct {
	messages []*gcppubsub.Message
	err      error
	noResult bool
}

func (p *stubPublisher) Publish(_ context.Context, msg *gcppubsub.Message) publishResult {
	p.messages = append(p.messages, msg)
	if p.noResult {
		return nil
	}
	return stubResult{err: p.err}
}

func testTicket() *models.PrintTicket {
	return &models.PrintTicket{
		ID:           uuid.New(),
		GroupKey:     "table-5-phone-555",
		RestaurantID: "1",
		TableNumber:  "5",
		Trigger:      enums.TriggerAuto,
		OrderIDs:     "101,102",
		Subtotal:     decimal.RequireFromString("23.25"),
		BodyText:     "KITCHEN TICKET\n",
		PrintedAt:    t0,
	}
}

func TestPubSubSinkPublishesTicket(t *testing.T) {
	pub := &stubPublisher{}
	sink := newPubSubSink(pub)
	ticket := testTicket()

	require.NoError(t, sink.Send(context.Background(), ticket))
	require.Len(t, pub.messages, 1)

	msg := pub.messages[0]
	assert.Equal(t, ticket.ID.String(), msg.Attributes["ticket_id"])
	assert.Equal(t, "auto", msg.Attributes["trigger"])
	assert.Equal(t, t0.UTC().Format(time.RFC3339Nano), msg.Attributes["printed_at"])

	var payload ticketMessage
	require.NoError(t, json.Unmarshal(msg.Data, &payload))
	assert.Equal(t, []string{"101", "102"}, payload.OrderIDs)
	assert.Equal(t, "23.25", payload.Subtotal.StringFixed(2))
	assert.Equal(t, "KITCHEN TICKET\n", payload.Body)
}

func TestPubSubSinkReturnsPublishErrors(t *testing.T) {
	pub := &stubPublisher{err: errors.New("topic gone")}
	err := newPubSubSink(pub).Send(context.Background(), testTicket())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "topic gone")

	err = newPubSubSink(&stubPublisher{noResult: true}).Send(context.Background(), testTicket())
	require.Error(t, err)
}

func TestNewPubSubSinkRequiresPublisher(t *testing.T) {
	_, err := NewPubSubSink(nil)
	require.Error(t, err)
}
