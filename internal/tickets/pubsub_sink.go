package tickets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/kitchenboard/pkg/db/models"
	"github.com/angelmondragon/kitchenboard/pkg/enums"
)

const defaultPublishTimeout = 15 * time.Second

type publisher interface {
	Publish(context.Context, *gcppubsub.Message) publishResult
}

type publishResult interface {
	Get(context.Context) (string, error)
}

// ticketMessage is the payload printer agents receive.
type ticketMessage struct {
	TicketID     string          `json:"ticketId"`
	GroupKey     string          `json:"groupKey"`
	RestaurantID string          `json:"restaurantId,omitempty"`
	TableNumber  string          `json:"tableNumber"`
	Trigger      enums.Trigger   `json:"trigger"`
	AutoStatus   bool            `json:"autoStatus"`
	OrderIDs     []string        `json:"orderIds"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Body         string          `json:"body"`
	PrintedAt    time.Time       `json:"printedAt"`
}

// PubSubSink publishes each ticket to a topic consumed by kitchen printer agents.
type PubSubSink struct {
	pub     publisher
	timeout time.Duration
}

// NewPubSubSink wraps a Pub/Sub publisher for ticket delivery.
func NewPubSubSink(p *gcppubsub.Publisher) (*PubSubSink, error) {
	if p == nil {
		return nil, errors.New("pubsub publisher required")
	}
	return newPubSubSink(&gcpPublisher{Publisher: p}), nil
}

func newPubSubSink(pub publisher) *PubSubSink {
	return &PubSubSink{pub: pub, timeout: defaultPublishTimeout}
}

func (s *PubSubSink) Name() string { return "pubsub" }

func (s *PubSubSink) Send(ctx context.Context, ticket *models.PrintTicket) error {
	if ticket == nil {
		return nil
	}
	payload, err := json.Marshal(ticketMessage{
		TicketID:     ticket.ID.String(),
		GroupKey:     ticket.GroupKey,
		RestaurantID: ticket.RestaurantID,
		TableNumber:  ticket.TableNumber,
		Trigger:      ticket.Trigger,
		AutoStatus:   ticket.AutoStatus,
		OrderIDs:     ticket.OrderIDList(),
		Subtotal:     ticket.Subtotal,
		Body:         ticket.BodyText,
		PrintedAt:    ticket.PrintedAt,
	})
	if err != nil {
		return fmt.Errorf("encode ticket message: %w", err)
	}

	msg := &gcppubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"ticket_id":     ticket.ID.String(),
			"group_key":     ticket.GroupKey,
			"restaurant_id": ticket.RestaurantID,
			"trigger":       ticket.Trigger.String(),
			"printed_at":    ticket.PrintedAt.UTC().Format(time.RFC3339Nano),
		},
	}

	publishCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	result := s.pub.Publish(publishCtx, msg)
	if result == nil {
		return errors.New("publisher returned no result")
	}
	if _, err := result.Get(publishCtx); err != nil {
		return fmt.Errorf("publish ticket %s: %w", ticket.ID, err)
	}
	return nil
}

type gcpPublisher struct {
	*gcppubsub.Publisher
}

func (p *gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	if p == nil || p.Publisher == nil {
		return nil
	}
	return p.Publisher.Publish(ctx, msg)
}
