package tickets

import (
	"context"
	"strings"

	"github.com/angelmondragon/kitchenboard/pkg/db/models"
	"github.com/angelmondragon/kitchenboard/pkg/logger"
)

// Sink delivers an archived ticket to a kitchen output.
type Sink interface {
	Name() string
	Send(ctx context.Context, ticket *models.PrintTicket) error
}

// LogSink writes tickets through the structured logger; it stands in for a physical printer.
type LogSink struct {
	logg *logger.Logger
}

// NewLogSink returns a sink that logs each ticket body.
func NewLogSink(logg *logger.Logger) *LogSink {
	return &LogSink{logg: logg}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Send(ctx context.Context, ticket *models.PrintTicket) error {
	if s.logg == nil || ticket == nil {
		return nil
	}
	ctx = s.logg.WithFields(ctx, map[string]any{
		"ticket_id": ticket.ID.String(),
		"trigger":   ticket.Trigger.String(),
		"lines":     strings.Count(ticket.BodyText, "\n"),
		"body":      ticket.BodyText,
	})
	s.logg.Info(ctx, "kitchen ticket printed")
	return nil
}
