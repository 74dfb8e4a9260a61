package interfaces

import (
	"context"
	"errors"
	"log"

	settlementapp "adsettle/internal/settlement/application"
)

// LoggingPublisher logs settlement replaced events.
type LoggingPublisher struct {
	logger *log.Logger
}

// NewLoggingPublisher constructs a logging publisher.
func NewLoggingPublisher(logger *log.Logger) *LoggingPublisher {
	if logger == nil {
		logger = log.Default()
	}
	return &LoggingPublisher{logger: logger}
}

// PublishSettlementReplaced logs the event.
func (p *LoggingPublisher) PublishSettlementReplaced(ctx context.Context, event settlementapp.SettlementReplaced) error {
	_ = ctx
	if p == nil {
		return errors.New("settlement publisher: nil publisher")
	}
	p.logger.Printf("settlement replaced: id=%s month=%s at=%s", event.SettlementID, event.Month, event.OccurredAt.Format("2006-01-02T15:04:05Z07:00"))
	return nil
}
