package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"vtu-billing/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// LedgerEventsChannel is the pub/sub channel committed balance changes are announced on.
const LedgerEventsChannel = "ledger_events"

// EventPublisher implements ports.LedgerEventPublisher with Redis PUBLISH.
type EventPublisher struct {
	client  *goredis.Client
	channel string
}

// NewEventPublisher creates a publisher on the ledger events channel.
func NewEventPublisher(client *goredis.Client) *EventPublisher {
	return &EventPublisher{client: client, channel: LedgerEventsChannel}
}

// Publish serializes the event and sends it to subscribers.
func (p *EventPublisher) Publish(ctx context.Context, event *domain.LedgerEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal ledger event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish ledger event: %w", err)
	}
	return nil
}
