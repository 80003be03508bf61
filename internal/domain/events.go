package domain

import "time"

// Event types emitted through the transactional outbox. Consumers (SMS
// notification, statements) live outside the engine; the outbox row is
// written in the same database transaction as the financial event and
// published only after commit.
const (
	EventTypeTransactionCompleted = "transaction.completed"
	EventTypeTransactionReversed  = "transaction.reversed"
)

// Aggregate types.
const (
	AggregateTypeTransaction = "transaction"
)

// OutboxEvent represents an event waiting to be published.
type OutboxEvent struct {
	ID            string
	TenantID      string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}
