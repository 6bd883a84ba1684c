package domain

import "time"

// Event types emitted through the outbox.
const (
	EventTypePostingCreated  = "posting.created"
	EventTypePostingReversed = "posting.reversed"
	EventTypeTransferCreated = "transfer.created"
	EventTypePartyCreated    = "party.created"
)

// Aggregate types referenced by outbox events.
const (
	AggregateTypeTransaction = "metal_transaction"
	AggregateTypePurchase    = "metal_purchase"
	AggregateTypeVoucher     = "voucher"
	AggregateTypeFixing      = "fixing"
	AggregateTypeTransfer    = "fund_transfer"
	AggregateTypeParty       = "party"
)

// OutboxEvent is written in the same transaction as the postings it
// describes and published asynchronously to read-side consumers.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// PostingCreatedEvent payload
type PostingCreatedEvent struct {
	TransactionID string `json:"transaction_id"`
	AggregateID   string `json:"aggregate_id"`
	EntryCount    int    `json:"entry_count"`
	ActorID       string `json:"actor_id"`
}
