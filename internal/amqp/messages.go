package amqp

import (
	"encoding/json"
	"time"
)

// EventType names a ledger mutation.
type EventType string

const (
	TransactionCreated EventType = "transaction.created"
	TransactionDeleted EventType = "transaction.deleted"
	BudgetCreated      EventType = "budget.created"
	BudgetUpdated      EventType = "budget.updated"
	BudgetDeleted      EventType = "budget.deleted"
	GoalCreated        EventType = "goal.created"
	GoalContributed    EventType = "goal.contributed"
	GoalDeleted        EventType = "goal.deleted"
)

// LedgerEvent is a lightweight notice of a committed mutation. Consumers
// read the full record from the store if they need it.
type LedgerEvent struct {
	Type        EventType `json:"type"`
	UserID      string    `json:"user_id"`
	RecordID    string    `json:"record_id"`
	Category    string    `json:"category,omitempty"`
	AmountCents int64     `json:"amount_cents,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewLedgerEvent stamps an event with the current UTC time.
func NewLedgerEvent(typ EventType, userID, recordID string) LedgerEvent {
	return LedgerEvent{
		Type:      typ,
		UserID:    userID,
		RecordID:  recordID,
		Timestamp: time.Now().UTC(),
	}
}

func (e LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
