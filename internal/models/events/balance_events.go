package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransferCompletedType   = "transfer_completed"
	WithdrawalCompletedType = "withdrawal_completed"
)

type TransferCompleted struct {
	EventID    string          `json:"event_id"`
	FromEmail  string          `json:"from_email"`
	ToEmail    string          `json:"to_email"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type WithdrawalCompleted struct {
	EventID    string          `json:"event_id"`
	Email      string          `json:"email"`
	Amount     decimal.Decimal `json:"amount"`
	Balance    decimal.Decimal `json:"balance"`
	OccurredAt time.Time       `json:"occurred_at"`
}
