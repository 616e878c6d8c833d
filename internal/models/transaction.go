package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusPending is the only status this service writes. Later transitions
// are made by the back office.
const StatusPending = "pending"

func init() {
	// Amounts go over the wire as JSON numbers, the way the web client sends them.
	decimal.MarshalJSONWithoutQuotes = true
}

type Deposit struct {
	ID         string          `json:"id" db:"id"`
	Reference  string          `json:"reference" db:"reference"`
	UserID     string          `json:"userId" db:"user_id"`
	Username   string          `json:"username" db:"username"`
	Game       string          `json:"game" db:"game"`
	Amount     decimal.Decimal `json:"amount" db:"amount"`
	CashappTag string          `json:"cashappTag" db:"cashapp_tag"`
	Timestamp  time.Time       `json:"timestamp" db:"timestamp"`
	Status     string          `json:"status" db:"status"`
}

type Withdrawal struct {
	ID        string          `json:"id" db:"id"`
	Reference string          `json:"reference" db:"reference"`
	UserID    string          `json:"userId" db:"user_id"`
	Username  string          `json:"username" db:"username"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Cashtag   string          `json:"cashtag" db:"cashtag"`
	Notes     string          `json:"notes" db:"notes"`
	Timestamp time.Time       `json:"timestamp" db:"timestamp"`
	Status    string          `json:"status" db:"status"`
}
