// Package domain defines the append-only Transaction log (spec §3),
// grounded on the teacher's cashflow/transaction/domain/domain.go
// append-only shape.
package domain

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionTypeDirect       TransactionType = "DIRECT"
	TransactionTypeDistribution TransactionType = "DISTRIBUTION"
)

type TransactionTrigger string

const (
	TriggerManually     TransactionTrigger = "MANUALLY"
	TriggerAutomatically TransactionTrigger = "AUTOMATICALLY"
)

// Transaction is one signed movement against a moneybox's balance.
// Positive Amount is a deposit, negative is a withdrawal. Never
// updated after insert.
type Transaction struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MoneyboxID uuid.UUID `gorm:"type:uuid;not null;index;column:moneybox_id" json:"moneybox_id"`

	Amount  int64 `gorm:"not null;column:amount" json:"amount"`
	Balance int64 `gorm:"not null;column:balance" json:"balance"`

	CounterpartyMoneyboxID *uuid.UUID `gorm:"type:uuid;column:counterparty_moneybox_id" json:"counterparty_moneybox_id,omitempty"`

	TransactionType    TransactionType    `gorm:"type:varchar(20);not null;column:transaction_type" json:"transaction_type"`
	TransactionTrigger TransactionTrigger `gorm:"type:varchar(20);not null;column:transaction_trigger" json:"transaction_trigger"`

	Description string    `gorm:"type:text;column:description" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (Transaction) TableName() string { return "transactions" }

// WithName is a Transaction enriched with the resolved counterparty
// name, returned by the per-box listing operation (spec §4.4).
type WithName struct {
	Transaction
	CounterpartyMoneyboxName *string `json:"counterparty_moneybox_name,omitempty"`
}
