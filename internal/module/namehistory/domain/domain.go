// Package domain defines the append-only MoneyboxNameHistory entity
// (spec §3), grounded on the teacher's transaction/domain.go
// append-only entity shape.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// NameHistory is one row of a moneybox's name history, appended on
// creation and on every successful name change. Never updated.
type NameHistory struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MoneyboxID uuid.UUID `gorm:"type:uuid;not null;index;column:moneybox_id" json:"moneybox_id"`
	Name       string    `gorm:"type:varchar(255);not null;column:name" json:"name"`
	CreatedAt  time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (NameHistory) TableName() string { return "moneybox_name_histories" }
