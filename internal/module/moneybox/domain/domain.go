// Package domain defines the Moneybox entity and its priority/name
// invariants (spec §3), grounded on the teacher's goal/domain/domain.go
// entity shape but trimmed to the moneybox's narrower field set.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// OverflowPriority is the single active moneybox priority reserved for
// the Overflow Moneybox.
const OverflowPriority = 0

// Moneybox is a named account with a balance, a per-cycle savings
// amount, an optional target, and a priority used to order automated
// distribution.
type Moneybox struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name string `gorm:"type:varchar(255);not null;column:name" json:"name"`

	Balance       int64 `gorm:"not null;default:0;column:balance" json:"balance"`
	SavingsAmount int64 `gorm:"not null;default:0;column:savings_amount" json:"savings_amount"`
	// SavingsTarget is null meaning "unbounded".
	SavingsTarget *int64 `gorm:"column:savings_target" json:"savings_target,omitempty"`

	// Priority is null for inactive boxes and for no box besides the
	// overflow box before it is assigned; 0 is reserved for the
	// overflow box, 1..N for the rest.
	Priority *int `gorm:"column:priority" json:"priority,omitempty"`

	Description string `gorm:"type:text;column:description" json:"description,omitempty"`
	IsActive    bool   `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt  time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	ModifiedAt time.Time `gorm:"autoUpdateTime;column:modified_at" json:"modified_at"`
}

func (Moneybox) TableName() string { return "moneyboxes" }

// IsOverflow reports whether this row is the Overflow Moneybox.
func (m *Moneybox) IsOverflow() bool {
	return m.Priority != nil && *m.Priority == OverflowPriority
}

// NormalizeName trims and validates a candidate name, per §3's "non-empty,
// trimmed" rule. Returns the trimmed name and whether it is legal.
func NormalizeName(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	return trimmed, trimmed != ""
}

// TargetGap returns max(0, target-balance), or 0 if there is no target.
func (m *Moneybox) TargetGap() int64 {
	if m.SavingsTarget == nil {
		return 0
	}
	gap := *m.SavingsTarget - m.Balance
	if gap < 0 {
		return 0
	}
	return gap
}

// IsFull reports whether the box has a target and has reached it.
func (m *Moneybox) IsFull() bool {
	return m.SavingsTarget != nil && m.Balance >= *m.SavingsTarget
}
