// Package domain defines the append-only ActionLog entity (spec §3),
// grounded on the teacher's transaction/domain.go append-only shape,
// with a JSONB details column the same way Goal.DSSMetadata is typed.
package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Action string

const (
	ActionActivatedAutomatedSaving         Action = "ACTIVATED_AUTOMATED_SAVING"
	ActionDeactivatedAutomatedSaving       Action = "DEACTIVATED_AUTOMATED_SAVING"
	ActionAppliedAutomatedSaving           Action = "APPLIED_AUTOMATED_SAVING"
	ActionChangedAutomatedSavingsAmount    Action = "CHANGED_AUTOMATED_SAVINGS_AMOUNT"
)

// ActionLog is one append-only record of a settings- or cycle-level
// event, with a structured details snapshot.
type ActionLog struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Action   Action         `gorm:"type:varchar(64);not null;column:action" json:"action"`
	ActionAt time.Time      `gorm:"autoCreateTime;column:action_at" json:"action_at"`
	Details  datatypes.JSON `gorm:"type:jsonb;column:details" json:"details,omitempty"`
}

func (ActionLog) TableName() string { return "action_logs" }
