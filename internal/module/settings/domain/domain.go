// Package domain defines the single-row AppSettings entity (spec §3).
package domain

import (
	"time"

	"github.com/google/uuid"
)

type OverflowMode string

const (
	ModeCollect OverflowMode = "COLLECT"
	ModeAdd     OverflowMode = "ADD"
	ModeFill    OverflowMode = "FILL"
	ModeRatio   OverflowMode = "RATIO"
)

func (m OverflowMode) IsValid() bool {
	switch m {
	case ModeCollect, ModeAdd, ModeFill, ModeRatio:
		return true
	}
	return false
}

type TriggerDay string

const (
	TriggerFirstOfMonth  TriggerDay = "FIRST_OF_MONTH"
	TriggerMiddleOfMonth TriggerDay = "MIDDLE_OF_MONTH"
	TriggerLastOfMonth   TriggerDay = "LAST_OF_MONTH"
)

func (t TriggerDay) IsValid() bool {
	switch t {
	case TriggerFirstOfMonth, TriggerMiddleOfMonth, TriggerLastOfMonth:
		return true
	}
	return false
}

// Matches reports whether calendar day "today" of the given month
// satisfies this trigger day, per spec §4.6.
func (t TriggerDay) Matches(today time.Time) bool {
	switch t {
	case TriggerFirstOfMonth:
		return today.Day() == 1
	case TriggerMiddleOfMonth:
		return today.Day() == 15
	case TriggerLastOfMonth:
		lastDay := time.Date(today.Year(), today.Month()+1, 0, 0, 0, 0, 0, today.Location()).Day()
		return today.Day() == lastDay
	}
	return false
}

// AppSettings is the single active settings row (spec §3).
type AppSettings struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	IsAutomatedSavingActive            bool         `gorm:"not null;default:false;column:is_automated_saving_active" json:"is_automated_saving_active"`
	SavingsAmount                      int64        `gorm:"not null;default:0;column:savings_amount" json:"savings_amount"`
	OverflowMoneyboxAutomatedSavingsMode OverflowMode `gorm:"type:varchar(20);not null;default:'COLLECT';column:overflow_moneybox_automated_savings_mode" json:"overflow_moneybox_automated_savings_mode"`
	SendReportsViaEmail                 bool         `gorm:"not null;default:false;column:send_reports_via_email" json:"send_reports_via_email"`
	UserEmailAddress                    *string      `gorm:"column:user_email_address" json:"user_email_address,omitempty"`
	AutomatedSavingTriggerDay           TriggerDay   `gorm:"type:varchar(20);not null;default:'FIRST_OF_MONTH';column:automated_saving_trigger_day" json:"automated_saving_trigger_day"`

	IsActive bool `gorm:"not null;default:true;column:is_active" json:"-"`

	CreatedAt  time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	ModifiedAt time.Time `gorm:"autoUpdateTime;column:modified_at" json:"modified_at"`
}

func (AppSettings) TableName() string { return "app_settings" }
