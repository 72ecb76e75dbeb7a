// Package domain defines the minimal operator identity (spec §3):
// login, bcrypt password hash, and a two-value role. Soft-deleted via
// gorm.DeletedAt the same way the teacher's identify/user.User does.
package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// User is an operator account. Uniqueness of UserLogin is enforced
// among active (non-deleted) rows only, matching the teacher's
// uniqueIndex...,where:deleted_at IS NULL convention.
type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserLogin    string `gorm:"uniqueIndex:uniq_user_login_active,where:deleted_at IS NULL;column:user_login" json:"user_login"`
	PasswordHash string `gorm:"type:varchar(60);column:password_hash" json:"-"`
	Role         Role   `gorm:"type:varchar(10);not null;default:'USER';column:role" json:"role"`

	CreatedAt time.Time      `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:deleted_at" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
