package models

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleStaff      Role = "staff"
	RoleAccountant Role = "accountant"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleAccountant:
		return true
	}
	return false
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email     string    `gorm:"size:255" json:"email"`
	FirstName string    `gorm:"size:150" json:"first_name"`
	LastName  string    `gorm:"size:150" json:"last_name"`
	Phone     string    `gorm:"size:15" json:"phone"`
	Role      Role      `gorm:"size:20;default:staff" json:"role"`
	Password  string    `gorm:"size:255" json:"-"` // bcrypt hash, never serialized
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// FullName mirrors the "first last" display name, falling back to username.
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// RefreshToken records an issued refresh token id so rotation can revoke it.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	JTI       string    `gorm:"column:jti;uniqueIndex;size:64"`
	UserID    uint      `gorm:"index"`
	ExpiresAt time.Time `gorm:"index"`
	Revoked   bool      `gorm:"default:false"`
	CreatedAt time.Time
}
