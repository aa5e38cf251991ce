package models

import "time"

type UserRole string

const (
	UserRoleFree    UserRole = "free"
	UserRolePremium UserRole = "premium"
)

// User is an account record. Username is immutable after creation; the only
// mutation this service performs on an existing user is the free -> premium
// role upgrade.
type User struct {
	ID           string
	Username     string
	PasswordHash []byte
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
