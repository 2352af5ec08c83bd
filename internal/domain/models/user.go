package models

import "time"

// Roles assigned to accounts. Admin unlocks the management endpoints,
// staff takes orders.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User represents a staff or admin account
type User struct {
	ID        int64
	Name      string
	Email     string
	PassHash  []byte
	Role      string
	IsActive  bool
	CreatedAt time.Time
}
