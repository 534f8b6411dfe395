package domain

import "time"

// User represents a user of the application in the domain.
type User struct {
	UserID               string `json:"userID"` // Primary Key (e.g., UUID)
	Username             string `json:"username"`
	PasswordHash         string `json:"-"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}
