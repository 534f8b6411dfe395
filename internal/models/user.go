package models

import "time"

// User represents a user of the application.
type User struct {
	UserID               string     `db:"user_id"`
	Username             string     `db:"username"`
	PasswordHash         string     `db:"password_hash"`
	Name                 string     `db:"name"`
	Email                string     `db:"email"`
	NotificationsEnabled bool       `db:"notifications_enabled"`
	DeletedAt            *time.Time `db:"deleted_at"`
	AuditFields
}
