package models

// Role is a row of the roles table. Permissions are stored as a text array.
type Role struct {
	RoleID      string   `db:"role_id"`
	Name        string   `db:"name"`
	Description string   `db:"description"`
	Permissions []string `db:"permissions"`
	AuditFields
}
