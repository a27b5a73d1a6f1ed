package model

import "time"

// User represents an account that can obtain an API token.  The json tags
// are omitted because handlers render their own response types.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Username     – unique login name.
//	Email        – optional contact address.
//	PasswordHash – bcrypt hashed password.
//	IsActive     – inactive users cannot log in or authenticate.
//	CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    `db:"id"`            // users.id
	Username     string    `db:"username"`      // users.username
	Email        string    `db:"email"`         // users.email
	PasswordHash string    `db:"password_hash"` // users.password_hash
	IsActive     bool      `db:"is_active"`     // users.is_active
	CreatedAt    time.Time `db:"created_at"`    // users.created_at
}
