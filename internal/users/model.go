package users

import "time"

// User is a registered account. PasswordHash is an opaque bcrypt credential
// and never leaves the package.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
