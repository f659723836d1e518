package domain

import "time"

// User owns habits. Only the session layer reads PasswordHash.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
