package domain

import "time"

// User is the owner of one or more accounts.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}
