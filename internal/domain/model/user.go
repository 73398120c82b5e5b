package model

import (
	"time"
)

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // Not exposed
	CreatedAt      time.Time `json:"created_at"`
}

// Identity is the verified caller attached to a request after authentication.
type Identity struct {
	Username string `json:"username"`
}
