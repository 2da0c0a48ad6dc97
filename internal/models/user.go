package models

import "time"

// User is the single dashboard account.
type User struct {
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	ClientID  string    `json:"client_id,omitempty"`
	LastLogin time.Time `json:"last_login,omitempty"`
}
