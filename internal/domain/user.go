package domain

import "time"

// User is a read-only profile mirror of the external auth provider, kept for
// email recipient lookup and display names.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedOn time.Time `json:"created_on"`
}
