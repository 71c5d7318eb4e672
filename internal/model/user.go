// Package model defines the data structures persisted by the studio site:
// editable page content, the portfolio, the blog, testimonials, contact
// submissions, and the client-portal project entities.
//
// Every entity uses an integer surrogate id except User, whose string id is
// owned by the auth layer. Insert types exclude server-managed fields
// (id, createdAt, updatedAt, sortOrder); Patch types use pointer fields so
// "absent" and "zero value" stay distinguishable on partial updates.
package model

import "time"

// User roles. Admins manage site content; clients see the project portal.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// User is an account known to the auth layer. Admins arrive via GitHub
// OAuth; client accounts are provisioned by an admin with email+password.
//
// PasswordHash is never serialized. It is empty for OAuth-only accounts.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	ProfileImageURL string    `json:"profileImageUrl"`
	Role            string    `json:"role"`
	PasswordHash    string    `json:"-"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
