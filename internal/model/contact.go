package model

import "time"

// ContactSubmission is an enquiry from the public contact form. The public
// side only appends; isRead is forced to false on create and is flipped by
// the admin's mark-as-read action alone.
type ContactSubmission struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Company     string    `json:"company"`
	ProjectType string    `json:"projectType"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}

// InsertContactSubmission excludes isRead as well as the usual
// server-managed fields — the payload cannot pre-mark itself read.
type InsertContactSubmission struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	ProjectType string `json:"projectType"`
	Message     string `json:"message"`
}
