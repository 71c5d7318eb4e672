package model

import "time"

// Section type tags used by the public site. The column is a free string —
// at most one active row per type is a soft invariant, not a constraint;
// lookups resolve duplicates deterministically (lowest id wins).
const (
	SectionHero         = "hero"
	SectionServices     = "services"
	SectionPortfolio    = "portfolio"
	SectionAbout        = "about"
	SectionTestimonials = "testimonials"
	SectionContact      = "contact"
)

// ContentSection is an editable block of page copy (hero, about, etc.).
// The public site fetches the active row for a given sectionType; the admin
// dashboard sees and edits all rows.
type ContentSection struct {
	ID          int64     `json:"id"`
	SectionType string    `json:"sectionType"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Content     string    `json:"content"`
	ImageURL    string    `json:"imageUrl"`
	VideoURL    string    `json:"videoUrl"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// InsertContentSection is the client-suppliable subset of ContentSection.
// IsActive defaults to true when omitted.
type InsertContentSection struct {
	SectionType string `json:"sectionType"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Content     string `json:"content"`
	ImageURL    string `json:"imageUrl"`
	VideoURL    string `json:"videoUrl"`
	IsActive    *bool  `json:"isActive"`
}

// ContentSectionPatch is a partial update; nil fields are left untouched.
type ContentSectionPatch struct {
	SectionType *string `json:"sectionType"`
	Title       *string `json:"title"`
	Subtitle    *string `json:"subtitle"`
	Content     *string `json:"content"`
	ImageURL    *string `json:"imageUrl"`
	VideoURL    *string `json:"videoUrl"`
	IsActive    *bool   `json:"isActive"`
}

// Service is one entry in the agency's service offering list, displayed in
// sortOrder ascending.
type Service struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IconClass   string    `json:"iconClass"`
	IsActive    bool      `json:"isActive"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type InsertService struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IconClass   string `json:"iconClass"`
	IsActive    *bool  `json:"isActive"`
}

type ServicePatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IconClass   *string `json:"iconClass"`
	IsActive    *bool   `json:"isActive"`
	SortOrder   *int    `json:"sortOrder"`
}

// Testimonial is a client quote shown on the public site. Rating is 1-5 by
// UI convention only; the store does not constrain it.
type Testimonial struct {
	ID             int64     `json:"id"`
	ClientName     string    `json:"clientName"`
	ClientTitle    string    `json:"clientTitle"`
	ClientCompany  string    `json:"clientCompany"`
	ClientImageURL string    `json:"clientImageUrl"`
	Quote          string    `json:"quote"`
	Rating         int       `json:"rating"`
	IsActive       bool      `json:"isActive"`
	SortOrder      int       `json:"sortOrder"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type InsertTestimonial struct {
	ClientName     string `json:"clientName"`
	ClientTitle    string `json:"clientTitle"`
	ClientCompany  string `json:"clientCompany"`
	ClientImageURL string `json:"clientImageUrl"`
	Quote          string `json:"quote"`
	Rating         *int   `json:"rating"`
	IsActive       *bool  `json:"isActive"`
}

type TestimonialPatch struct {
	ClientName     *string `json:"clientName"`
	ClientTitle    *string `json:"clientTitle"`
	ClientCompany  *string `json:"clientCompany"`
	ClientImageURL *string `json:"clientImageUrl"`
	Quote          *string `json:"quote"`
	Rating         *int    `json:"rating"`
	IsActive       *bool   `json:"isActive"`
	SortOrder      *int    `json:"sortOrder"`
}
