package model

import "time"

// PortfolioProject is a showcase entry on the public site. The public
// listing shows active projects; the featured reel additionally requires
// isFeatured — a featured-but-inactive project is never shown.
type PortfolioProject struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Client       string    `json:"client"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	VideoURL     string    `json:"videoUrl"`
	Category     string    `json:"category"` // e.g. "commercial", "brand", "digital"
	IsActive     bool      `json:"isActive"`
	IsFeatured   bool      `json:"isFeatured"`
	SortOrder    int       `json:"sortOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type InsertPortfolioProject struct {
	Title        string `json:"title"`
	Client       string `json:"client"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
	VideoURL     string `json:"videoUrl"`
	Category     string `json:"category"`
	IsActive     *bool  `json:"isActive"`
	IsFeatured   *bool  `json:"isFeatured"`
}

type PortfolioProjectPatch struct {
	Title        *string `json:"title"`
	Client       *string `json:"client"`
	Description  *string `json:"description"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	VideoURL     *string `json:"videoUrl"`
	Category     *string `json:"category"`
	IsActive     *bool   `json:"isActive"`
	IsFeatured   *bool   `json:"isFeatured"`
	SortOrder    *int    `json:"sortOrder"`
}
