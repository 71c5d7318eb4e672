package model

import "time"

// BlogPost is an article on the public blog. Slug is unique across all
// posts. PublishedAt is derived, never client-supplied: every create or
// update sets it to "now" when the payload marks the post published and
// clears it otherwise.
type BlogPost struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Excerpt          string     `json:"excerpt"`
	Content          string     `json:"content"`
	FeaturedImageURL string     `json:"featuredImageUrl"`
	IsPublished      bool       `json:"isPublished"`
	PublishedAt      *time.Time `json:"publishedAt"`
	AuthorID         string     `json:"authorId"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type InsertBlogPost struct {
	Title            string `json:"title"`
	Slug             string `json:"slug"`
	Excerpt          string `json:"excerpt"`
	Content          string `json:"content"`
	FeaturedImageURL string `json:"featuredImageUrl"`
	IsPublished      *bool  `json:"isPublished"`
	AuthorID         string `json:"authorId"`
}

type BlogPostPatch struct {
	Title            *string `json:"title"`
	Slug             *string `json:"slug"`
	Excerpt          *string `json:"excerpt"`
	Content          *string `json:"content"`
	FeaturedImageURL *string `json:"featuredImageUrl"`
	IsPublished      *bool   `json:"isPublished"`
	AuthorID         *string `json:"authorId"`
}
