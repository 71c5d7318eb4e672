package model

import "time"

// ClientProject statuses.
const (
	StatusPlanning   = "planning"
	StatusInProgress = "in-progress"
	StatusReview     = "review"
	StatusCompleted  = "completed"
)

// ProjectFeedback statuses and priorities.
const (
	FeedbackOpen      = "open"
	FeedbackAddressed = "addressed"
	FeedbackResolved  = "resolved"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ClientProject is an engagement tracked in the client portal. ClientID
// references the User the project belongs to; portal reads are scoped to it.
type ClientProject struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ClientID    string     `json:"clientId"`
	Status      string     `json:"status"`
	Budget      string     `json:"budget"`
	Deadline    *time.Time `json:"deadline"`
	ProjectType string     `json:"projectType"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type InsertClientProject struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ClientID    string     `json:"clientId"`
	Status      string     `json:"status"`
	Budget      string     `json:"budget"`
	Deadline    *time.Time `json:"deadline"`
	ProjectType string     `json:"projectType"`
	IsActive    *bool      `json:"isActive"`
}

type ClientProjectPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	ClientID    *string    `json:"clientId"`
	Status      *string    `json:"status"`
	Budget      *string    `json:"budget"`
	Deadline    *time.Time `json:"deadline"`
	ProjectType *string    `json:"projectType"`
	IsActive    *bool      `json:"isActive"`
}

// ProjectAsset is a URL reference to a deliverable (cut, still, export).
// Multiple versions of the same deliverable may coexist; isCurrentVersion
// is caller-managed, never derived.
type ProjectAsset struct {
	ID               int64     `json:"id"`
	ProjectID        int64     `json:"projectId"`
	FileName         string    `json:"fileName"`
	FileURL          string    `json:"fileUrl"`
	FileType         string    `json:"fileType"`
	Version          int       `json:"version"`
	UploadedBy       string    `json:"uploadedBy"`
	IsCurrentVersion bool      `json:"isCurrentVersion"`
	CreatedAt        time.Time `json:"createdAt"`
}

type InsertProjectAsset struct {
	FileName         string `json:"fileName"`
	FileURL          string `json:"fileUrl"`
	FileType         string `json:"fileType"`
	Version          *int   `json:"version"`
	UploadedBy       string `json:"uploadedBy"`
	IsCurrentVersion *bool  `json:"isCurrentVersion"`
}

type ProjectAssetPatch struct {
	FileName         *string `json:"fileName"`
	FileURL          *string `json:"fileUrl"`
	FileType         *string `json:"fileType"`
	Version          *int    `json:"version"`
	IsCurrentVersion *bool   `json:"isCurrentVersion"`
}

// ProjectFeedback is a comment on a project, optionally anchored to an
// asset and a position within it (Timestamp is a free-form video position
// like "01:23", not a time.Time).
type ProjectFeedback struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"projectId"`
	AssetID   *int64    `json:"assetId"`
	UserID    string    `json:"userId"`
	Comment   string    `json:"comment"`
	Timestamp string    `json:"timestamp"`
	Status    string    `json:"status"`
	Priority  string    `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InsertProjectFeedback leaves UserID out: it is taken from the
// authenticated caller, never from the payload.
type InsertProjectFeedback struct {
	AssetID   *int64 `json:"assetId"`
	Comment   string `json:"comment"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
	Priority  string `json:"priority"`
}

type ProjectFeedbackPatch struct {
	Comment   *string `json:"comment"`
	Timestamp *string `json:"timestamp"`
	Status    *string `json:"status"`
	Priority  *string `json:"priority"`
}

// ProjectMilestone is one step in a project's delivery plan, ordered by
// sortOrder. CompletedAt follows isCompleted the same way a blog post's
// publishedAt follows isPublished.
type ProjectMilestone struct {
	ID          int64      `json:"id"`
	ProjectID   int64      `json:"projectId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	IsCompleted bool       `json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt"`
	SortOrder   int        `json:"sortOrder"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type InsertProjectMilestone struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	IsCompleted *bool      `json:"isCompleted"`
}

type ProjectMilestonePatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	IsCompleted *bool      `json:"isCompleted"`
	SortOrder   *int       `json:"sortOrder"`
}

// MilestoneProgress summarizes a project's milestone completion.
type MilestoneProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}
