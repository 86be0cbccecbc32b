package album

import "time"

// Album groups related memories under a shared name and slug.
type Album struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"owner_id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Description   *string    `json:"description"`
	CoverMemoryID *string    `json:"cover_memory_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"-"` // soft-delete tracker
}

// Filter holds the parameters for a paginated album search.
type Filter struct {
	OwnerID string
	Query   string // ILIKE search against name
}

const (
	FieldName          = "name"
	FieldSlug          = "slug"
	FieldDescription   = "description"
	FieldCoverMemoryID = "cover_memory_id"
)
