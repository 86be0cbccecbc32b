package schema

// RefAlbumTable represents the 'journal.album' table
type RefAlbumTable struct {
	Table         string
	ID            string
	OwnerID       string
	Name          string
	Slug          string
	Description   string
	CoverMemoryID string
	CreatedAt     string
	UpdatedAt     string
	DeletedAt     string
}

// RefAlbum is the schema definition for journal.album
var RefAlbum = RefAlbumTable{
	Table:         "journal.album",
	ID:            "id",
	OwnerID:       "ownerid",
	Name:          "name",
	Slug:          "slug",
	Description:   "description",
	CoverMemoryID: "covermemoryid",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
	DeletedAt:     "deletedat",
}

func (t RefAlbumTable) Columns() []string {
	return []string{t.ID, t.OwnerID, t.Name, t.Slug, t.Description, t.CoverMemoryID, t.CreatedAt, t.UpdatedAt, t.DeletedAt}
}
