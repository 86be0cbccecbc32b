package schema

// RefMemoryTable represents the 'journal.memory' table
type RefMemoryTable struct {
	Table       string
	ID          string
	OwnerID     string
	AlbumID     string
	Title       string
	Description string
	MediaURL    string
	MediaType   string
	TakenAt     string
	Latitude    string
	Longitude   string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// RefMemory is the schema definition for journal.memory
var RefMemory = RefMemoryTable{
	Table:       "journal.memory",
	ID:          "id",
	OwnerID:     "ownerid",
	AlbumID:     "albumid",
	Title:       "title",
	Description: "description",
	MediaURL:    "mediaurl",
	MediaType:   "mediatype",
	TakenAt:     "takenat",
	Latitude:    "latitude",
	Longitude:   "longitude",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

func (t RefMemoryTable) Columns() []string {
	return []string{t.ID, t.OwnerID, t.AlbumID, t.Title, t.Description, t.MediaURL, t.MediaType, t.TakenAt, t.Latitude, t.Longitude, t.CreatedAt, t.UpdatedAt, t.DeletedAt}
}
