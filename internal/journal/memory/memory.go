package memory

import "time"

// Memory is a single journaled moment: a photo, video, or audio clip with
// its caption and optional geotag.
type Memory struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	AlbumID     *string    `json:"album_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	MediaURL    string     `json:"media_url"`
	MediaType   string     `json:"media_type"`
	TakenAt     time.Time  `json:"taken_at"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"` // soft-delete tracker
}

// Filter holds the parameters for a paginated memory search.
type Filter struct {
	OwnerID   string
	AlbumID   string
	MediaType string
	Query     string // ILIKE search against title and description
}

// Media type keys.
const (
	MediaPhoto = "photo"
	MediaVideo = "video"
	MediaAudio = "audio"
)

// MediaTypes lists every recognized media type key.
func MediaTypes() []string {
	return []string{MediaPhoto, MediaVideo, MediaAudio}
}

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldMediaURL    = "media_url"
	FieldMediaType   = "media_type"
	FieldTakenAt     = "taken_at"
	FieldAlbumID     = "album_id"
	FieldLatitude    = "latitude"
	FieldLongitude   = "longitude"
)
