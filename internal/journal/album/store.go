package album

import "context"

type Repository interface {
	ListAlbums(context context.Context, f Filter, limit, offset int) ([]*Album, int, error)
	GetAlbum(context context.Context, ownerID, id string) (*Album, error)
	GetAlbumBySlug(context context.Context, ownerID, slug string) (*Album, error)
	CreateAlbum(context context.Context, a *Album) error
	UpdateAlbum(context context.Context, a *Album) error
	DeleteAlbum(context context.Context, ownerID, id string) error
	CountAlbums(context context.Context) (int, error)
}
