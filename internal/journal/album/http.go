package album

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/keepsakehq/keepsake/internal/platform/request"
	"github.com/keepsakehq/keepsake/internal/platform/respond"
	"github.com/keepsakehq/keepsake/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the album routes. The parent router enforces
// authentication; every handler is scoped to the token's account.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listAlbums)
	router.Post("/", handler.createAlbum)
	router.Get("/slug/{slug}", handler.getAlbumBySlug)
	router.Get("/{id}", handler.getAlbum)
	router.Patch("/{id}", handler.updateAlbum)
	router.Delete("/{id}", handler.deleteAlbum)
}

type albumPayload struct {
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	CoverMemoryID *string `json:"cover_memory_id"`
}

func (handler *Handler) listAlbums(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	filter := Filter{
		OwnerID: ownerID,
		Query:   request.URL.Query().Get("q"),
	}

	albums, total, err := handler.service.ListAlbums(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, albums, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getAlbum(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	album, err := handler.service.GetAlbum(request.Context(), ownerID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, album)
}

func (handler *Handler) getAlbumBySlug(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	album, err := handler.service.GetAlbumBySlug(request.Context(), ownerID, requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, album)
}

func (handler *Handler) createAlbum(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input albumPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	album := &Album{
		OwnerID:       ownerID,
		Name:          input.Name,
		Description:   input.Description,
		CoverMemoryID: input.CoverMemoryID,
	}

	if err := handler.service.CreateAlbum(request.Context(), album); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, album)
}

func (handler *Handler) updateAlbum(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input albumPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	album := &Album{
		Name:          input.Name,
		Description:   input.Description,
		CoverMemoryID: input.CoverMemoryID,
	}

	if err := handler.service.UpdateAlbum(request.Context(), ownerID, requestutil.Param(request, "id"), album); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, album)
}

func (handler *Handler) deleteAlbum(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteAlbum(request.Context(), ownerID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
