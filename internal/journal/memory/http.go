package memory

import (
	"net/http"
	"time"

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

// RegisterRoutes mounts the memory routes. The parent router enforces
// authentication; every handler is scoped to the token's account.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listMemories)
	router.Post("/", handler.createMemory)
	router.Get("/{id}", handler.getMemory)
	router.Patch("/{id}", handler.updateMemory)
	router.Delete("/{id}", handler.deleteMemory)
}

type memoryPayload struct {
	AlbumID     *string   `json:"album_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	MediaURL    string    `json:"media_url"`
	MediaType   string    `json:"media_type"`
	TakenAt     time.Time `json:"taken_at"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
}

func (handler *Handler) listMemories(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		OwnerID:   ownerID,
		AlbumID:   queryParams.Get("album_id"),
		MediaType: queryParams.Get("media_type"),
		Query:     queryParams.Get("q"),
	}

	memories, total, err := handler.service.ListMemories(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, memories, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getMemory(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	memory, err := handler.service.GetMemory(request.Context(), ownerID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, memory)
}

func (handler *Handler) createMemory(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input memoryPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	memory := payloadToMemory(input)
	memory.OwnerID = ownerID

	if err := handler.service.CreateMemory(request.Context(), memory); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, memory)
}

func (handler *Handler) updateMemory(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input memoryPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	memory := payloadToMemory(input)
	if err := handler.service.UpdateMemory(request.Context(), ownerID, requestutil.Param(request, "id"), memory); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, memory)
}

func (handler *Handler) deleteMemory(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteMemory(request.Context(), ownerID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func payloadToMemory(input memoryPayload) *Memory {
	return &Memory{
		AlbumID:     input.AlbumID,
		Title:       input.Title,
		Description: input.Description,
		MediaURL:    input.MediaURL,
		MediaType:   input.MediaType,
		TakenAt:     input.TakenAt,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
	}
}
