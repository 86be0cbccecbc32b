package album

import (
	"context"
	"log/slog"

	"github.com/keepsakehq/keepsake/internal/platform/validate"
	"github.com/keepsakehq/keepsake/pkg/slug"
	"github.com/keepsakehq/keepsake/pkg/uuidv7"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListAlbums(context context.Context, filter Filter, limit, offset int) ([]*Album, int, error) {
	return service.repo.ListAlbums(context, filter, limit, offset)
}

func (service *Service) GetAlbum(context context.Context, ownerID, id string) (*Album, error) {
	return service.repo.GetAlbum(context, ownerID, id)
}

func (service *Service) GetAlbumBySlug(context context.Context, ownerID, albumSlug string) (*Album, error) {
	return service.repo.GetAlbumBySlug(context, ownerID, albumSlug)
}

func (service *Service) CreateAlbum(context context.Context, a *Album) error {
	if err := service.validateAlbum(a); err != nil {
		return err
	}

	a.ID = uuidv7.New()
	a.Slug = slug.From(a.Name)

	if err := service.repo.CreateAlbum(context, a); err != nil {
		return err
	}

	service.logger.Info("album_created",
		slog.String("album_id", a.ID),
		slog.String("slug", a.Slug),
	)
	return nil
}

func (service *Service) UpdateAlbum(context context.Context, ownerID, id string, a *Album) error {
	a.ID = id
	a.OwnerID = ownerID

	if err := service.validateAlbum(a); err != nil {
		return err
	}

	// The slug follows the name so shared links stay human-readable
	a.Slug = slug.From(a.Name)

	if err := service.repo.UpdateAlbum(context, a); err != nil {
		return err
	}

	service.logger.Info("album_updated", slog.String("album_id", a.ID))
	return nil
}

func (service *Service) DeleteAlbum(context context.Context, ownerID, id string) error {
	if err := service.repo.DeleteAlbum(context, ownerID, id); err != nil {
		return err
	}

	service.logger.Warn("album_deleted", slog.String("album_id", id))
	return nil
}

func (service *Service) CountAlbums(context context.Context) (int, error) {
	return service.repo.CountAlbums(context)
}

func (service *Service) validateAlbum(a *Album) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, a.Name).MaxLen(FieldName, a.Name, 120)

	if a.Description != nil {
		validator.MaxLen(FieldDescription, *a.Description, 2000)
	}
	if a.CoverMemoryID != nil {
		validator.UUID(FieldCoverMemoryID, *a.CoverMemoryID)
	}

	return validator.Err()
}
