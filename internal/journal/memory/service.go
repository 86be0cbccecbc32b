package memory

import (
	"context"
	"log/slog"

	"github.com/keepsakehq/keepsake/internal/platform/validate"
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

func (service *Service) ListMemories(context context.Context, filter Filter, limit, offset int) ([]*Memory, int, error) {
	return service.repo.ListMemories(context, filter, limit, offset)
}

func (service *Service) GetMemory(context context.Context, ownerID, id string) (*Memory, error) {
	return service.repo.GetMemory(context, ownerID, id)
}

func (service *Service) CreateMemory(context context.Context, m *Memory) error {
	if err := service.validateMemory(m); err != nil {
		return err
	}

	m.ID = uuidv7.New()
	if err := service.repo.CreateMemory(context, m); err != nil {
		return err
	}

	service.logger.Info("memory_created",
		slog.String("memory_id", m.ID),
		slog.String("media_type", m.MediaType),
	)
	return nil
}

func (service *Service) UpdateMemory(context context.Context, ownerID, id string, m *Memory) error {
	m.ID = id
	m.OwnerID = ownerID

	if err := service.validateMemory(m); err != nil {
		return err
	}
	if err := service.repo.UpdateMemory(context, m); err != nil {
		return err
	}

	service.logger.Info("memory_updated", slog.String("memory_id", m.ID))
	return nil
}

func (service *Service) DeleteMemory(context context.Context, ownerID, id string) error {
	if err := service.repo.DeleteMemory(context, ownerID, id); err != nil {
		return err
	}

	service.logger.Warn("memory_deleted", slog.String("memory_id", id))
	return nil
}

func (service *Service) CountMemories(context context.Context) (int, error) {
	return service.repo.CountMemories(context)
}

func (service *Service) validateMemory(m *Memory) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, m.Title).
		MaxLen(FieldTitle, m.Title, 200).
		Required(FieldMediaURL, m.MediaURL).
		OneOf(FieldMediaType, m.MediaType, MediaTypes()...)

	validator.Custom(FieldTakenAt, m.TakenAt.IsZero(), "This field is required")

	if m.AlbumID != nil {
		validator.UUID(FieldAlbumID, *m.AlbumID)
	}
	if m.Description != nil {
		validator.MaxLen(FieldDescription, *m.Description, 5000)
	}

	// Geotags are all-or-nothing and must be plausible coordinates
	if (m.Latitude == nil) != (m.Longitude == nil) {
		validator.Custom(FieldLatitude, true, "Latitude and longitude must be set together")
	}
	if m.Latitude != nil {
		validator.Custom(FieldLatitude, *m.Latitude < -90 || *m.Latitude > 90, "Must be between -90 and 90")
	}
	if m.Longitude != nil {
		validator.Custom(FieldLongitude, *m.Longitude < -180 || *m.Longitude > 180, "Must be between -180 and 180")
	}

	return validator.Err()
}
