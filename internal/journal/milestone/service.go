package milestone

import (
	"context"
	"log/slog"
	"time"

	"github.com/keepsakehq/keepsake/internal/platform/validate"
	"github.com/keepsakehq/keepsake/pkg/slice"
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

func (service *Service) ListMilestones(context context.Context, filter Filter, limit, offset int) ([]*Milestone, int, error) {
	return service.repo.ListMilestones(context, filter, limit, offset)
}

func (service *Service) GetMilestone(context context.Context, ownerID, id string) (*Milestone, error) {
	return service.repo.GetMilestone(context, ownerID, id)
}

func (service *Service) CreateMilestone(context context.Context, m *Milestone) error {
	if err := service.validateMilestone(m); err != nil {
		return err
	}

	m.ID = uuidv7.New()
	if err := service.repo.CreateMilestone(context, m); err != nil {
		return err
	}

	service.logger.Info("milestone_created",
		slog.String("milestone_id", m.ID),
		slog.String("type", m.Type),
	)
	return nil
}

func (service *Service) UpdateMilestone(context context.Context, ownerID, id string, m *Milestone) error {
	m.ID = id
	m.OwnerID = ownerID

	if err := service.validateMilestone(m); err != nil {
		return err
	}
	if err := service.repo.UpdateMilestone(context, m); err != nil {
		return err
	}

	service.logger.Info("milestone_updated", slog.String("milestone_id", m.ID))
	return nil
}

func (service *Service) DeleteMilestone(context context.Context, ownerID, id string) error {
	if err := service.repo.DeleteMilestone(context, ownerID, id); err != nil {
		return err
	}

	service.logger.Warn("milestone_deleted", slog.String("milestone_id", id))
	return nil
}

// UpcomingView is a milestone decorated with the temporal fields clients
// render directly.
type UpcomingView struct {
	*Milestone
	DaysUntil      int        `json:"days_until"`
	DaysUntilLabel string     `json:"days_until_label"`
	IsToday        bool       `json:"is_today"`
	ReminderDate   *time.Time `json:"reminder_date"`
	ReminderDue    bool       `json:"reminder_due"`
}

// Upcoming returns the owner's milestones falling inside the reminder window,
// in event-date order, each decorated with its computed temporal state.
func (service *Service) Upcoming(context context.Context, ownerID string, daysAhead int, now time.Time) ([]*UpcomingView, error) {
	if daysAhead < 0 {
		daysAhead = DefaultReminderWindowDays
	}

	milestones, err := service.repo.ListAllMilestones(context, ownerID)
	if err != nil {
		return nil, err
	}

	views := slice.Map(UpcomingReminders(milestones, daysAhead, now), func(m *Milestone) *UpcomingView {
		days := DaysUntil(m.Date, now)
		reminderDate := ReminderDate(m.Date, m.ReminderOption)

		return &UpcomingView{
			Milestone:      m,
			DaysUntil:      days,
			DaysUntilLabel: FormatDaysUntil(days),
			IsToday:        IsToday(m.Date, now),
			ReminderDate:   reminderDate,
			ReminderDue:    ShouldTriggerReminder(reminderDate, now),
		}
	})

	return views, nil
}

// DueReminders returns the owner's milestones whose reminder fires today.
func (service *Service) DueReminders(context context.Context, ownerID string, now time.Time) ([]*Milestone, error) {
	milestones, err := service.repo.ListAllMilestones(context, ownerID)
	if err != nil {
		return nil, err
	}

	var due []*Milestone
	for _, m := range milestones {
		if ShouldTriggerReminder(ReminderDate(m.Date, m.ReminderOption), now) {
			due = append(due, m)
		}
	}
	return due, nil
}

func (service *Service) CountMilestones(context context.Context) (int, error) {
	return service.repo.CountMilestones(context)
}

func (service *Service) validateMilestone(m *Milestone) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, m.Title).
		MaxLen(FieldTitle, m.Title, 200).
		Required(FieldType, m.Type).
		OneOf(FieldType, m.Type, MilestoneTypes()...).
		OneOf(FieldReminderOption, m.ReminderOption, ReminderOptions()...)

	validator.Custom(FieldDate, m.Date.IsZero(), "This field is required")
	if m.Description != nil {
		validator.MaxLen(FieldDescription, *m.Description, 2000)
	}
	if m.TargetCount != nil {
		validator.Range(FieldTargetCount, *m.TargetCount, 0, 1_000_000)
	}

	return validator.Err()
}
