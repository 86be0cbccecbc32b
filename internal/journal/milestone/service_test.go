package milestone_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keepsakehq/keepsake/internal/journal/milestone"
	"github.com/keepsakehq/keepsake/internal/platform/apperr"
	"github.com/keepsakehq/keepsake/pkg/pointer"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubRepository serves a fixed milestone list and records writes.
type stubRepository struct {
	milestones []*milestone.Milestone
	created    []*milestone.Milestone
}

func (s *stubRepository) ListMilestones(_ context.Context, f milestone.Filter, limit, offset int) ([]*milestone.Milestone, int, error) {
	return s.milestones, len(s.milestones), nil
}

func (s *stubRepository) ListAllMilestones(_ context.Context, ownerID string) ([]*milestone.Milestone, error) {
	return s.milestones, nil
}

func (s *stubRepository) GetMilestone(_ context.Context, ownerID, id string) (*milestone.Milestone, error) {
	for _, m := range s.milestones {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, apperr.NotFound("Milestone")
}

func (s *stubRepository) CreateMilestone(_ context.Context, m *milestone.Milestone) error {
	s.created = append(s.created, m)
	return nil
}

func (s *stubRepository) UpdateMilestone(_ context.Context, m *milestone.Milestone) error {
	return nil
}

func (s *stubRepository) DeleteMilestone(_ context.Context, ownerID, id string) error {
	return nil
}

func (s *stubRepository) CountMilestones(_ context.Context) (int, error) {
	return len(s.milestones), nil
}

/*
TestService_Upcoming verifies the decorated reminder view over a mixed list.
*/
func TestService_Upcoming(t *testing.T) {
	now := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.Local)

	repo := &stubRepository{milestones: []*milestone.Milestone{
		{ID: "today", Title: "Graduation", Type: milestone.TypeGraduation, Date: now, ReminderOption: milestone.ReminderOnDate},
		{ID: "soon", Title: "Birthday", Type: milestone.TypeBirthday, Date: now.AddDate(0, 0, 7), ReminderOption: milestone.ReminderOneWeek},
		{ID: "far", Title: "Trip", Type: milestone.TypeTravel, Date: now.AddDate(0, 0, 90), ReminderOption: milestone.ReminderNone},
		{ID: "gone", Title: "Old", Type: milestone.TypeOther, Date: now.AddDate(0, 0, -3), ReminderOption: milestone.ReminderNone},
	}}
	service := milestone.NewService(repo, testLogger())

	views, err := service.Upcoming(context.Background(), "owner", milestone.DefaultReminderWindowDays, now)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "today", views[0].ID)
	assert.Equal(t, 0, views[0].DaysUntil)
	assert.Equal(t, "Today!", views[0].DaysUntilLabel)
	assert.True(t, views[0].IsToday)
	assert.True(t, views[0].ReminderDue)

	assert.Equal(t, "soon", views[1].ID)
	assert.Equal(t, 7, views[1].DaysUntil)
	assert.Equal(t, "1 week away", views[1].DaysUntilLabel)
	assert.False(t, views[1].IsToday)
	// A "1 week before" reminder for an event 7 days out fires today
	assert.True(t, views[1].ReminderDue)
}

/*
TestService_DueReminders verifies reminder-date matching across options.
*/
func TestService_DueReminders(t *testing.T) {
	now := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.Local)

	repo := &stubRepository{milestones: []*milestone.Milestone{
		{ID: "due_on_date", Date: now, ReminderOption: milestone.ReminderOnDate},
		{ID: "due_three_days", Date: now.AddDate(0, 0, 3), ReminderOption: milestone.ReminderThreeDays},
		{ID: "not_yet", Date: now.AddDate(0, 0, 3), ReminderOption: milestone.ReminderOneDayBefore},
		{ID: "no_reminder", Date: now, ReminderOption: milestone.ReminderNone},
	}}
	service := milestone.NewService(repo, testLogger())

	due, err := service.DueReminders(context.Background(), "owner", now)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "due_on_date", due[0].ID)
	assert.Equal(t, "due_three_days", due[1].ID)
}

/*
TestService_CreateMilestone_Validation checks the field rules gate persistence.
*/
func TestService_CreateMilestone_Validation(t *testing.T) {
	repo := &stubRepository{}
	service := milestone.NewService(repo, testLogger())
	ctx := context.Background()

	t.Run("valid_milestone_gets_an_id", func(t *testing.T) {
		m := &milestone.Milestone{
			OwnerID:        "owner",
			Title:          "First marathon",
			Type:           milestone.TypeOther,
			Date:           time.Date(2025, time.October, 12, 0, 0, 0, 0, time.Local),
			ReminderOption: milestone.ReminderOneWeek,
			TargetCount:    pointer.To(42),
		}
		require.NoError(t, service.CreateMilestone(ctx, m))
		assert.NotEmpty(t, m.ID)
		require.Len(t, repo.created, 1)
	})

	t.Run("rejects_unknown_type", func(t *testing.T) {
		m := &milestone.Milestone{
			OwnerID:        "owner",
			Title:          "Bad",
			Type:           "coronation",
			Date:           time.Now(),
			ReminderOption: milestone.ReminderNone,
		}
		err := service.CreateMilestone(ctx, m)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("rejects_zero_date", func(t *testing.T) {
		m := &milestone.Milestone{
			OwnerID:        "owner",
			Title:          "No date",
			Type:           milestone.TypeOther,
			ReminderOption: milestone.ReminderNone,
		}
		assert.Error(t, service.CreateMilestone(ctx, m))
	})
}
