package milestone

import "time"

// Milestone is a user-defined significant-date record with an optional
// reminder offset.
type Milestone struct {
	ID             string     `json:"id"`
	OwnerID        string     `json:"owner_id"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	Type           string     `json:"type"`
	Date           time.Time  `json:"date"`
	ReminderOption string     `json:"reminder_option"`
	TargetCount    *int       `json:"target_count"`
	TargetDate     *time.Time `json:"target_date"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"-"` // soft-delete tracker
}

// Filter holds the parameters for a paginated milestone search.
type Filter struct {
	OwnerID string
	Type    string
}

// Milestone type keys. The key selects the reflection-prompt set and the
// client's color/icon treatment; TypeOther is the fallback for anything else.
const (
	TypeBirthday    = "birthday"
	TypeAnniversary = "anniversary"
	TypeGraduation  = "graduation"
	TypeCareer      = "career"
	TypeTravel      = "travel"
	TypeOther       = "other"
)

// Reminder option keys, each mapping to a fixed offset in days before the
// event date. ReminderNone means no reminder date exists.
const (
	ReminderOnDate       = "on_date"
	ReminderOneDayBefore = "1_day_before"
	ReminderThreeDays    = "3_days_before"
	ReminderOneWeek      = "1_week_before"
	ReminderOneMonth     = "1_month_before"
	ReminderNone         = "none"
)

// MilestoneTypes lists every recognized type key.
func MilestoneTypes() []string {
	return []string{TypeBirthday, TypeAnniversary, TypeGraduation, TypeCareer, TypeTravel, TypeOther}
}

// ReminderOptions lists every recognized reminder option key.
func ReminderOptions() []string {
	return []string{ReminderOnDate, ReminderOneDayBefore, ReminderThreeDays, ReminderOneWeek, ReminderOneMonth, ReminderNone}
}

const (
	FieldTitle          = "title"
	FieldDescription    = "description"
	FieldType           = "type"
	FieldDate           = "date"
	FieldReminderOption = "reminder_option"
	FieldTargetCount    = "target_count"
	FieldTargetDate     = "target_date"
)
