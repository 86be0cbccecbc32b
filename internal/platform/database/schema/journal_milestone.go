package schema

// RefMilestoneTable represents the 'journal.milestone' table
type RefMilestoneTable struct {
	Table          string
	ID             string
	OwnerID        string
	Title          string
	Description    string
	Type           string
	EventDate      string
	ReminderOption string
	TargetCount    string
	TargetDate     string
	CreatedAt      string
	UpdatedAt      string
	DeletedAt      string
}

// RefMilestone is the schema definition for journal.milestone
var RefMilestone = RefMilestoneTable{
	Table:          "journal.milestone",
	ID:             "id",
	OwnerID:        "ownerid",
	Title:          "title",
	Description:    "description",
	Type:           "type",
	EventDate:      "eventdate",
	ReminderOption: "reminderoption",
	TargetCount:    "targetcount",
	TargetDate:     "targetdate",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
	DeletedAt:      "deletedat",
}

func (t RefMilestoneTable) Columns() []string {
	return []string{t.ID, t.OwnerID, t.Title, t.Description, t.Type, t.EventDate, t.ReminderOption, t.TargetCount, t.TargetDate, t.CreatedAt, t.UpdatedAt, t.DeletedAt}
}
