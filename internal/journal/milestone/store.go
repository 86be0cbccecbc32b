package milestone

import "context"

type Repository interface {
	ListMilestones(context context.Context, f Filter, limit, offset int) ([]*Milestone, int, error)
	ListAllMilestones(context context.Context, ownerID string) ([]*Milestone, error)
	GetMilestone(context context.Context, ownerID, id string) (*Milestone, error)
	CreateMilestone(context context.Context, m *Milestone) error
	UpdateMilestone(context context.Context, m *Milestone) error
	DeleteMilestone(context context.Context, ownerID, id string) error
	CountMilestones(context context.Context) (int, error)
}
