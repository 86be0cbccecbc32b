package memory

import "context"

type Repository interface {
	ListMemories(context context.Context, f Filter, limit, offset int) ([]*Memory, int, error)
	GetMemory(context context.Context, ownerID, id string) (*Memory, error)
	CreateMemory(context context.Context, m *Memory) error
	UpdateMemory(context context.Context, m *Memory) error
	DeleteMemory(context context.Context, ownerID, id string) error
	CountMemories(context context.Context) (int, error)
}
