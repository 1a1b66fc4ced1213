package hoststore

import (
	"context"
	"errors"
	"time"

	"github.com/calebmh/mnemo/internal/domain"
	"github.com/google/uuid"
)

var errNotFound = errors.New("memory not found")

// Mock is an in-memory MemoryStore for testing.
// Set Err to make every operation fail with it.
type Mock struct {
	Memories map[uuid.UUID]*domain.Memory
	Err      error

	// Call tracking for assertions
	AddCalls    []string
	UpdateCalls []uuid.UUID
	DeleteCalls []uuid.UUID
	ListCalls   []string
}

func NewMock() *Mock {
	return &Mock{Memories: make(map[uuid.UUID]*domain.Memory)}
}

// Mutations reports the total number of Add/Update/Delete calls.
func (m *Mock) Mutations() int {
	return len(m.AddCalls) + len(m.UpdateCalls) + len(m.DeleteCalls)
}

func (m *Mock) Add(ctx context.Context, owner, content string) (*domain.Memory, error) {
	m.AddCalls = append(m.AddCalls, content)
	if m.Err != nil {
		return nil, &domain.StorageError{Op: "add", Err: m.Err}
	}
	mem := &domain.Memory{
		ID:        uuid.New(),
		Owner:     owner,
		Content:   content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.Memories[mem.ID] = mem
	return mem, nil
}

func (m *Mock) Update(ctx context.Context, id uuid.UUID, content string) (*domain.Memory, error) {
	m.UpdateCalls = append(m.UpdateCalls, id)
	if m.Err != nil {
		return nil, &domain.StorageError{Op: "update", Err: m.Err}
	}
	mem, ok := m.Memories[id]
	if !ok {
		return nil, &domain.StorageError{Op: "update", Err: errNotFound}
	}
	mem.Content = content
	mem.UpdatedAt = time.Now()
	return mem, nil
}

func (m *Mock) Delete(ctx context.Context, id uuid.UUID) error {
	m.DeleteCalls = append(m.DeleteCalls, id)
	if m.Err != nil {
		return &domain.StorageError{Op: "delete", Err: m.Err}
	}
	if _, ok := m.Memories[id]; !ok {
		return &domain.StorageError{Op: "delete", Err: errNotFound}
	}
	delete(m.Memories, id)
	return nil
}

func (m *Mock) List(ctx context.Context, owner string) ([]domain.Memory, error) {
	m.ListCalls = append(m.ListCalls, owner)
	if m.Err != nil {
		return nil, &domain.StorageError{Op: "list", Err: m.Err}
	}
	var out []domain.Memory
	for _, mem := range m.Memories {
		if mem.Owner == owner {
			out = append(out, *mem)
		}
	}
	return out, nil
}
