package repo

import (
	"context"
	"sort"
	"strings"
	"sync"

	dom "github.com/mauriciosoaresd/todo-study-spring/internal/domain"
)

// MemTodoRepo implements TodoRepo in process memory.
type MemTodoRepo struct {
	mu     sync.RWMutex
	nextID int64
	todos  map[int64]dom.Todo
}

// NewMemTodoRepo returns an empty in-memory store. Ids start at 1.
func NewMemTodoRepo() *MemTodoRepo {
	return &MemTodoRepo{nextID: 1, todos: make(map[int64]dom.Todo)}
}

func (r *MemTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	if err := ctx.Err(); err != nil {
		return dom.Todo{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = r.nextID
	r.nextID++
	t.TargetDate = dom.Date(t.TargetDate)
	r.todos[t.ID] = t
	return t, nil
}

func (r *MemTodoRepo) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	if err := ctx.Err(); err != nil {
		return dom.Todo{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.todos[id]
	if !ok {
		return dom.Todo{}, ErrNoRows
	}
	return t, nil
}

func (r *MemTodoRepo) List(ctx context.Context, q ListQuery) ([]dom.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	all := make([]dom.Todo, 0, len(r.todos))
	for _, t := range r.todos {
		all = append(all, t)
	}
	r.mu.RUnlock()

	less := lessFunc(q.Sort.Field)
	sort.Slice(all, func(i, j int) bool {
		c := less(all[i], all[j])
		if c == 0 {
			c = cmpInt64(all[i].ID, all[j].ID)
		}
		if q.Sort.Direction == dom.Asc {
			return c < 0
		}
		return c > 0
	})

	n := int64(len(all))
	if q.Offset < 0 || q.Offset >= n || q.Limit < 1 {
		return []dom.Todo{}, nil
	}
	end := q.Offset + int64(q.Limit)
	if end > n {
		end = n
	}
	return all[q.Offset:end], nil
}

func (r *MemTodoRepo) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.todos)), nil
}

func (r *MemTodoRepo) Update(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	if err := ctx.Err(); err != nil {
		return dom.Todo{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.todos[t.ID]; !ok {
		return dom.Todo{}, ErrNoRows
	}
	t.TargetDate = dom.Date(t.TargetDate)
	r.todos[t.ID] = t
	return t, nil
}

func (r *MemTodoRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.todos[id]; !ok {
		return ErrNoRows
	}
	delete(r.todos, id)
	return nil
}

func (r *MemTodoRepo) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.todos[id]
	return ok, nil
}

// lessFunc returns a three-way comparison on the given field.
func lessFunc(f dom.Field) func(a, b dom.Todo) int {
	switch f {
	case dom.FieldTitle:
		return func(a, b dom.Todo) int { return strings.Compare(a.Title, b.Title) }
	case dom.FieldDescription:
		return func(a, b dom.Todo) int { return strings.Compare(a.Description, b.Description) }
	case dom.FieldTargetDate:
		return func(a, b dom.Todo) int { return a.TargetDate.Compare(b.TargetDate) }
	case dom.FieldPriority:
		return func(a, b dom.Todo) int { return cmpInt64(int64(a.Priority), int64(b.Priority)) }
	default:
		return func(a, b dom.Todo) int { return cmpInt64(a.ID, b.ID) }
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
