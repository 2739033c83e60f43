package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	dom "github.com/mauriciosoaresd/todo-study-spring/internal/domain"
	"github.com/mauriciosoaresd/todo-study-spring/internal/repo"
	"github.com/mauriciosoaresd/todo-study-spring/internal/validation"

	"golang.org/x/sync/singleflight"
)

// MaxPageSize bounds PageRequest.Size.
const MaxPageSize = 20

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidPage = errors.New("invalid page request")
)

// NotFoundError names the missing todo. It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("Todo with id '%d'", e.ID) }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// PageRequest asks for one page of todos. Page is zero-based.
type PageRequest struct {
	Page int
	Size int
	Sort dom.Sort
}

// Page is one slice of the sorted todo list.
type Page struct {
	Items         []dom.Todo
	Number        int
	Size          int
	TotalElements int64
	TotalPages    int
}

type TodoService struct {
	repo      repo.TodoRepo
	validator *validation.Validator
	sf        singleflight.Group
}

// NewTodoService creates a TodoService. Concurrent identical List calls share one store round trip.
func NewTodoService(r repo.TodoRepo, v *validation.Validator) *TodoService {
	return &TodoService{repo: r, validator: v}
}

// Create validates every field of t and stores it. The id of t is ignored.
func (s *TodoService) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	if vs := s.validator.ValidateAll(t); vs != nil {
		return dom.Todo{}, vs
	}
	t.ID = 0
	t.TargetDate = dom.Date(t.TargetDate)
	return s.repo.Create(ctx, t)
}

func (s *TodoService) List(ctx context.Context, req PageRequest) (Page, error) {
	if req.Page < 0 {
		return Page{}, fmt.Errorf("%w: page must not be less than zero", ErrInvalidPage)
	}
	if req.Size < 1 || req.Size > MaxPageSize {
		return Page{}, fmt.Errorf("%w: size must be between 1 and %d", ErrInvalidPage, MaxPageSize)
	}
	if int64(req.Page) > math.MaxInt64/int64(req.Size) {
		return Page{}, fmt.Errorf("%w: page %d is out of range", ErrInvalidPage, req.Page)
	}

	// The shared call must not fail because one of its callers went away.
	shared := context.WithoutCancel(ctx)
	key := fmt.Sprintf("list:%d:%d:%d:%d", req.Page, req.Size, req.Sort.Field, req.Sort.Direction)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		total, err := s.repo.Count(shared)
		if err != nil {
			return nil, err
		}
		items, err := s.repo.List(shared, repo.ListQuery{
			Offset: int64(req.Page) * int64(req.Size),
			Limit:  req.Size,
			Sort:   req.Sort,
		})
		if err != nil {
			return nil, err
		}
		return Page{
			Items:         items,
			Number:        req.Page,
			Size:          req.Size,
			TotalElements: total,
			TotalPages:    int((total + int64(req.Size) - 1) / int64(req.Size)),
		}, nil
	})
	if err != nil {
		return Page{}, err
	}
	return v.(Page), nil
}

func (s *TodoService) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dom.Todo{}, notFound(err, id)
	}
	return t, nil
}

func (s *TodoService) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *TodoService) Delete(ctx context.Context, id int64) error {
	return notFound(s.repo.Delete(ctx, id), id)
}

// Replace overwrites every mutable field of the todo with id. All
// violations of candidate are reported together.
func (s *TodoService) Replace(ctx context.Context, id int64, candidate dom.Todo) (dom.Todo, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return dom.Todo{}, err
	}
	if vs := s.validator.ValidateAll(candidate); vs != nil {
		return dom.Todo{}, vs
	}
	existing.Title = candidate.Title
	existing.Description = candidate.Description
	existing.TargetDate = dom.Date(candidate.TargetDate)
	existing.Priority = candidate.Priority
	t, err := s.repo.Update(ctx, existing)
	if err != nil {
		return dom.Todo{}, notFound(err, id)
	}
	return t, nil
}

// Patch applies req field by field. The first invalid field aborts the
// update and nothing is written.
func (s *TodoService) Patch(ctx context.Context, id int64, req validation.Request) (dom.Todo, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return dom.Todo{}, err
	}
	patched, err := s.validator.Apply(existing, req)
	if err != nil {
		return dom.Todo{}, err
	}
	t, err := s.repo.Update(ctx, patched)
	if err != nil {
		return dom.Todo{}, notFound(err, id)
	}
	return t, nil
}

func notFound(err error, id int64) error {
	if errors.Is(err, repo.ErrNoRows) {
		return &NotFoundError{ID: id}
	}
	return err
}
