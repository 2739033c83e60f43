package service_test

import (
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "github.com/mauriciosoaresd/todo-study-spring/internal/domain"
	"github.com/mauriciosoaresd/todo-study-spring/internal/repo"
	"github.com/mauriciosoaresd/todo-study-spring/internal/service"
	"github.com/mauriciosoaresd/todo-study-spring/internal/validation"
)

var now = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*service.TodoService, *repo.MemTodoRepo) {
	t.Helper()
	r := repo.NewMemTodoRepo()
	v := validation.New(func() time.Time { return now })
	return service.NewTodoService(r, v), r
}

func validTodo() dom.Todo {
	return dom.Todo{
		Title:       "integration test",
		Description: "integration test",
		TargetDate:  dom.Date(now).AddDate(0, 0, 1),
		Priority:    1,
	}
}

func patch(t *testing.T, body string) validation.Request {
	t.Helper()
	var req validation.Request
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestTodoService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	in := validTodo()
	in.ID = 99
	created, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestTodoService_CreateRejectsAllViolations(t *testing.T) {
	svc, r := newService(t)

	in := validTodo()
	in.Title = "x"
	in.Priority = 5
	_, err := svc.Create(context.Background(), in)

	var vs validation.Violations
	require.ErrorAs(t, err, &vs)
	assert.Len(t, vs, 2)
	assert.Contains(t, vs, "title")
	assert.Contains(t, vs, "priority")

	n, err := r.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTodoService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.GetByID(ctx, 55)
	assert.ErrorIs(t, err, service.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, -64545), service.ErrNotFound)

	_, err = svc.Replace(ctx, 55, validTodo())
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.Patch(ctx, 55, patch(t, `{"title":"new title"}`))
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestTodoService_Replace(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	created, err := svc.Create(ctx, validTodo())
	require.NoError(t, err)

	candidate := dom.Todo{
		Title:       "title update",
		Description: "description update",
		TargetDate:  dom.Date(now).AddDate(0, 0, 2),
		Priority:    3,
	}
	updated, err := svc.Replace(ctx, created.ID, candidate)
	require.NoError(t, err)

	candidate.ID = created.ID
	assert.Equal(t, candidate, updated)
}

func TestTodoService_ReplaceValidatesBeforeWriting(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	created, err := svc.Create(ctx, validTodo())
	require.NoError(t, err)

	_, err = svc.Replace(ctx, created.ID, dom.Todo{})
	var vs validation.Violations
	require.ErrorAs(t, err, &vs)
	assert.Len(t, vs, 4)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestTodoService_Patch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	created, err := svc.Create(ctx, validTodo())
	require.NoError(t, err)

	tomorrow := dom.Date(now).AddDate(0, 0, 1).Format(dom.DateLayout)
	updated, err := svc.Patch(ctx, created.ID, patch(t, `{"title":"new title","targetDate":"`+tomorrow+`"}`))
	require.NoError(t, err)

	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.Priority, updated.Priority)
}

func TestTodoService_PatchFailureLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	created, err := svc.Create(ctx, validTodo())
	require.NoError(t, err)

	_, err = svc.Patch(ctx, created.ID, patch(t, `{"title":"new title","priority":9}`))
	var ferr *validation.FieldError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "'Priority' must be between 1 and 4", ferr.Message)

	_, err = svc.Patch(ctx, created.ID, patch(t, `{"title":"new title","prop":"invalid"}`))
	var uerr *validation.UnexpectedFieldError
	require.ErrorAs(t, err, &uerr)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestTodoService_List(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, validTodo())
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, service.PageRequest{Page: 1, Size: 2, Sort: dom.Sort{Field: dom.FieldID, Direction: dom.Desc}})
	require.NoError(t, err)

	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 2, page.Size)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Items[0].ID)
	assert.Equal(t, int64(2), page.Items[1].ID)
}

func TestTodoService_ListRejectsBadPaging(t *testing.T) {
	svc, _ := newService(t)
	for _, req := range []service.PageRequest{
		{Page: 0, Size: 21},
		{Page: 0, Size: 0},
		{Page: -1, Size: 20},
		{Page: math.MaxInt, Size: 20},
	} {
		_, err := svc.List(context.Background(), req)
		assert.ErrorIs(t, err, service.ErrInvalidPage)
	}
}

// gatedRepo holds every Count until release is closed.
type gatedRepo struct {
	*repo.MemTodoRepo
	entered chan struct{}
	release chan struct{}
}

func (r *gatedRepo) Count(ctx context.Context) (int64, error) {
	select {
	case r.entered <- struct{}{}:
	default:
	}
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-r.release:
	}
	return r.MemTodoRepo.Count(ctx)
}

func TestTodoService_ListCallerCancelDoesNotFailOthers(t *testing.T) {
	r := &gatedRepo{
		MemTodoRepo: repo.NewMemTodoRepo(),
		entered:     make(chan struct{}, 1),
		release:     make(chan struct{}),
	}
	svc := service.NewTodoService(r, validation.New(func() time.Time { return now }))
	req := service.PageRequest{Page: 0, Size: 20}

	type result struct {
		page service.Page
		err  error
	}
	leaderCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	leader := make(chan result, 1)
	go func() {
		p, err := svc.List(leaderCtx, req)
		leader <- result{p, err}
	}()
	<-r.entered

	follower := make(chan result, 1)
	go func() {
		p, err := svc.List(context.Background(), req)
		follower <- result{p, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	close(r.release)

	got := <-follower
	require.NoError(t, got.err)
	assert.Equal(t, 20, got.page.Size)

	got = <-leader
	require.NoError(t, got.err)
}

func TestTodoService_DeleteAndExists(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	created, err := svc.Create(ctx, validTodo())
	require.NoError(t, err)

	ok, err := svc.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.Delete(ctx, created.ID))

	ok, err = svc.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
