package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "github.com/mauriciosoaresd/todo-study-spring/internal/domain"
	"github.com/mauriciosoaresd/todo-study-spring/internal/repo"
)

func seed(t *testing.T, r *repo.MemTodoRepo) []dom.Todo {
	t.Helper()
	base := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	in := []dom.Todo{
		{Title: "Learn AWS", Description: "Learn AWS Cloud, get certified.", TargetDate: base, Priority: 3},
		{Title: "Learn Spring", Description: "Learn Spring Framework and some starters.", TargetDate: base.AddDate(0, -6, 0), Priority: 4},
		{Title: "Learn RabbitMQ", Description: "Learn messaging and streaming broker RabbitMQ", TargetDate: base, Priority: 2},
	}
	out := make([]dom.Todo, len(in))
	for i, todo := range in {
		created, err := r.Create(context.Background(), todo)
		require.NoError(t, err)
		out[i] = created
	}
	return out
}

func ids(list []dom.Todo) []int64 {
	out := make([]int64, len(list))
	for i, t := range list {
		out[i] = t.ID
	}
	return out
}

func TestMemTodoRepo_CreateAssignsIDs(t *testing.T) {
	r := repo.NewMemTodoRepo()
	todos := seed(t, r)

	assert.Equal(t, []int64{1, 2, 3}, ids(todos))

	got, err := r.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, todos[1], got)
}

func TestMemTodoRepo_List(t *testing.T) {
	r := repo.NewMemTodoRepo()
	seed(t, r)

	tests := []struct {
		name string
		q    repo.ListQuery
		want []int64
	}{
		{"id desc", repo.ListQuery{Limit: 20, Sort: dom.Sort{Field: dom.FieldID, Direction: dom.Desc}}, []int64{3, 2, 1}},
		{"id asc", repo.ListQuery{Limit: 20, Sort: dom.Sort{Field: dom.FieldID, Direction: dom.Asc}}, []int64{1, 2, 3}},
		{"priority asc", repo.ListQuery{Limit: 20, Sort: dom.Sort{Field: dom.FieldPriority, Direction: dom.Asc}}, []int64{3, 1, 2}},
		{"title asc", repo.ListQuery{Limit: 20, Sort: dom.Sort{Field: dom.FieldTitle, Direction: dom.Asc}}, []int64{1, 3, 2}},
		{"target date asc ties by id", repo.ListQuery{Limit: 20, Sort: dom.Sort{Field: dom.FieldTargetDate, Direction: dom.Asc}}, []int64{2, 1, 3}},
		{"second page", repo.ListQuery{Offset: 2, Limit: 2, Sort: dom.Sort{Field: dom.FieldID, Direction: dom.Asc}}, []int64{3}},
		{"past the end", repo.ListQuery{Offset: 10, Limit: 2}, []int64{}},
		{"negative offset", repo.ListQuery{Offset: -9223372036854775776, Limit: 20}, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := r.List(context.Background(), tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(list))
		})
	}
}

func TestMemTodoRepo_UpdateDeleteExists(t *testing.T) {
	ctx := context.Background()
	r := repo.NewMemTodoRepo()
	todos := seed(t, r)

	changed := todos[0]
	changed.Priority = 1
	updated, err := r.Update(ctx, changed)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Priority)

	require.NoError(t, r.Delete(ctx, 1))
	ok, err := r.Exists(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	assert.ErrorIs(t, r.Delete(ctx, 1), repo.ErrNoRows)
	_, err = r.GetByID(ctx, 1)
	assert.ErrorIs(t, err, repo.ErrNoRows)
	_, err = r.Update(ctx, changed)
	assert.ErrorIs(t, err, repo.ErrNoRows)
}

func TestMemTodoRepo_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.NewMemTodoRepo().GetByID(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
