package repo

import (
	"context"
	"fmt"

	dom "github.com/mauriciosoaresd/todo-study-spring/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoRows is returned by every TodoRepo when the id is not stored.
var ErrNoRows = pgx.ErrNoRows

// ListQuery selects one page of todos.
type ListQuery struct {
	Offset int64
	Limit  int
	Sort   dom.Sort
}

type TodoRepo interface {
	Create(ctx context.Context, t dom.Todo) (dom.Todo, error)
	GetByID(ctx context.Context, id int64) (dom.Todo, error)
	List(ctx context.Context, q ListQuery) ([]dom.Todo, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, t dom.Todo) (dom.Todo, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// sortColumns whitelists ORDER BY targets.
var sortColumns = map[dom.Field]string{
	dom.FieldID:          "id",
	dom.FieldTitle:       "title",
	dom.FieldDescription: "description",
	dom.FieldTargetDate:  "target_date",
	dom.FieldPriority:    "priority",
}

const todoColumns = `id, title, description, target_date, priority`

type PGTodoRepo struct {
	db *pgxpool.Pool
}

func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

func scanTodo(row pgx.Row) (dom.Todo, error) {
	var t dom.Todo
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.TargetDate, &t.Priority)
	if err == nil {
		t.TargetDate = dom.Date(t.TargetDate)
	}
	return t, err
}

func (r *PGTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	query := `
		INSERT INTO todos (title, description, target_date, priority)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + todoColumns
	return scanTodo(r.db.QueryRow(ctx, query, t.Title, t.Description, t.TargetDate, t.Priority))
}

func (r *PGTodoRepo) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`
	return scanTodo(r.db.QueryRow(ctx, query, id))
}

func (r *PGTodoRepo) List(ctx context.Context, q ListQuery) ([]dom.Todo, error) {
	col, ok := sortColumns[q.Sort.Field]
	if !ok {
		return nil, fmt.Errorf("unsupported sort field %v", q.Sort.Field)
	}
	dir := "DESC"
	if q.Sort.Direction == dom.Asc {
		dir = "ASC"
	}
	order := col + " " + dir
	if col != "id" {
		order += ", id " + dir
	}
	query := `SELECT ` + todoColumns + ` FROM todos ORDER BY ` + order + ` LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]dom.Todo, 0, q.Limit)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTodoRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM todos`).Scan(&n)
	return n, err
}

func (r *PGTodoRepo) Update(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	query := `
		UPDATE todos SET title = $2, description = $3, target_date = $4, priority = $5
		WHERE id = $1
		RETURNING ` + todoColumns
	return scanTodo(r.db.QueryRow(ctx, query, t.ID, t.Title, t.Description, t.TargetDate, t.Priority))
}

func (r *PGTodoRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}
	return nil
}

func (r *PGTodoRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM todos WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}
