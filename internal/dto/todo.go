package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	dom "github.com/mauriciosoaresd/todo-study-spring/internal/domain"
)

// Date is a calendar date on the wire as "2006-01-02". Null or absent
// decodes to the zero time.
type Date struct{ t time.Time }

func NewDate(t time.Time) Date { return Date{t: dom.Date(t)} }

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("targetDate: expected a yyyy-MM-dd string")
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = time.Time{}
		return nil
	}
	parsed, err := dom.ParseDate(strings.TrimSpace(*raw))
	if err != nil {
		return fmt.Errorf("targetDate: text %q could not be parsed as yyyy-MM-dd", *raw)
	}
	d.t = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.t.Format(dom.DateLayout))
}

// Time returns the date for use in service/domain.
func (d Date) Time() time.Time { return d.t }

// TodoRequest is the full todo body of POST and PUT. id is accepted and ignored.
type TodoRequest struct {
	ID          int64  `json:"id"`
	Title       string `json:"title" example:"Learn Go"`
	Description string `json:"description" example:"Read the tour and write a service"`
	TargetDate  Date   `json:"targetDate" swaggertype:"string" example:"2030-01-01"`
	Priority    int    `json:"priority" example:"2"`
}

// Todo converts the request to the domain entity.
func (r TodoRequest) Todo() dom.Todo {
	return dom.Todo{
		Title:       r.Title,
		Description: r.Description,
		TargetDate:  r.TargetDate.Time(),
		Priority:    r.Priority,
	}
}

type TodoResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TargetDate  Date   `json:"targetDate" swaggertype:"string" example:"2030-01-01"`
	Priority    int    `json:"priority"`
}

func NewTodoResponse(t dom.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		TargetDate:  NewDate(t.TargetDate),
		Priority:    t.Priority,
	}
}

type PageMetadata struct {
	Size          int   `json:"size"`
	Number        int   `json:"number"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

type PageResponse struct {
	Content []TodoResponse `json:"content"`
	Page    PageMetadata   `json:"page"`
}

// ErrorDetails is the body of every error response. Details is either a
// string or a map of field name to message.
type ErrorDetails struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Details   any       `json:"details"`
}
