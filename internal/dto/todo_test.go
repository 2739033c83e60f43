package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "github.com/mauriciosoaresd/todo-study-spring/internal/domain"
	"github.com/mauriciosoaresd/todo-study-spring/internal/dto"
)

func TestTodoRequest_Decode(t *testing.T) {
	var req dto.TodoRequest
	err := json.Unmarshal([]byte(`{"id":0,"title":"Learn AWS","description":"Learn AWS Cloud","targetDate":"2027-01-01","priority":3}`), &req)
	require.NoError(t, err)

	assert.Equal(t, dom.Todo{
		Title:       "Learn AWS",
		Description: "Learn AWS Cloud",
		TargetDate:  time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		Priority:    3,
	}, req.Todo())
}

func TestDate_Decode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    time.Time
		wantErr bool
	}{
		{"date", `"2027-03-04"`, time.Date(2027, 3, 4, 0, 0, 0, 0, time.UTC), false},
		{"null", `null`, time.Time{}, false},
		{"empty", `""`, time.Time{}, false},
		{"rfc3339 rejected", `"2027-03-04T10:00:00Z"`, time.Time{}, true},
		{"number rejected", `20270304`, time.Time{}, true},
		{"bad month", `"2027-13-01"`, time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d dto.Date
			err := json.Unmarshal([]byte(tt.body), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Time())
		})
	}
}

func TestTodoResponse_Encode(t *testing.T) {
	b, err := json.Marshal(dto.NewTodoResponse(dom.Todo{
		ID:          1,
		Title:       "Learn AWS",
		Description: "Learn AWS Cloud, get certifieds.",
		TargetDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Priority:    3,
	}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"title":"Learn AWS","description":"Learn AWS Cloud, get certifieds.","targetDate":"2025-01-01","priority":3}`, string(b))
}
