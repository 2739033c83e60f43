package validation_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauriciosoaresd/todo-study-spring/internal/domain"
	"github.com/mauriciosoaresd/todo-study-spring/internal/validation"
)

func TestRequest_KeepsKeyOrder(t *testing.T) {
	req := request(t, `{"priority":2,"title":"x","zzz":true,"description":null,"targetDate":{"a":[1, 2]}}`)

	require.Len(t, req, 5)
	keys := make([]string, len(req))
	for i, e := range req {
		keys[i] = e.Key
	}
	assert.Equal(t, []string{"priority", "title", "zzz", "description", "targetDate"}, keys)

	assert.Equal(t, domain.FieldPriority, req[0].Field)
	assert.Equal(t, validation.KindNumber, req[0].Value.Kind())
	assert.Equal(t, validation.KindText, req[1].Value.Kind())
	assert.False(t, req[2].Known())
	assert.Equal(t, validation.KindBool, req[2].Value.Kind())
	assert.Equal(t, validation.KindNull, req[3].Value.Kind())

	text, ok := req[4].Value.Render()
	require.True(t, ok)
	assert.Equal(t, `{"a":[1,2]}`, text)
}

func TestRequest_RepeatedKeyLastValueWins(t *testing.T) {
	req := request(t, `{"title":"a","priority":2,"title":"valid title"}`)

	require.Len(t, req, 2)
	assert.Equal(t, "title", req[0].Key)
	text, ok := req[0].Value.Render()
	require.True(t, ok)
	assert.Equal(t, "valid title", text)

	after, err := newValidator().Apply(sampleTodo(), req)
	require.NoError(t, err)
	assert.Equal(t, "valid title", after.Title)
	assert.Equal(t, 2, after.Priority)
}

func TestRequest_RejectsNonObject(t *testing.T) {
	for _, body := range []string{`[]`, `"title"`, `{"title":}`, `{"title":"a"} {}`} {
		var req validation.Request
		assert.Error(t, json.Unmarshal([]byte(body), &req), body)
	}
}

func TestRaw_Render(t *testing.T) {
	_, ok := validation.Null().Render()
	assert.False(t, ok)

	s, ok := validation.Bool(true).Render()
	assert.True(t, ok)
	assert.Equal(t, "true", s)

	s, _ = validation.Number("3").Render()
	assert.Equal(t, "3", s)
}
