package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mauriciosoaresd/todo-study-spring/internal/domain"
)

// Kind tags the JSON shape a raw value arrived in.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindBool
	KindComposite
)

// Raw is a client-supplied value before coercion.
type Raw struct {
	kind Kind
	text string
}

func Null() Raw               { return Raw{kind: KindNull} }
func Text(s string) Raw       { return Raw{kind: KindText, text: s} }
func Number(lit string) Raw   { return Raw{kind: KindNumber, text: lit} }
func Composite(js string) Raw { return Raw{kind: KindComposite, text: js} }

func Bool(b bool) Raw {
	if b {
		return Raw{kind: KindBool, text: "true"}
	}
	return Raw{kind: KindBool, text: "false"}
}

func (r Raw) Kind() Kind { return r.kind }

// Render returns the value as text. Numbers keep their JSON literal and
// composites are rendered as compact JSON. Null has no text form.
func (r Raw) Render() (string, bool) {
	if r.kind == KindNull {
		return "", false
	}
	return r.text, true
}

// rawFromJSON classifies a single JSON value.
func rawFromJSON(msg json.RawMessage) (Raw, error) {
	msg = bytes.TrimSpace(msg)
	if len(msg) == 0 {
		return Raw{}, errors.New("empty value")
	}
	switch msg[0] {
	case 'n':
		return Null(), nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(msg, &b); err != nil {
			return Raw{}, err
		}
		return Bool(b), nil
	case '"':
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return Raw{}, err
		}
		return Text(s), nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, msg); err != nil {
			return Raw{}, err
		}
		return Composite(buf.String()), nil
	default:
		return Number(string(msg)), nil
	}
}

// Entry is one (field, value) pair of a partial update. Key keeps the name
// as sent; Field is only meaningful when Known reports true.
type Entry struct {
	Key   string
	Field domain.Field
	Value Raw
}

// Known reports whether the entry names one of the mutable todo fields.
func (e Entry) Known() bool {
	return e.Field.Mutable()
}

// NewEntry resolves key against the mutable fields. Matching is exact.
func NewEntry(key string, v Raw) Entry {
	e := Entry{Key: key, Field: -1, Value: v}
	if f, ok := domain.ParseField(key); ok && f.Mutable() && f.String() == key {
		e.Field = f
	}
	return e
}

// Request is a partial update in the order the client sent its keys.
type Request []Entry

// UnmarshalJSON decodes a JSON object, preserving key order. A repeated key
// keeps the position of its first occurrence and the value of its last.
func (r *Request) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("partial update must be a JSON object")
	}

	var out Request
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}
		var msg json.RawMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("value of %q: %w", key, err)
		}
		v, err := rawFromJSON(msg)
		if err != nil {
			return fmt.Errorf("value of %q: %w", key, err)
		}
		if i, dup := seen[key]; dup {
			out[i].Value = v
			continue
		}
		seen[key] = len(out)
		out = append(out, NewEntry(key, v))
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected data after partial update object")
	}
	*r = out
	return nil
}
