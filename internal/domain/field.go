package domain

import "strings"

// Field names a Todo attribute. It is used for sorting and for partial updates.
type Field int

const (
	FieldID Field = iota
	FieldTitle
	FieldDescription
	FieldTargetDate
	FieldPriority
)

var fieldNames = [...]string{
	FieldID:          "id",
	FieldTitle:       "title",
	FieldDescription: "description",
	FieldTargetDate:  "targetDate",
	FieldPriority:    "priority",
}

// Fields lists every Field in declaration order.
func Fields() []Field {
	return []Field{FieldID, FieldTitle, FieldDescription, FieldTargetDate, FieldPriority}
}

// String returns the JSON name of the field.
func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// Label is the upper-case enum label used in parameter errors.
func (f Field) Label() string {
	return strings.ToUpper(f.String())
}

// Mutable reports whether the field may be changed after creation.
func (f Field) Mutable() bool {
	return f != FieldID && f.Valid()
}

func (f Field) Valid() bool {
	return f >= FieldID && f <= FieldPriority
}

// ParseField matches s against field names case-insensitively.
func ParseField(s string) (Field, bool) {
	for i, name := range fieldNames {
		if strings.EqualFold(s, name) {
			return Field(i), true
		}
	}
	return 0, false
}

// Direction is a sort order.
type Direction int

const (
	Desc Direction = iota
	Asc
)

func (d Direction) String() string {
	if d == Asc {
		return "ASC"
	}
	return "DESC"
}

// ParseDirection accepts "asc" or "desc" in any case.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return Asc, true
	case "desc":
		return Desc, true
	}
	return 0, false
}

// Sort orders a listing.
type Sort struct {
	Field     Field
	Direction Direction
}
