package domain

import "fmt"

// ValidationError carries per-field messages keyed by the request path of the
// offending field, e.g. "po_number" or "items.2.category_id". Nested item
// paths use the zero-based index of the item in the request array.
type ValidationError struct {
	Details map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Details: make(map[string][]string)}
}

// Add appends a message for the given field path.
func (e *ValidationError) Add(field string, message string) {
	e.Details[field] = append(e.Details[field], message)
}

// AddItem appends a message for a nested item field, items.<index>.<field>.
func (e *ValidationError) AddItem(index int, field string, message string) {
	e.Add(fmt.Sprintf("items.%d.%s", index, field), message)
}

func (e *ValidationError) Empty() bool {
	return len(e.Details) == 0
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid data in %d field(s)", len(e.Details))
}
