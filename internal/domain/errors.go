package entity

import "strings"

// FieldErrors collects per-field validation messages the way the API
// reports them: a 400 body keyed by field name.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, messages := range e {
		parts = append(parts, field+": "+strings.Join(messages, "; "))
	}
	return strings.Join(parts, ", ")
}
