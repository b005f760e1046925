// Package batch provides the in-flight candidate batch view used by
// reconciliation. A Batch is never mutated; filtering produces a new view.
package batch

import "fmt"

// Row is one decoded record the host pipeline is about to publish.
type Row map[string]any

// Batch is an ordered collection of candidate rows.
type Batch []Row

// Key reads the string identity value stored under field.
// Returns an error when the field is absent or not a string.
func (r Row) Key(field string) (string, error) {
	v, ok := r[field]
	if !ok {
		return "", fmt.Errorf("row has no %q field", field)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q is %T, want string", field, v)
	}
	return s, nil
}

// Filter returns a new Batch holding only the rows for which keep returns
// true. Row order is preserved and rows are shared, not copied.
func (b Batch) Filter(keep func(Row) bool) Batch {
	out := make(Batch, 0, len(b))
	for _, r := range b {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
