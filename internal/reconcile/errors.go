package reconcile

import "fmt"

// ReadError wraps an I/O failure while polling the source or sink log.
// Reconciliation never retries internally; the host pipeline decides
// whether to rerun the whole cycle.
type ReadError struct {
	Op  string
	Err error
}

func (e *ReadError) Error() string { return fmt.Sprintf("reconcile: %s: %v", e.Op, e.Err) }
func (e *ReadError) Unwrap() error { return e.Err }

func readErr(op string, err error) error { return &ReadError{Op: op, Err: err} }

// MalformedRecordError reports a record whose identity field could not be
// read. Skipping such a record would under-populate the published set and
// re-publish a duplicate, so it is fatal.
type MalformedRecordError struct {
	Record string // which record, e.g. "sink events/0@42" or "candidate row 3"
	Field  string
	Cause  error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("reconcile: %s: identity field %q: %v", e.Record, e.Field, e.Cause)
}

func (e *MalformedRecordError) Unwrap() error { return e.Cause }
