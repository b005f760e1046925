package reconcile

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rzbill/sift/internal/logclient"
	"github.com/rzbill/sift/pkg/batch"
)

// publishedIdentities extracts the identity key from every recovered sink
// record and collapses them into a membership set. A record whose payload
// cannot produce a string identity is fatal.
func publishedIdentities(parts [][]logclient.Record, field string) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	for _, recs := range parts {
		for _, rec := range recs {
			where := fmt.Sprintf("sink %s/%d@%d", rec.Topic, rec.Partition, rec.Offset)
			var payload map[string]any
			if err := json.Unmarshal(rec.Value, &payload); err != nil {
				return nil, &MalformedRecordError{Record: where, Field: field, Cause: err}
			}
			v, ok := payload[field]
			if !ok {
				return nil, &MalformedRecordError{Record: where, Field: field, Cause: errors.New("field absent")}
			}
			s, ok := v.(string)
			if !ok {
				return nil, &MalformedRecordError{Record: where, Field: field, Cause: fmt.Errorf("field is %T, want string", v)}
			}
			set[s] = struct{}{}
		}
	}
	return set, nil
}

// filterRows produces a new view of b without the rows whose identity key
// was already published. Rows are shared with the input, never mutated.
func filterRows(b batch.Batch, field string, published map[string]struct{}) (batch.Batch, error) {
	for i, row := range b {
		if _, err := row.Key(field); err != nil {
			return nil, &MalformedRecordError{Record: fmt.Sprintf("candidate row %d", i), Field: field, Cause: err}
		}
	}
	return b.Filter(func(row batch.Row) bool {
		key, _ := row.Key(field)
		_, dup := published[key]
		return !dup
	}), nil
}
