package checkpoint

import (
	"errors"
	"fmt"
)

// ErrMissingOffsets reports an uncommitted cycle whose offsets entry holds
// no source offsets at all. The checkpoint is corrupt; nothing can recover
// the interrupted read position.
var ErrMissingOffsets = errors.New("checkpoint: offsets entry holds no source offsets")

// ErrMultiSource reports an offsets entry carrying positions for more than
// one logical source. Reconciliation supports exactly one source per
// checkpoint location.
var ErrMultiSource = errors.New("checkpoint: multiple source groups in one offsets entry")

// PendingCycle describes a cycle whose offsets were recorded but whose
// output was never confirmed committed.
type PendingCycle struct {
	Batch   BatchID
	Offsets SourceOffsets
}

// DetectUncommittedCycle compares the two checkpoint logs. It returns nil
// when they agree (or both are empty): the last cycle committed cleanly.
// When the offset log is ahead of the commit log it returns the read
// positions recorded for the interrupted cycle.
func DetectUncommittedCycle(offsets OffsetLog, commits CommitLog) (*PendingCycle, error) {
	oid, haveOffsets, err := offsets.LatestBatchID()
	if err != nil {
		return nil, fmt.Errorf("checkpoint: read offset log: %w", err)
	}
	if !haveOffsets {
		return nil, nil
	}
	cid, haveCommit, err := commits.LatestBatchID()
	if err != nil {
		return nil, fmt.Errorf("checkpoint: read commit log: %w", err)
	}
	// The offset log being ahead is the only trigger condition.
	if haveCommit && cid >= oid {
		return nil, nil
	}

	groups, found, err := offsets.ReadOffsets(oid)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: read offsets entry for cycle %d: %w", oid, err)
	}
	if !found || len(groups) == 0 {
		return nil, fmt.Errorf("%w (cycle %d)", ErrMissingOffsets, oid)
	}
	if len(groups) > 1 {
		return nil, fmt.Errorf("%w (cycle %d has %d)", ErrMultiSource, oid, len(groups))
	}
	return &PendingCycle{Batch: oid, Offsets: groups[0]}, nil
}
