package reconcile

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/rzbill/sift/internal/checkpoint"
	"github.com/rzbill/sift/internal/logclient"
	"github.com/rzbill/sift/pkg/batch"
)

// DefaultPollTimeout bounds each poll against the source or sink log.
const DefaultPollTimeout = 5 * time.Second

// Options configures a Reconciler. Offsets, Commits, the two reader
// factories, both topics and IdentityField are required.
type Options struct {
	// Offsets and Commits are the two checkpoint logs for the location
	// this reconciler serves.
	Offsets checkpoint.OffsetLog
	Commits checkpoint.CommitLog

	// OpenSource and OpenSink build fresh readers. A new reader is opened
	// for each pass and closed before Reconcile returns; readers are never
	// reused across passes.
	OpenSource func() (logclient.Reader, error)
	OpenSink   func() (logclient.Reader, error)

	SourceTopic string
	SinkTopic   string

	// IdentityField names the string field that identifies the same logical
	// record across source and sink.
	IdentityField string

	// PollTimeout bounds each poll. Zero selects DefaultPollTimeout.
	PollTimeout time.Duration

	Logger  *zap.Logger
	Metrics Metrics
}

// Reconciler filters a candidate batch down to the rows that were not
// already published during a prior, interrupted cycle. It holds no state
// between passes.
type Reconciler struct {
	offsets checkpoint.OffsetLog
	commits checkpoint.CommitLog

	openSource func() (logclient.Reader, error)
	openSink   func() (logclient.Reader, error)

	sourceTopic   string
	sinkTopic     string
	identityField string
	pollTimeout   time.Duration

	logger  *zap.Logger
	metrics Metrics
}

// New validates opts and builds a Reconciler.
func New(opts Options) (*Reconciler, error) {
	switch {
	case opts.Offsets == nil || opts.Commits == nil:
		return nil, errors.New("reconcile: checkpoint logs are required")
	case opts.OpenSource == nil || opts.OpenSink == nil:
		return nil, errors.New("reconcile: reader factories are required")
	case opts.SourceTopic == "" || opts.SinkTopic == "":
		return nil, errors.New("reconcile: source and sink topics are required")
	case opts.IdentityField == "":
		return nil, errors.New("reconcile: identity field is required")
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = DefaultPollTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = NoopMetrics{}
	}
	return &Reconciler{
		offsets:       opts.Offsets,
		commits:       opts.Commits,
		openSource:    opts.OpenSource,
		openSink:      opts.OpenSink,
		sourceTopic:   opts.SourceTopic,
		sinkTopic:     opts.SinkTopic,
		identityField: opts.IdentityField,
		pollTimeout:   opts.PollTimeout,
		logger:        opts.Logger,
		metrics:       opts.Metrics,
	}, nil
}

// Reconcile returns b with any already-published rows removed.
//
// When the checkpoint logs agree the input batch is returned as-is and no
// source or sink I/O happens. Otherwise the pass recovers how many source
// records were in flight during the interrupted cycle, scans the sink tail
// for what actually got published, and filters b by identity key. Any
// failure aborts the pass; the input batch is never mutated.
func (r *Reconciler) Reconcile(ctx context.Context, b batch.Batch) (batch.Batch, error) {
	cycle, err := checkpoint.DetectUncommittedCycle(r.offsets, r.commits)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		r.metrics.ObserveCheck(false)
		r.logger.Debug("checkpoint logs agree, skipping reconciliation")
		return b, nil
	}
	r.metrics.ObserveCheck(true)
	r.logger.Info("uncommitted cycle detected",
		zap.Uint64("cycle", uint64(cycle.Batch)),
		zap.String("source", cycle.Offsets.Source),
		zap.Int("partitions", len(cycle.Offsets.Offsets)),
	)

	pending, err := r.countPendingSource(ctx, cycle.Offsets)
	if err != nil {
		return nil, err
	}
	r.metrics.ObservePending(pending)
	if pending == 0 {
		r.logger.Info("no records were pending in the interrupted cycle")
		return b, nil
	}

	published, err := r.latestSinkRecords(ctx, pending)
	if err != nil {
		return nil, err
	}

	var recovered int
	for _, part := range published {
		recovered += len(part)
	}
	seen, err := publishedIdentities(published, r.identityField)
	if err != nil {
		return nil, err
	}
	out, err := filterRows(b, r.identityField, seen)
	if err != nil {
		return nil, err
	}
	r.metrics.ObserveFilter(len(out), len(b)-len(out))
	r.logger.Info("reconciliation complete",
		zap.Uint64("cycle", uint64(cycle.Batch)),
		zap.Int("pending", pending),
		zap.Int("sink_recovered", recovered),
		zap.Int("kept", len(out)),
		zap.Int("dropped", len(b)-len(out)),
	)
	return out, nil
}
