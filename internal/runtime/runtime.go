package runtime

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/rzbill/sift/internal/checkpoint"
	cfgpkg "github.com/rzbill/sift/internal/config"
	"github.com/rzbill/sift/internal/logclient"
	"github.com/rzbill/sift/internal/logstore"
	"github.com/rzbill/sift/internal/reconcile"
	pebblestore "github.com/rzbill/sift/internal/storage/pebble"
)

// Options for building the Runtime.
type Options struct {
	DataDir       string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
	Logger        *zap.Logger
}

// Runtime wires storage, config, and the embedded log store for a
// single-binary instance.
type Runtime struct {
	db     *pebblestore.DB
	store  *logstore.Store
	config cfgpkg.Config
	logger *zap.Logger
}

// Open initializes the underlying storage and returns a Runtime.
func Open(opts Options) (*Runtime, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	db, err := pebblestore.Open(pebblestore.Options{
		DataDir:       opts.DataDir,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
	})
	if err != nil {
		return nil, err
	}
	return &Runtime{
		db:     db,
		store:  logstore.Open(db),
		config: opts.Config,
		logger: opts.Logger,
	}, nil
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CheckHealth performs a simple storage health check.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	it, err := r.db.NewIter(nil)
	if err != nil {
		return err
	}
	return it.Close()
}

// Config returns the loaded configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }

// LogStore returns the embedded topic log store.
func (r *Runtime) LogStore() *logstore.Store { return r.store }

// Checkpoint opens the checkpoint store for the configured location.
func (r *Runtime) Checkpoint() (*checkpoint.Store, error) {
	return checkpoint.OpenStore(r.db, r.config.Checkpoint)
}

// NewReconciler builds a Reconciler over the embedded store from the
// loaded configuration. metrics may be nil.
func (r *Runtime) NewReconciler(metrics reconcile.Metrics) (*reconcile.Reconciler, error) {
	if err := r.config.Validate(); err != nil {
		return nil, err
	}
	cp, err := r.Checkpoint()
	if err != nil {
		return nil, err
	}
	open := func() (logclient.Reader, error) {
		return logclient.NewEmbedded(r.store, r.config.MaxPollRecords), nil
	}
	return reconcile.New(reconcile.Options{
		Offsets:       cp.Offsets(),
		Commits:       cp.Commits(),
		OpenSource:    open,
		OpenSink:      open,
		SourceTopic:   r.config.SourceTopic,
		SinkTopic:     r.config.SinkTopic,
		IdentityField: r.config.IdentityField,
		PollTimeout:   r.config.PollTimeout(),
		Logger:        r.logger,
		Metrics:       metrics,
	})
}
