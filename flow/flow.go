package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/flowruntime/fbp/graph"
	"github.com/flowruntime/fbp/loader"
	"github.com/flowruntime/fbp/observe"
)

// Option configures a Flow at construction time.
type Option func(*config)

type config struct {
	logger        observe.Logger
	loaderOptions []loader.Option
}

func defaultConfig() config {
	return config{logger: observe.NewSlogLogger(observe.DefaultLogger())}
}

// WithLogger overrides the Logger used for this flow's lifecycle events.
// Defaults to a slog logger at the level reported by observe.LevelFromEnv.
func WithLogger(l observe.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithLoaderOptions forwards opts to the [loader.Loader] used to build the
// flow's root graph — e.g. loader.WithSource to register node classes, or
// loader.WithMacros to override the built-in macro library.
func WithLoaderOptions(opts ...loader.Option) Option {
	return func(c *config) { c.loaderOptions = append(c.loaderOptions, opts...) }
}

// Flow wraps a loaded root graph and drives its run/stop/shutdown
// lifecycle. A Flow is built once from a declaration file and then run; it
// is not safe to Run the same Flow concurrently from two goroutines.
type Flow struct {
	path   string
	root   *graph.Graph
	logger observe.Logger
}

// FromFile loads the flow declaration at path, resolving every import
// through the registries opts configure, and returns a Flow ready to Run.
func FromFile(path string, opts ...Option) (*Flow, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	l := loader.New(cfg.loaderOptions...)
	root, err := l.LoadFile(path)
	if err != nil {
		return nil, err
	}

	return &Flow{path: path, root: root, logger: cfg.logger}, nil
}

// Run starts the flow's root graph in its own goroutine and returns
// immediately; observe completion via [Flow.Stopped]. ctx cancellation
// forcefully unblocks any node mid-iteration, distinct from the cooperative
// shutdown [Flow.Stop] requests.
func (f *Flow) Run(ctx context.Context) {
	ctx = observe.ContextWithLogger(ctx, f.logger)
	f.logger.Info(ctx, "flow starting", observe.String("path", f.path))
	go func() {
		start := time.Now()
		f.root.Run(ctx)
		f.logger.Info(ctx, "flow stopped", observe.String("path", f.path), observe.Int("elapsed_ms", int(time.Since(start).Milliseconds())))
	}()
}

// RunSync runs the flow's root graph to completion, then releases every
// node's resources via Shutdown. It returns once both steps are done,
// joining any error Shutdown reports.
func (f *Flow) RunSync(ctx context.Context) error {
	ctx = observe.ContextWithLogger(ctx, f.logger)
	f.logger.Info(ctx, "flow starting", observe.String("path", f.path))
	start := time.Now()
	f.root.Run(ctx)
	f.logger.Info(ctx, "flow stopped", observe.String("path", f.path), observe.Int("elapsed_ms", int(time.Since(start).Milliseconds())))
	return f.Shutdown(ctx)
}

// Stop requests cooperative shutdown of every node in the flow. It does not
// block; observe completion via [Flow.Stopped].
func (f *Flow) Stop() { f.root.Stop() }

// Stopped returns a channel closed once the root graph's Run call has
// returned.
func (f *Flow) Stopped() <-chan struct{} { return f.root.Stopped() }

// Shutdown releases every node's resources. Call it once Stopped is closed;
// calling it before then may race a node still finishing its last
// iteration.
func (f *Flow) Shutdown(ctx context.Context) error {
	if err := f.root.Shutdown(ctx); err != nil {
		return fmt.Errorf("flow %q: %w", f.path, err)
	}
	return nil
}

// Root returns the flow's underlying root graph, for callers that need
// direct access to its ports (e.g. to feed an external input pin).
func (f *Flow) Root() *graph.Graph { return f.root }

// ToDict returns the flow's declaration as originally parsed, re-read from
// disk. The runtime never mutates a flow's topology once built, so this is
// always a faithful round-trip of the source file rather than a snapshot
// of any runtime-mutated state.
func (f *Flow) ToDict() (*loader.Declaration, error) {
	return loader.ParseFile(f.path)
}

// Describe renders the flow's declaration as indented JSON, for debug
// logging and the fbprun "describe" command.
func (f *Flow) Describe() (string, error) {
	decl, err := f.ToDict()
	if err != nil {
		return "", err
	}
	encoded, err := json.MarshalIndent(decl, "", "  ")
	if err != nil {
		return "", fmt.Errorf("flow %q: describe: %w", f.path, err)
	}
	return string(encoded), nil
}
