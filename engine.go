package metascope

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/openmeta/metascope/internal/binary"
	"github.com/openmeta/metascope/internal/catalog"
	"github.com/openmeta/metascope/internal/merge"
	"github.com/openmeta/metascope/internal/registry"
	"github.com/openmeta/metascope/internal/sniff"
	"github.com/openmeta/metascope/internal/types"
)

// Engine dispatches extraction requests: sniff, select plugins, invoke
// with failure isolation, merge, and build the envelope.
//
// An Engine is safe for concurrent use. The zero-cost way to get one with
// defaults is the package-level ExtractMetadata.
type Engine struct {
	defaults *options
}

// New creates an Engine. Options set engine-wide defaults that individual
// Extract calls may override.
func New(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Engine{defaults: o}
}

// defaultEngine serves the package-level entry point.
var defaultEngine = New()

// ExtractMetadata is the single public operation the rest of the system
// calls: extract a file's metadata at the given tier.
//
// The tier string accepts both vocabularies (free/professional/forensic/
// enterprise and free/starter/premium/super).
func ExtractMetadata(path string, tier string) (*Envelope, error) {
	t, err := ParseTier(tier)
	if err != nil {
		return nil, err
	}
	return defaultEngine.Extract(context.Background(), path, WithTier(t))
}

// invocation is one planned plugin run for one candidate format.
type invocation struct {
	plugin registry.Plugin
	format types.Format
}

// outcome is the result slot for one invocation, indexed by plan order so
// that merging stays deterministic under concurrent execution.
type outcome struct {
	result  *types.Result
	err     error
	elapsed time.Duration
}

// Extract runs the full pipeline for one file and always returns a
// well-formed envelope.
//
// Only a missing or unreadable path yields a non-nil error; the same
// InputError is also set on the envelope. Plugin failures, timeouts, and
// unknown formats degrade to partial (or empty) results plus diagnostics,
// never to a request-level error.
func (e *Engine) Extract(ctx context.Context, path string, opts ...Option) (*Envelope, error) {
	o := e.requestOptions(opts)
	start := time.Now()

	env := &Envelope{
		ID:   uuid.NewString(),
		Path: path,
	}

	// Fatal input check happens once, up front.
	f, err := os.Open(path)
	if err != nil {
		return e.abort(env, start, &types.InputError{Path: path, Reason: "cannot open input", Err: err})
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return e.abort(env, start, &types.InputError{Path: path, Reason: "cannot stat input", Err: err})
	}
	if stat.IsDir() {
		return e.abort(env, start, &types.InputError{Path: path, Reason: "input is a directory"})
	}

	sr := binary.NewSafeReader(f, stat.Size(), path)

	// Sniffing. An empty candidate list is a normal outcome: the request
	// proceeds to merging with zero plugin results.
	candidates, diags := sniff.Sniff(sr)
	env.Candidates = candidates
	env.Diagnostics = append(env.Diagnostics, diags...)

	// Plugin selection: candidate confidence order, registration order
	// within a format. A plugin supporting several matched formats runs
	// once, for the highest-ranked candidate that selected it.
	reg := o.registry
	plan := planInvocations(reg, candidates)

	// Invoking, with per-plugin isolation.
	outcomes := e.dispatch(ctx, o, sr, plan)

	var inputs []merge.Input
	for i, inv := range plan {
		out := outcomes[i]
		run := PluginRun{
			Plugin:  inv.plugin.Name(),
			Format:  inv.format,
			Elapsed: out.elapsed,
		}
		if out.err != nil {
			run.Err = out.err.Error()
			o.logger.Warn("plugin failed",
				"plugin", inv.plugin.Name(),
				"format", string(inv.format),
				"path", path,
				"error", out.err)
		} else {
			run.Fields = len(out.result.Fields)
			inputs = append(inputs, merge.Input{Plugin: inv.plugin.Name(), Result: out.result})
		}
		env.Runs = append(env.Runs, run)
	}

	// Merging and tiering.
	merged := merge.Merge(inputs, o.tier, o.display, o.catalog)
	for _, d := range merged.Diagnostics {
		o.logger.Debug("catalog inventory gap", "field", d.Field, "path", path)
	}
	env.Diagnostics = append(env.Diagnostics, merged.Diagnostics...)

	// Envelope assembly: counts mirror the filtered map, ordering is
	// stable regardless of plugin execution order.
	env.Fields = merged.Visible
	env.FieldsExtracted = len(merged.Visible)
	env.LockedFields = merged.Locked
	if env.LockedFields == nil {
		env.LockedFields = []string{}
	}
	env.Elapsed = time.Since(start)
	return env, nil
}

// ExtractMany extracts metadata from multiple files concurrently.
//
// Envelopes are returned in input order. Per-file input errors are
// contained in their envelopes; the returned error is non-nil only when
// the context is cancelled.
func (e *Engine) ExtractMany(ctx context.Context, paths []string, opts ...Option) ([]*Envelope, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	envs := make([]*Envelope, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			env, _ := e.Extract(ctx, path, opts...)
			envs[i] = env
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return envs, nil
}

// requestOptions layers per-request options over engine defaults and
// resolves the catalog and registry fallbacks.
func (e *Engine) requestOptions(opts []Option) *options {
	o := *e.defaults
	for _, opt := range opts {
		opt(&o)
	}
	if o.catalog == nil {
		o.catalog = catalog.Default()
	}
	if o.registry == nil {
		o.registry = registry.Default()
	}
	return &o
}

// abort finishes a request on a fatal input error: the envelope carries
// the error and empty field maps, and the error is also returned.
func (e *Engine) abort(env *Envelope, start time.Time, ierr *types.InputError) (*Envelope, error) {
	env.Err = ierr
	env.Error = ierr.Error()
	env.Fields = []VisibleField{}
	env.LockedFields = []string{}
	env.Elapsed = time.Since(start)
	return env, ierr
}

// planInvocations resolves candidates to an ordered invocation list.
func planInvocations(reg *registry.Registry, candidates []types.FormatCandidate) []invocation {
	var plan []invocation
	selected := make(map[string]bool)
	for _, c := range candidates {
		for _, p := range reg.Lookup(c.Format) {
			if selected[p.Name()] {
				continue
			}
			selected[p.Name()] = true
			plan = append(plan, invocation{plugin: p, format: c.Format})
		}
	}
	return plan
}

// dispatch runs the planned invocations and fills one outcome slot per
// invocation.
//
// Same-format plugins run sequentially in plan order; distinct formats may
// run in parallel when concurrency allows. Slot indexing keeps the merge
// input order equal to plan order either way.
func (e *Engine) dispatch(ctx context.Context, o *options, sr *binary.SafeReader, plan []invocation) []outcome {
	outcomes := make([]outcome, len(plan))

	if o.concurrency <= 1 {
		for i, inv := range plan {
			outcomes[i] = e.invoke(ctx, o, inv.plugin, sr)
		}
		return outcomes
	}

	// Group plan indexes by format so same-format order is preserved.
	var formats []types.Format
	byFormat := make(map[types.Format][]int)
	for i, inv := range plan {
		if _, ok := byFormat[inv.format]; !ok {
			formats = append(formats, inv.format)
		}
		byFormat[inv.format] = append(byFormat[inv.format], i)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for _, format := range formats {
		idxs := byFormat[format]
		g.Go(func() error {
			for _, i := range idxs {
				outcomes[i] = e.invoke(gctx, o, plan[i].plugin, sr)
			}
			return nil
		})
	}
	// Workers only report outcomes through their slots; Wait cannot fail.
	_ = g.Wait()
	return outcomes
}

// invoke runs one plugin inside the isolation boundary: panic recovery,
// per-plugin timeout, and malformed-result checks. Whatever goes wrong is
// returned as the outcome error and never propagates further.
func (e *Engine) invoke(ctx context.Context, o *options, p registry.Plugin, sr *binary.SafeReader) outcome {
	ctx, cancel := context.WithTimeout(ctx, o.pluginTimeout)
	defer cancel()

	type reply struct {
		result *types.Result
		err    error
	}
	ch := make(chan reply, 1)
	start := time.Now()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- reply{nil, fmt.Errorf("plugin panic: %v", r)}
			}
		}()
		result, err := p.Extract(ctx, sr)
		ch <- reply{result, err}
	}()

	select {
	case <-ctx.Done():
		// Abandon the in-flight goroutine; the cancelled context is its
		// best-effort stop signal. Its buffered send cannot block.
		return outcome{err: fmt.Errorf("plugin timed out after %s: %w", o.pluginTimeout, ctx.Err()), elapsed: time.Since(start)}
	case r := <-ch:
		elapsed := time.Since(start)
		if r.err != nil {
			return outcome{err: r.err, elapsed: elapsed}
		}
		if err := validateResult(p.Name(), r.result); err != nil {
			return outcome{err: err, elapsed: elapsed}
		}
		return outcome{result: r.result, elapsed: elapsed}
	}
}

// validateResult rejects results the merge pass cannot use.
func validateResult(plugin string, r *types.Result) error {
	if r == nil {
		return &types.MalformedResultError{Plugin: plugin, Reason: "nil result"}
	}
	for _, f := range r.Fields {
		if f.Name == "" {
			return &types.MalformedResultError{Plugin: plugin, Reason: "empty field name"}
		}
	}
	return nil
}
