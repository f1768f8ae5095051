package engine

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/async-bridge/errors"
	"github.com/wippyai/async-bridge/resource"
	"github.com/wippyai/async-bridge/task"
)

// Bridge owns a wazero runtime and the tasks its guests complete.
type Bridge struct {
	runtime    wazero.Runtime
	host       api.Module
	table      *resource.Table[*task.Task[int64]]
	logger     *zap.Logger
	moduleName string
	closed     atomic.Bool
}

// New creates a bridge with its host module instantiated.
func New(ctx context.Context, opts ...Option) (*Bridge, error) {
	cfg := buildConfig(opts)

	runtimeCfg := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)
	if cfg.memoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.memoryLimitPages)
	}

	b := &Bridge{
		runtime:    wazero.NewRuntimeWithConfig(ctx, runtimeCfg),
		table:      resource.NewTable[*task.Task[int64]](),
		logger:     cfg.logger,
		moduleName: cfg.moduleName,
	}
	b.table.Subscribe(resource.ObserverFunc(b.onHandleEvent))

	host, err := b.buildHostModule(ctx)
	if err != nil {
		_ = b.runtime.Close(ctx)
		return nil, errors.Registration(errors.PhaseHost, b.moduleName, HostFuncComplete, err)
	}
	b.host = host

	return b, nil
}

// ModuleName returns the import module name guests must use.
func (b *Bridge) ModuleName() string {
	return b.moduleName
}

// Issue creates a pending task and the handle the guest completes it with.
func (b *Bridge) Issue(opts ...task.Option) (uint32, *task.Task[int64], error) {
	if b.closed.Load() {
		return 0, nil, errors.Closed(errors.PhaseHost)
	}

	t := task.New[int64](opts...)
	handle, err := b.table.Insert(t)
	if stderrors.Is(err, resource.ErrClosed) {
		return 0, nil, errors.Closed(errors.PhaseHost)
	}
	if err != nil {
		return 0, nil, errors.Wrap(errors.PhaseHost, errors.KindInvalidInput, err, "issue handle")
	}
	return uint32(handle), t, nil
}

// Complete stores v for handle from the host side.
func (b *Bridge) Complete(handle uint32, v int64) error {
	if b.closed.Load() {
		return errors.Closed(errors.PhaseComplete)
	}
	t, ok := b.table.Get(resource.Handle(handle))
	if !ok {
		return errors.NotFound(errors.PhaseComplete, handle)
	}
	if err := t.Complete(v); err != nil {
		return fmt.Errorf("complete handle %d: %w", handle, err)
	}
	return nil
}

func (b *Bridge) completeFromGuest(handle uint32, v int64) Status {
	t, ok := b.table.Get(resource.Handle(handle))
	if !ok {
		return StatusUnknownHandle
	}
	if err := t.Complete(v); err != nil {
		return StatusAlreadyCompleted
	}
	b.logger.Debug("guest completed task",
		zap.Uint32("handle", handle),
		zap.String("task", t.ID()))
	return StatusOK
}

// Await waits for handle's task. The handle stays live, so later Awaits
// return the same value and a repeated guest completion is rejected as
// already completed. Call Release once the handle is no longer needed.
func (b *Bridge) Await(ctx context.Context, handle uint32) (int64, error) {
	if b.closed.Load() {
		return 0, errors.Closed(errors.PhaseAwait)
	}
	t, ok := b.table.Get(resource.Handle(handle))
	if !ok {
		return 0, errors.NotFound(errors.PhaseAwait, handle)
	}
	return t.AwaitContext(ctx)
}

// Release frees handle. Later guest calls with it see StatusUnknownHandle,
// even after the slot is reused for a new handle.
func (b *Bridge) Release(handle uint32) bool {
	_, ok := b.table.Remove(resource.Handle(handle))
	return ok
}

// Handles returns the number of live handles.
func (b *Bridge) Handles() int {
	return b.table.Len()
}

// Pending returns the number of live handles whose task is not completed.
func (b *Bridge) Pending() int {
	n := 0
	b.table.Each(func(_ resource.Handle, t *task.Task[int64]) bool {
		if !t.IsCompleted() {
			n++
		}
		return true
	})
	return n
}

// Load compiles and instantiates a guest module under name.
func (b *Bridge) Load(ctx context.Context, name string, wasm []byte) (api.Module, error) {
	if b.closed.Load() {
		return nil, errors.Closed(errors.PhaseLoad)
	}

	compiled, err := b.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInstantiation, err, "compile guest")
	}

	mod, err := b.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		_ = compiled.Close(ctx)
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInstantiation, err, "instantiate guest "+name)
	}

	b.logger.Debug("guest loaded", zap.String("guest", name))
	return mod, nil
}

// Invoke calls a guest export. Completions the guest makes are delivered
// before Invoke returns. When ctx is done the guest module is closed and the
// call returns an error.
func (b *Bridge) Invoke(ctx context.Context, mod api.Module, fn string, params ...uint64) ([]uint64, error) {
	if b.closed.Load() {
		return nil, errors.Closed(errors.PhaseInvoke)
	}

	f := mod.ExportedFunction(fn)
	if f == nil {
		return nil, errors.New(errors.PhaseInvoke, errors.KindNotFound).
			Detail("export %q not found in %s", fn, mod.Name()).
			Build()
	}

	results, err := f.Call(ctx, params...)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseInvoke, errors.KindInvocation, err, fmt.Sprintf("call %s.%s", mod.Name(), fn))
	}
	return results, nil
}

// Close drops every handle and closes the runtime with its guests.
func (b *Bridge) Close(ctx context.Context) error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	dropped := b.table.Close()
	pending := 0
	for _, t := range dropped {
		if !t.IsCompleted() {
			pending++
		}
	}
	if pending > 0 {
		b.logger.Warn("bridge closed with pending tasks", zap.Int("pending", pending))
	}

	return b.runtime.Close(ctx)
}

func (b *Bridge) onHandleEvent(e resource.Event) {
	b.logger.Debug("handle "+e.Type.String(), zap.Uint32("handle", uint32(e.Handle)))
}
