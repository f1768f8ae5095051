package engine

import (
	"context"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

// HostFuncComplete is the name of the completion import.
const HostFuncComplete = "complete"

// Status is returned to the guest by complete.
type Status uint32

const (
	StatusOK Status = iota
	StatusAlreadyCompleted
	StatusUnknownHandle
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusAlreadyCompleted:
		return "already_completed"
	case StatusUnknownHandle:
		return "unknown_handle"
	default:
		return "unknown"
	}
}

var (
	completeParams  = []api.ValueType{api.ValueTypeI32, api.ValueTypeI64}
	completeResults = []api.ValueType{api.ValueTypeI32}
)

// buildHostModule instantiates the import module guests complete handles through.
func (b *Bridge) buildHostModule(ctx context.Context) (api.Module, error) {
	builder := b.runtime.NewHostModuleBuilder(b.moduleName)

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(b.hostComplete), completeParams, completeResults).
		WithParameterNames("handle", "value").
		WithResultNames("status").
		Export(HostFuncComplete)

	return builder.Instantiate(ctx)
}

// hostComplete runs on the goroutine executing the guest.
func (b *Bridge) hostComplete(_ context.Context, mod api.Module, stack []uint64) {
	handle := api.DecodeU32(stack[0])
	value := int64(stack[1])

	status := b.completeFromGuest(handle, value)
	if status != StatusOK {
		b.logger.Error("guest completion rejected",
			zap.String("guest", mod.Name()),
			zap.Uint32("handle", handle),
			zap.Int64("value", value),
			zap.Stringer("status", status))
	}
	stack[0] = api.EncodeU32(uint32(status))
}
