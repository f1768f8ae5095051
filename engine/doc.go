// Package engine runs WebAssembly guests as a foreign runtime that completes
// host-side tasks.
//
// The host issues a handle for each pending task and passes it to the guest.
// The guest reports the outcome by calling the imported host function
//
//	(import "async-bridge" "complete" (func (param i32 i64) (result i32)))
//
// with the handle and a 64-bit value. The call is routed to task.Complete on
// whatever goroutine is running the guest, which releases every host goroutine
// waiting on that task.
//
// # Usage
//
//	b, err := engine.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close(ctx)
//
//	mod, err := b.Load(ctx, "guest", wasmBytes)
//	handle, t, err := b.Issue()
//
//	go b.Invoke(ctx, mod, "run", uint64(handle), 42)
//	v := t.Await() // 42
//
// # Status Codes
//
// complete returns a status to the guest:
//
//	0  StatusOK                the value was stored
//	1  StatusAlreadyCompleted  the handle was completed before; value ignored
//	2  StatusUnknownHandle     the handle was never issued or was released
//
// A second completion is a guest bug. It never overwrites the stored value and
// is logged at error level.
//
// # Handle Lifetime
//
// Handles stay valid after completion so late guest calls see
// StatusAlreadyCompleted rather than StatusUnknownHandle. Only Release frees
// them; a released handle stays unknown even after its table slot is reused.
// Close drops every handle and closes the wazero runtime; tasks
// that were never completed stay pending, so waiters that may outlive the
// bridge should use a bounded wait. Guest calls stop when the context passed
// to Invoke ends.
//
// # Thread Safety
//
// Bridge is safe for concurrent use. Invoke looks up the export on every call,
// so the same guest module may be invoked from several goroutines.
package engine
