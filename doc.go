// Package asyncbridge turns completions issued by a foreign runtime into
// single-assignment results that Go code can wait on.
//
// A foreign runtime (a WebAssembly guest here, a platform SDK elsewhere)
// reports an outcome through a callback on its own thread. The bridge gives
// the host a Task that any number of goroutines can block on, before or after
// the callback fires, and that can only be completed once.
//
// # Architecture Overview
//
//	asyncbridge/
//	├── task/       One-shot result handle and foreign future adapter
//	├── engine/     wazero host module that lets guests complete handles
//	├── resource/   Handle table mapping guest-visible integers to tasks
//	├── guest/      Reference guest module used by tests and examples
//	├── wasm/       Minimal core module encoder
//	├── config/     Explicit settings object (YAML)
//	├── errors/     Structured error types
//	└── cmd/bridge/ CLI
//
// # Quick Start
//
// Complete a task from Go:
//
//	t := task.New[int]()
//	go func() { _ = t.Complete(42) }()
//	v := t.Await() // 42
//
// Have a guest complete it:
//
//	b, _ := engine.New(ctx)
//	defer b.Close(ctx)
//
//	mod, _ := b.Load(ctx, "guest", wasmBytes)
//	handle, t, _ := b.Issue()
//	go b.Invoke(ctx, mod, "run", uint64(handle), 42)
//	v := t.Await()
//
// # Completion Rules
//
// A task is completed at most once. The second Complete returns an
// already-completed error and leaves the first value in place. Await never
// misses a completion that happened before it was called. Callbacks run once,
// including callbacks registered after completion.
//
// # Thread Safety
//
// Task, Bridge and the handle table are safe for concurrent use.
package asyncbridge
