// Package resource maps integer handles to host values.
//
// A foreign runtime cannot hold Go pointers, so the bridge hands it a uint32
// handle for each pending task and resolves the handle when the runtime calls
// back.
//
// # Handle Table
//
//	table := resource.NewTable[*task.Task[int64]]()
//
//	// Insert a value, get a handle
//	handle, err := table.Insert(t)
//
//	// Retrieve value by handle
//	t, ok := table.Get(handle)
//
//	// Remove and get value
//	t, ok := table.Remove(handle)
//
// Handle 0 is never issued. Freed slots are reused newest first, each time
// under a new generation kept in the handle's high byte. A removed handle
// stays invalid after its slot is reused, until the generation wraps after
// 256 reuses of that slot.
//
// # Observers
//
// Register observers to track handle lifecycle events:
//
//	table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    switch e.Type {
//	    case resource.EventCreated:
//	        log.Printf("handle %d issued", e.Handle)
//	    case resource.EventDropped:
//	        log.Printf("handle %d released", e.Handle)
//	    }
//	}))
//
// # Memory Management
//
// Entries are not garbage collected. The owner must Remove a handle once the
// foreign side is done with it, or Close the table to drop everything.
package resource
