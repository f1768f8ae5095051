// Package guest builds the reference WebAssembly guest for the bridge.
//
// The guest imports <module>.complete(handle i32, value i64) -> i32 and
// exports functions with the signature (handle i32, value i64) -> i32:
//
//	run        completes the handle once and returns the status
//	run_twice  completes it twice and returns the second status
//	noop       returns 0 without completing anything
//	spin       loops forever without completing; only a closed context stops it
package guest

import "github.com/wippyai/async-bridge/wasm"

// Export names.
const (
	Run      = "run"
	RunTwice = "run_twice"
	Noop     = "noop"
	Spin     = "spin"
)

// CompleteFunc is the imported completion function name.
const CompleteFunc = "complete"

// Module returns the encoded guest importing from importModule.
func Module(importModule string) []byte {
	return Build(importModule).Encode()
}

// Build returns the guest before encoding.
func Build(importModule string) *wasm.Module {
	m := &wasm.Module{}
	sig := m.AddType(wasm.FuncType{
		Params:  []wasm.ValType{wasm.ValI32, wasm.ValI64},
		Results: []wasm.ValType{wasm.ValI32},
	})
	m.Imports = []wasm.Import{{Module: importModule, Name: CompleteFunc, TypeIdx: sig}}

	complete := []byte{wasm.OpLocalGet, 0, wasm.OpLocalGet, 1, wasm.OpCall, 0}

	bodies := []struct {
		name string
		code []byte
	}{
		{Run, concat(complete, []byte{wasm.OpEnd})},
		{RunTwice, concat(complete, []byte{wasm.OpDrop}, complete, []byte{wasm.OpEnd})},
		{Noop, concat(i32Const(0), []byte{wasm.OpEnd})},
		{Spin, concat([]byte{wasm.OpLoop, wasm.BlockEmpty, wasm.OpBr, 0, wasm.OpEnd}, i32Const(-1), []byte{wasm.OpEnd})},
	}

	base := uint32(m.NumImportedFuncs())
	for i, b := range bodies {
		m.Funcs = append(m.Funcs, sig)
		m.Exports = append(m.Exports, wasm.Export{Name: b.name, Idx: base + uint32(i)})
		m.Code = append(m.Code, wasm.FuncBody{Code: b.code})
	}
	return m
}

func i32Const(v int32) []byte {
	return append([]byte{wasm.OpI32Const}, wasm.EncodeLEB128s(v)...)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
