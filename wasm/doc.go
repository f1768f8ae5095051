// Package wasm encodes small WebAssembly core modules.
//
// It covers what host-completion guests need: function types, function
// imports, function exports and bodies given as raw instruction bytes.
//
//	m := &wasm.Module{
//	    Types:   []wasm.FuncType{{Params: []wasm.ValType{wasm.ValI32}}},
//	    Imports: []wasm.Import{{Module: "env", Name: "log", TypeIdx: 0}},
//	    Funcs:   []uint32{0},
//	    Exports: []wasm.Export{{Name: "run", Idx: 1}},
//	    Code:    []wasm.FuncBody{{Code: []byte{wasm.OpLocalGet, 0, wasm.OpCall, 0, wasm.OpEnd}}},
//	}
//	data := m.Encode()
//
// Function indices count imports first, so the first defined function above
// has index 1.
package wasm
