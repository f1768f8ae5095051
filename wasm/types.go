package wasm

// WebAssembly binary format magic number and version.
const (
	// Magic is the WebAssembly binary magic number ("\0asm" in little-endian).
	Magic uint32 = 0x6D736100

	// Version is the supported WebAssembly binary format version.
	Version uint32 = 0x01
)

// Section IDs, in the order they must appear.
const (
	SectionType     byte = 1
	SectionImport   byte = 2
	SectionFunction byte = 3
	SectionExport   byte = 7
	SectionCode     byte = 10
)

// KindFunc is the import/export descriptor for functions.
const KindFunc byte = 0

// FuncTypeByte prefixes every function type.
const FuncTypeByte byte = 0x60

// ValType is a core value type encoding.
type ValType byte

const (
	ValI32 ValType = 0x7F
	ValI64 ValType = 0x7E
	ValF32 ValType = 0x7D
	ValF64 ValType = 0x7C
)

func (v ValType) String() string {
	switch v {
	case ValI32:
		return "i32"
	case ValI64:
		return "i64"
	case ValF32:
		return "f32"
	case ValF64:
		return "f64"
	default:
		return "unknown"
	}
}

// BlockEmpty is the block type of a block, loop or if with no results.
const BlockEmpty byte = 0x40

// Opcodes used by guest bodies.
const (
	OpLoop     byte = 0x03
	OpBr       byte = 0x0C
	OpEnd      byte = 0x0B
	OpCall     byte = 0x10
	OpDrop     byte = 0x1A
	OpLocalGet byte = 0x20
	OpI32Const byte = 0x41
)

// Module is an encodable core module.
type Module struct {
	Types   []FuncType
	Imports []Import
	Funcs   []uint32 // type index per defined function
	Exports []Export
	Code    []FuncBody
}

// FuncType is a function signature.
type FuncType struct {
	Params  []ValType
	Results []ValType
}

// Import is a function import.
type Import struct {
	Module  string
	Name    string
	TypeIdx uint32
}

// Export is a function export. Idx counts imported functions first.
type Export struct {
	Name string
	Idx  uint32
}

// FuncBody holds a function's locals and instructions, including the final OpEnd.
type FuncBody struct {
	Locals []LocalEntry
	Code   []byte
}

// LocalEntry declares Count locals of one type.
type LocalEntry struct {
	Count uint32
	Type  ValType
}

// NumImportedFuncs returns the number of imported functions.
func (m *Module) NumImportedFuncs() int {
	return len(m.Imports)
}

// AddType appends ft unless an equal type exists and returns its index.
func (m *Module) AddType(ft FuncType) uint32 {
	for i, existing := range m.Types {
		if typesEqual(existing, ft) {
			return uint32(i)
		}
	}
	m.Types = append(m.Types, ft)
	return uint32(len(m.Types) - 1)
}

func typesEqual(a, b FuncType) bool {
	if len(a.Params) != len(b.Params) || len(a.Results) != len(b.Results) {
		return false
	}
	for i := range a.Params {
		if a.Params[i] != b.Params[i] {
			return false
		}
	}
	for i := range a.Results {
		if a.Results[i] != b.Results[i] {
			return false
		}
	}
	return true
}
