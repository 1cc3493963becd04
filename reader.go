package uasset

import (
	"io"

	"github.com/galehaven/uasset/internal/uversion"
)

// ImportRef and ExportClassRef are the package-level lookups a Reader
// needs to dereference a PackageIndex (spec §4.4): the import table by
// negative index, and the owning export's class FName by positive
// index. A *Asset implements both once its import/export tables are
// populated; tests and the registry codec can supply lighter stand-ins.
type ImportRef interface {
	ResolveImport(idx PackageIndex) (FName, bool)
}

type ExportClassRef interface {
	ResolveExportClass(idx PackageIndex) (FName, bool)
}

// Reader is the polymorphic stream described in spec §4.4: the
// primitive stream plus name-table resolution, version queries, and the
// per-property map-key/value override dictionaries Map properties
// consult when their on-disk header doesn't fully describe the key/value
// kind. Two name-resolution modes share one type instead of the Rust
// source's trait-object split (RawReader vs NameTableReader) because Go
// has no cheap equivalent of dispatching through a trait object here
// without heap-allocating on every primitive call; a mode flag plus an
// optional table field gets the same behavior at the cost of one branch
// in ReadFName instead of a vtable indirection — see DESIGN.md.
type Reader struct {
	*primitiveReader
	Matrix *uversion.Matrix

	inlineNames bool
	names       *nameTable

	Imports ImportRef
	Exports ExportClassRef

	MapKeyOverride   map[string]string
	MapValueOverride map[string]string
}

// NewRawReader builds a Reader with no backing name table: FNames are
// encoded as inline strings, falling back to "None" on a null string
// (matching the Rust source's RawReader.read_fname).
func NewRawReader(data []byte, matrix *uversion.Matrix) *Reader {
	return &Reader{
		primitiveReader: newPrimitiveReader(data),
		Matrix:          matrix,
		inlineNames:     true,
	}
}

// NewNameTableReader builds a Reader backed by a legacy name table seeded
// from the header-declared offset (spec §4.3); FNames are encoded as two
// i32s resolved against the table.
func NewNameTableReader(data []byte, matrix *uversion.Matrix, nameTableOffset int64) (*Reader, error) {
	r := newPrimitiveReader(data)
	table, err := seedLegacyNameTable(r, nameTableOffset, matrix)
	if err != nil {
		return nil, err
	}
	return &Reader{
		primitiveReader: r,
		Matrix:          matrix,
		names:           table,
	}, nil
}

// ReadFName resolves one FName, in whichever encoding this Reader uses.
func (r *Reader) ReadFName() (FName, error) {
	if r.inlineNames {
		s, isNull, err := r.ReadString()
		if err != nil {
			return FName{}, err
		}
		if isNull {
			return FName{Content: "None"}, nil
		}
		return FName{Content: s}, nil
	}

	idx, err := r.ReadI32()
	if err != nil {
		return FName{}, err
	}
	number, err := r.ReadI32()
	if err != nil {
		return FName{}, err
	}
	content, err := r.names.Resolve(idx)
	if err != nil {
		return FName{}, err
	}
	return FName{Content: content, Number: number}, nil
}

// ReadPropertyGuid reads an optional property GUID, gated by the boolean
// byte the on-disk header carries ahead of it (spec §4.4).
func (r *Reader) ReadPropertyGuid() (*Guid, error) {
	has, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, nil
	}
	g, err := r.ReadGuid()
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// ReadArray reads an i32 length then invokes f that many times (spec
// §4.4).
func ReadArray[T any](r *Reader, f func(*Reader) (T, error)) ([]T, error) {
	n, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	return ReadArrayWithLength(r, n, f)
}

// ReadArrayWithLength invokes f exactly n times, collecting results.
func ReadArrayWithLength[T any](r *Reader, n int32, f func(*Reader) (T, error)) ([]T, error) {
	if n < 0 {
		return nil, NewInvalidFileError(r.Position(), "negative array length %d", n)
	}
	out := make([]T, 0, n)
	for i := int32(0); i < n; i++ {
		v, err := f(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ReadPackageIndex reads a single signed i32 PackageIndex.
func (r *Reader) ReadPackageIndex() (PackageIndex, error) {
	v, err := r.ReadI32()
	return PackageIndex{Index: v}, err
}

// ReadNamespacedString reads a (namespace, value) string pair stored back
// to back. LevelExport does not use it: its level-type pair has an i32
// between the two strings and is read in LevelExport.ReadBody.
func (r *Reader) ReadNamespacedString() (NamespacedString, error) {
	ns, nsNull, err := r.ReadString()
	if err != nil {
		return NamespacedString{}, err
	}
	val, valNull, err := r.ReadString()
	if err != nil {
		return NamespacedString{}, err
	}
	out := NamespacedString{}
	if !nsNull {
		out.Namespace = &ns
	}
	if !valNull {
		out.Value = &val
	}
	return out, nil
}

var _ io.Seeker = (*primitiveReader)(nil)
