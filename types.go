package uasset

import (
	"fmt"

	"github.com/google/uuid"
)

// FName is an interned name with a numeric suffix (spec §3). Two FNames
// are equal iff their content and number both match.
type FName struct {
	Content string
	Number  int32
}

// NoneFName is the sentinel that terminates a property list (spec §4.5,
// §4.6 NormalExport).
var NoneFName = FName{Content: "None"}

// IsNone reports whether f is the list-terminating sentinel.
func (f FName) IsNone() bool {
	return f.Content == "None" && f.Number == 0
}

// String renders an FName the way Unreal tooling displays one:
// "Content" when Number is zero, "Content_N" otherwise.
func (f FName) String() string {
	if f.Number == 0 {
		return f.Content
	}
	return fmt.Sprintf("%s_%d", f.Content, f.Number)
}

// Guid is 16 raw bytes (spec §3). It is backed by google/uuid purely for
// parsing/formatting convenience; on-disk it is always exactly 16 bytes,
// written and read verbatim with no byte-swapping.
type Guid [16]byte

// String formats g in canonical UUID form.
func (g Guid) String() string {
	return uuid.UUID(g).String()
}

// IsZero reports whether every byte of g is zero.
func (g Guid) IsZero() bool {
	return g == Guid{}
}

// NewGuid generates a random Guid (handy for tests and for newly created
// exports that need a fresh property GUID).
func NewGuid() Guid {
	return Guid(uuid.New())
}

// PackageIndex is a signed reference to an import (negative), an export
// (positive), or null (zero); spec §3. Dereferencing requires the
// containing package, which is why PackageIndex carries no resolution
// logic itself — see Asset.ResolveImport/ResolveExportClass.
type PackageIndex struct {
	Index int32
}

// IsNull reports whether the index is the null reference.
func (p PackageIndex) IsNull() bool { return p.Index == 0 }

// IsImport reports whether the index references an import.
func (p PackageIndex) IsImport() bool { return p.Index < 0 }

// IsExport reports whether the index references an export.
func (p PackageIndex) IsExport() bool { return p.Index > 0 }

// ImportIndex returns the zero-based import-table index this
// PackageIndex references. Only meaningful when IsImport is true.
func (p PackageIndex) ImportIndex() int {
	return int(-p.Index) - 1
}

// ExportIndex returns the zero-based export-table index this
// PackageIndex references. Only meaningful when IsExport is true.
func (p PackageIndex) ExportIndex() int {
	return int(p.Index) - 1
}

// NamespacedString is an (optional namespace, optional value) string
// pair (spec §3), used by LevelExport's level-type field.
type NamespacedString struct {
	Namespace *string
	Value     *string
}
