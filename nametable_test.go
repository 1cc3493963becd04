package uasset

import (
	"testing"

	"github.com/galehaven/uasset/internal/uversion"
)

func TestNameTableAddNameReferenceDedupes(t *testing.T) {
	table := newNameTable()

	first := table.AddNameReference("Foo", false)
	second := table.AddNameReference("Foo", false)
	third := table.AddNameReference("Bar", false)

	if first != second {
		t.Fatalf("AddNameReference did not dedupe: %d != %d", first, second)
	}
	if third == first {
		t.Fatalf("AddNameReference collapsed distinct names")
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
}

func TestNameTableAddNameReferenceAllowDup(t *testing.T) {
	table := newNameTable()

	first := table.AddNameReference("Foo", true)
	second := table.AddNameReference("Foo", true)

	if first == second {
		t.Fatalf("allowDup=true should always append a fresh entry")
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
}

func TestNameTableResolveOutOfRange(t *testing.T) {
	table := newNameTable()
	table.AddNameReference("Foo", false)

	if _, err := table.Resolve(5); err != ErrNameIndexOutOfRange {
		t.Fatalf("Resolve(5) err = %v, want ErrNameIndexOutOfRange", err)
	}
}

func TestSeedLegacyNameTableSeeksAndRestores(t *testing.T) {
	matrix := uversion.NewMatrix(uversion.VerUE4_27)

	w := newPrimitiveWriter()
	// Header field before the name-table region.
	if err := w.WriteI32(0xAAAA); err != nil {
		t.Fatalf("WriteI32 failed: %v", err)
	}
	nameTableOffset := w.Position()
	if err := writeLegacyNameTable(w, buildTable(t, "Alpha", "Beta"), matrix); err != nil {
		t.Fatalf("writeLegacyNameTable failed: %v", err)
	}
	afterNameTable := w.Position()
	// Header field after the name-table region, at the position the
	// reader should land back on once seedLegacyNameTable restores it.
	if err := w.WriteI32(0xBBBB); err != nil {
		t.Fatalf("WriteI32 failed: %v", err)
	}

	r := newPrimitiveReader(w.Bytes())
	headerBefore, err := r.ReadI32()
	if err != nil || headerBefore != 0xAAAA {
		t.Fatalf("ReadI32 = %v, %v; want 0xAAAA, nil", headerBefore, err)
	}
	restorePos := r.Position()

	table, err := seedLegacyNameTable(r, nameTableOffset, matrix)
	if err != nil {
		t.Fatalf("seedLegacyNameTable failed: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("table.Len() = %d, want 2", table.Len())
	}
	if r.Position() != restorePos {
		t.Fatalf("seedLegacyNameTable left cursor at %d, want restored position %d", r.Position(), restorePos)
	}

	// Cursor is back where it started; read the name table region
	// manually to confirm afterNameTable lines up, then the trailing
	// header field.
	if _, err := r.Seek(afterNameTable, 0); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	headerAfter, err := r.ReadI32()
	if err != nil || headerAfter != 0xBBBB {
		t.Fatalf("ReadI32 = %v, %v; want 0xBBBB, nil", headerAfter, err)
	}
}

func TestReadInlineNameTableAdvancesPastTable(t *testing.T) {
	matrix := uversion.NewMatrix(uversion.VerUE4_27)

	w := newPrimitiveWriter()
	if err := writeLegacyNameTable(w, buildTable(t, "Gamma", "Delta", "Epsilon"), matrix); err != nil {
		t.Fatalf("writeLegacyNameTable failed: %v", err)
	}
	tableEnd := w.Position()
	if err := w.WriteI32(42); err != nil {
		t.Fatalf("WriteI32 failed: %v", err)
	}

	r := newPrimitiveReader(w.Bytes())
	table, err := readInlineNameTable(r, matrix)
	if err != nil {
		t.Fatalf("readInlineNameTable failed: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("table.Len() = %d, want 3", table.Len())
	}
	if r.Position() != tableEnd {
		t.Fatalf("readInlineNameTable left cursor at %d, want %d (start of trailing field)", r.Position(), tableEnd)
	}

	trailing, err := r.ReadI32()
	if err != nil || trailing != 42 {
		t.Fatalf("ReadI32 = %v, %v; want 42, nil", trailing, err)
	}
}

func buildTable(t *testing.T, names ...string) *nameTable {
	t.Helper()
	table := newNameTable()
	for _, n := range names {
		table.AddNameReference(n, true)
	}
	return table
}
