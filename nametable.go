package uasset

import (
	"io"

	"github.com/galehaven/uasset/internal/uversion"
)

// nameTable is the deduplicated string pool shared by the name-table
// reader and writer facades (spec §4.3). Equivalent to the Rust source's
// NameTableReader.name_map/name_map_lookup pair.
type nameTable struct {
	entries []string
	index   map[string]int32
}

func newNameTable() *nameTable {
	return &nameTable{index: make(map[string]int32)}
}

// AddNameReference returns the existing index for s when allowDup is
// false and s is already present; otherwise it appends s and returns the
// new index (spec §3 invariant, §8 property 3).
func (t *nameTable) AddNameReference(s string, allowDup bool) int32 {
	if !allowDup {
		if idx, ok := t.index[s]; ok {
			return idx
		}
	}
	idx := int32(len(t.entries))
	t.entries = append(t.entries, s)
	t.index[s] = idx
	return idx
}

// Resolve returns the string stored at idx.
func (t *nameTable) Resolve(idx int32) (string, error) {
	if idx < 0 || int(idx) >= len(t.entries) {
		return "", ErrNameIndexOutOfRange
	}
	return t.entries[idx], nil
}

// Len reports the number of interned strings.
func (t *nameTable) Len() int { return len(t.entries) }

// seedLegacyNameTable implements the pre-FixedTags name-table read-back
// pass (spec §4.3): seek to the header-declared offset, read the count
// and each string (plus, at engine >= NameHashesSerialized, two discarded
// per-entry hashes), then restore the original cursor position.
func seedLegacyNameTable(r *primitiveReader, offset int64, matrix *uversion.Matrix) (*nameTable, error) {
	table := newNameTable()
	if offset <= 0 {
		return table, nil
	}

	original := r.Position()
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, err
	}

	count, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, NewInvalidFileError(r.Position(), "corrupted name table: negative count %d", count)
	}

	for i := int32(0); i < count; i++ {
		s, isNull, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		if isNull {
			return nil, NewInvalidFileError(r.Position(), "name table entry %d is missing a name", i)
		}
		table.AddNameReference(s, true)

		if matrix.AtLeast(uversion.VerUE4NameHashesSerialized) {
			if _, err := r.ReadU16(); err != nil { // non-case-preserving hash, discarded
				return nil, err
			}
			if _, err := r.ReadU16(); err != nil { // case-preserving hash, discarded
				return nil, err
			}
		}
	}

	if _, err := r.Seek(original, io.SeekStart); err != nil {
		return nil, err
	}
	return table, nil
}

// writeLegacyNameTable writes the count-prefixed string list at the
// writer's current position (used once the body has been serialized and
// the offset is known), recomputing per-entry hashes rather than
// preserving whatever the source file's hashes happened to be — the open
// question in spec.md §9 ("recompute vs reproduce bit-for-bit") is
// resolved here in favor of recompute, since this codec never retains the
// original hash bytes past the read-back pass (DESIGN.md).
func writeLegacyNameTable(w *primitiveWriter, table *nameTable, matrix *uversion.Matrix) error {
	if err := w.WriteI32(int32(table.Len())); err != nil {
		return err
	}
	for _, s := range table.entries {
		if _, err := w.WriteString(s, false); err != nil {
			return err
		}
		if matrix.AtLeast(uversion.VerUE4NameHashesSerialized) {
			hash := fnameHash16(s)
			if err := w.WriteU16(hash); err != nil {
				return err
			}
			if err := w.WriteU16(hash); err != nil {
				return err
			}
		}
	}
	return nil
}

// readInlineNameTable reads the count-prefixed string list at the
// reader's current position and leaves the cursor positioned right after
// it, for formats (the asset registry, spec §4.8) where the name table
// sits inline in read order rather than behind a header-declared offset
// the reader must seek to and back out of (contrast seedLegacyNameTable).
func readInlineNameTable(r *primitiveReader, matrix *uversion.Matrix) (*nameTable, error) {
	table := newNameTable()

	count, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, NewInvalidFileError(r.Position(), "corrupted name table: negative count %d", count)
	}

	for i := int32(0); i < count; i++ {
		s, isNull, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		if isNull {
			return nil, NewInvalidFileError(r.Position(), "name table entry %d is missing a name", i)
		}
		table.AddNameReference(s, true)

		if matrix.AtLeast(uversion.VerUE4NameHashesSerialized) {
			if _, err := r.ReadU16(); err != nil {
				return nil, err
			}
			if _, err := r.ReadU16(); err != nil {
				return nil, err
			}
		}
	}
	return table, nil
}

// fnameHash16 is a simple 16-bit case-insensitive hash used to
// regenerate the per-entry hash fields on write, since the codec does not
// retain the original hash bytes (see writeLegacyNameTable).
func fnameHash16(s string) uint16 {
	var h uint32 = 5381
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		h = ((h << 5) + h) + uint32(c)
	}
	return uint16(h ^ (h >> 16))
}
