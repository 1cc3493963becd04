package uasset

import (
	"github.com/galehaven/uasset/internal/uversion"
)

// Writer is the write-side counterpart of Reader (spec §4.4).
type Writer struct {
	*primitiveWriter
	Matrix *uversion.Matrix

	inlineNames bool
	lookup      map[string]int32 // pre-built string -> index, modern/legacy alike

	MapKeyOverride   map[string]string
	MapValueOverride map[string]string
}

// NewRawWriter builds a Writer that encodes FNames as inline strings.
func NewRawWriter(matrix *uversion.Matrix) *Writer {
	return &Writer{
		primitiveWriter: newPrimitiveWriter(),
		Matrix:          matrix,
		inlineNames:     true,
	}
}

// NewNameTableWriter builds a Writer that encodes FNames as (index,
// number) pairs resolved against a pre-built string->index lookup (spec
// §4.3: "Name-table writer references a pre-built lookup; write_fname
// emits (idx, number) only").
func NewNameTableWriter(matrix *uversion.Matrix, lookup map[string]int32) *Writer {
	return &Writer{
		primitiveWriter: newPrimitiveWriter(),
		Matrix:          matrix,
		lookup:          lookup,
	}
}

// WriteFName emits one FName in whichever encoding this Writer uses.
func (w *Writer) WriteFName(f FName) error {
	if w.inlineNames {
		if f.Content == "" {
			_, err := w.WriteString("", true)
			return err
		}
		_, err := w.WriteString(f.Content, false)
		return err
	}

	idx, ok := w.lookup[f.Content]
	if !ok {
		return NewInvalidFileError(w.Position(), "fname %q not present in name table", f.Content)
	}
	if err := w.WriteI32(idx); err != nil {
		return err
	}
	return w.WriteI32(f.Number)
}

// WritePropertyGuid writes the presence byte followed by the GUID when
// present (spec §4.4).
func (w *Writer) WritePropertyGuid(g *Guid) error {
	if g == nil {
		return w.WriteBool(false)
	}
	if err := w.WriteBool(true); err != nil {
		return err
	}
	return w.WriteGuid(*g)
}

// WritePackageIndex writes a single signed i32 PackageIndex.
func (w *Writer) WritePackageIndex(p PackageIndex) error {
	return w.WriteI32(p.Index)
}

// WriteNamespacedString writes the (namespace, value) pair verbatim.
func (w *Writer) WriteNamespacedString(ns NamespacedString) error {
	if ns.Namespace != nil {
		if _, err := w.WriteString(*ns.Namespace, false); err != nil {
			return err
		}
	} else {
		if _, err := w.WriteString("", true); err != nil {
			return err
		}
	}
	if ns.Value != nil {
		if _, err := w.WriteString(*ns.Value, false); err != nil {
			return err
		}
	} else {
		if _, err := w.WriteString("", true); err != nil {
			return err
		}
	}
	return nil
}

// reserveI32 writes a placeholder i32 and returns its offset, for the
// back-patch protocol every variable-length container uses (spec §4.5,
// §9).
func (w *Writer) reserveI32() (int64, error) {
	pos := w.Position()
	if err := w.WriteI32(0); err != nil {
		return 0, err
	}
	return pos, nil
}

// patchI32 overwrites the placeholder at offset with value, then
// restores the writer's cursor to resumeAt (typically the end of the
// just-written body).
func (w *Writer) patchI32(offset int64, value int32, resumeAt int64) error {
	w.SetPosition(offset)
	if err := w.WriteI32(value); err != nil {
		return err
	}
	w.SetPosition(resumeAt)
	return nil
}
