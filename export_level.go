package uasset

// LevelExport supplements NormalExport's property bag with the ULevel
// body documented in spec §3/§4.6/§8 and
// _examples/original_source/unreal_asset/src/exports/level_export.rs:
// an unknown leading i32 (always zero), an index_data array, a
// namespaced level-type string with a null i32 spacer between its two
// strings, an unused i64(0), a flags field, a misc_category_data array
// read until one byte short of the export's own end, and a single
// trailing byte.
type LevelExport struct {
	NormalExport

	IndexData        []int32
	LevelType        NamespacedString
	FlagsProbably    uint64
	MiscCategoryData []int32
}

func (e *LevelExport) ReadBody(r *Reader, bodyEnd int64) error {
	props, err := readProperties(r)
	if err != nil {
		return err
	}
	e.NormalExport.Properties = props

	if _, err := r.ReadI32(); err != nil { // unknown, always zero
		return err
	}

	count, err := r.ReadI32()
	if err != nil {
		return err
	}
	if count < 0 {
		return NewInvalidFileError(r.Position(), "negative level index_data count %d", count)
	}
	indexData := make([]int32, count)
	for i := range indexData {
		v, err := r.ReadI32()
		if err != nil {
			return err
		}
		indexData[i] = v
	}
	e.IndexData = indexData

	namespace, nsNull, err := r.ReadString()
	if err != nil {
		return err
	}
	if _, err := r.ReadI32(); err != nil { // null spacer between the two strings
		return err
	}
	value, valNull, err := r.ReadString()
	if err != nil {
		return err
	}
	var lt NamespacedString
	if !nsNull {
		lt.Namespace = &namespace
	}
	if !valNull {
		lt.Value = &value
	}
	e.LevelType = lt

	if _, err := r.ReadI64(); err != nil { // unused, always zero
		return err
	}
	flags, err := r.ReadU64()
	if err != nil {
		return err
	}
	e.FlagsProbably = flags

	var misc []int32
	for r.Position() < bodyEnd-1 {
		v, err := r.ReadI32()
		if err != nil {
			return err
		}
		misc = append(misc, v)
	}
	e.MiscCategoryData = misc

	_, err = r.ReadU8() // single trailing byte
	return err
}

func (e *LevelExport) WriteBody(w *Writer) error {
	if err := writeProperties(w, e.NormalExport.Properties); err != nil {
		return err
	}

	if err := w.WriteI32(0); err != nil {
		return err
	}

	if err := w.WriteI32(int32(len(e.IndexData))); err != nil {
		return err
	}
	for _, v := range e.IndexData {
		if err := w.WriteI32(v); err != nil {
			return err
		}
	}

	namespace, nsNull := "", true
	if e.LevelType.Namespace != nil {
		namespace, nsNull = *e.LevelType.Namespace, false
	}
	if _, err := w.WriteString(namespace, nsNull); err != nil {
		return err
	}
	if err := w.WriteI32(0); err != nil {
		return err
	}
	value, valNull := "", true
	if e.LevelType.Value != nil {
		value, valNull = *e.LevelType.Value, false
	}
	if _, err := w.WriteString(value, valNull); err != nil {
		return err
	}

	if err := w.WriteI64(0); err != nil {
		return err
	}
	if err := w.WriteU64(e.FlagsProbably); err != nil {
		return err
	}

	for _, v := range e.MiscCategoryData {
		if err := w.WriteI32(v); err != nil {
			return err
		}
	}

	return w.WriteU8(0)
}
