package uasset

// readProperties reads a tagged-property list up to and including its
// terminating "None" sentinel (spec §4.6). Shared by every export kind
// that opens with a property bag: NormalExport, LevelExport, StructExport.
func readProperties(r *Reader) ([]*PropertyTag, error) {
	var props []*PropertyTag
	for {
		tag, err := ReadPropertyTagged(r)
		if err != nil {
			return nil, err
		}
		if tag == nil {
			return props, nil
		}
		props = append(props, tag)
	}
}

// writeProperties writes a tagged-property list followed by the
// terminating "None" sentinel; the write-side counterpart of readProperties.
func writeProperties(w *Writer, props []*PropertyTag) error {
	for _, tag := range props {
		if err := WritePropertyTagged(w, tag); err != nil {
			return err
		}
	}
	return WriteNoneSentinel(w)
}

// NormalExport is a plain tagged-property bag terminated by the "None"
// sentinel, followed by whatever trailing bytes the engine serialized
// past the property list up to the export's own end-of-body offset
// (spec §4.6 "extras") — the shape most UObject exports take.
type NormalExport struct {
	BaseExport
	Properties []*PropertyTag
	Extras     []byte
}

func (e *NormalExport) Base() *BaseExport { return &e.BaseExport }

func (e *NormalExport) ReadBody(r *Reader, bodyEnd int64) error {
	props, err := readProperties(r)
	if err != nil {
		return err
	}
	e.Properties = props

	remaining := bodyEnd - r.Position()
	if remaining < 0 {
		return NewInvalidFileError(r.Position(), "export body read %d bytes past its declared end", -remaining)
	}
	extras := make([]byte, remaining)
	if err := r.ReadExact(extras); err != nil {
		return err
	}
	e.Extras = extras
	return nil
}

func (e *NormalExport) WriteBody(w *Writer) error {
	if err := writeProperties(w, e.Properties); err != nil {
		return err
	}
	return w.WriteAll(e.Extras)
}
