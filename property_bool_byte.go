package uasset

func init() {
	registerProperty("BoolProperty", func() Property { return &BoolProperty{} })
}

// BoolProperty's value lives in the tag header, not the payload (spec
// §4.5 edge case); ReadPayload/WritePayload are never invoked for it
// (see ReadPropertyTagged/WritePropertyTagged), but the type still
// implements Property so it can sit in the constructor table and in any
// generic slice of Property values.
type BoolProperty struct{ Value bool }

func (p *BoolProperty) PropertyType() FName            { return FName{Content: "BoolProperty"} }
func (p *BoolProperty) ReadPayload(*Reader, *PropertyTag) error     { return nil }
func (p *BoolProperty) WritePayload(*Writer, *PropertyTag) (int32, error) { return 0, nil }

// ByteProperty has two independent wire mechanisms that must not be
// conflated (spec §4.5, §8 boundary case; _examples/original_source/
// unreal_asset/src/properties/int_property.rs's ByteProperty::new):
//
//   - a header-level enum_type: an 8-byte value read unconditionally
//     right after BoolProperty's header quirk check, before the
//     property GUID, whenever the tag carries a header at all. EnumType
//     is nil for headerless ByteProperty values (inside arrays, sets,
//     maps, where no tag header exists to carry it).
//   - a payload-level size dispatch: a declared size of 1 is a single
//     raw byte; a declared size of 0 or 8 is an 8-byte "long" value.
//     Neither case ever reads an FName.
type ByteProperty struct {
	EnumType *int64
	IsLong   bool
	Value    int64
}

func (p *ByteProperty) PropertyType() FName { return FName{Content: "ByteProperty"} }

// ReadPayload assumes the common 1-byte encoding; readPayloadWithFallback
// calls readSized instead whenever a declared size is available, so this
// is reached only for headerless reads where size isn't known ahead of
// the call (spec §4.5).
func (p *ByteProperty) ReadPayload(r *Reader, tag *PropertyTag) error {
	v, err := r.ReadU8()
	if err != nil {
		return err
	}
	p.Value = int64(v)
	p.IsLong = false
	return nil
}

// readLong reads the 8-byte "long" payload encoding (declared size 0 or 8).
func (p *ByteProperty) readLong(r *Reader) error {
	v, err := r.ReadI64()
	if err != nil {
		return err
	}
	p.Value = v
	p.IsLong = true
	return nil
}

// readSized dispatches on the header-declared payload size (spec §8):
// size 1 is a raw byte, size 0 or 8 is the long encoding, anything else
// retries as a raw byte then falls back to long.
func (p *ByteProperty) readSized(r *Reader, size int32) error {
	switch size {
	case 1:
		return p.ReadPayload(r, nil)
	case 0, 8:
		return p.readLong(r)
	default:
		start := r.Position()
		if err := p.ReadPayload(r, nil); err == nil && r.Position()-start == int64(size) {
			return nil
		}
		r.SetPosition(start)
		return p.readLong(r)
	}
}

func (p *ByteProperty) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	if p.IsLong {
		return 8, w.WriteI64(p.Value)
	}
	return 1, w.WriteU8(uint8(p.Value))
}
