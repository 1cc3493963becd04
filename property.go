package uasset

import "fmt"

// Property is one tagged-union property payload codec (spec §4.5). Each
// concrete kind implements ReadPayload/WritePayload against the size the
// header already declared or produced; WritePayload returns the number of
// payload bytes it wrote, which WritePropertyTagged back-patches into the
// header's size field.
type Property interface {
	PropertyType() FName
	ReadPayload(r *Reader, tag *PropertyTag) error
	WritePayload(w *Writer, tag *PropertyTag) (int32, error)
}

// PropertyTag is the common header every top-level struct/export property
// carries ahead of its payload (spec §4.5): name, declared type, declared
// size (back-patched on write), array index, and an optional property
// GUID. BoolValue only applies to BoolProperty, whose header carries the
// value itself instead of a payload (spec edge case).
type PropertyTag struct {
	Name       FName
	Type       FName
	ArrayIndex int32
	Guid       *Guid
	BoolValue  bool

	Property Property
}

// propertyConstructors is the type-FName -> zero-value constructor
// dispatch table (spec §4.5), built the same way the teacher's
// ParseDataDirectories builds funcMaps: a map literal of functions keyed
// by a closed identifier set, populated once in init.
var propertyConstructors = map[string]func() Property{}

func registerProperty(typeName string, ctor func() Property) {
	propertyConstructors[typeName] = ctor
}

// ReadPropertyTagged reads one header+payload property, or returns
// (nil, nil) when the name read is the "None" sentinel that terminates a
// property list (spec §4.5, §4.6).
func ReadPropertyTagged(r *Reader) (*PropertyTag, error) {
	name, err := r.ReadFName()
	if err != nil {
		return nil, err
	}
	if name.IsNone() {
		return nil, nil
	}

	typeName, err := r.ReadFName()
	if err != nil {
		return nil, err
	}
	size, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	arrayIndex, err := r.ReadI32()
	if err != nil {
		return nil, err
	}

	tag := &PropertyTag{Name: name, Type: typeName, ArrayIndex: arrayIndex}

	// BoolProperty's header-ordering quirk: the value byte sits between
	// array index and the optional GUID, not in the payload (spec §4.5
	// edge case).
	if typeName.Content == "BoolProperty" {
		v, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		tag.BoolValue = v
	}

	// ByteProperty's header-level enum field: an 8-byte value read
	// unconditionally whenever the tag carries a header, ahead of the
	// property GUID and distinct from the payload's own size-driven
	// byte/long dispatch (spec §4.5, §8 boundary case).
	var byteEnumType *int64
	if typeName.Content == "ByteProperty" {
		v, err := r.ReadI64()
		if err != nil {
			return nil, err
		}
		byteEnumType = &v
	}

	guid, err := r.ReadPropertyGuid()
	if err != nil {
		return nil, err
	}
	tag.Guid = guid

	ctor, ok := propertyConstructors[typeName.Content]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPropertyType, typeName.Content)
	}
	prop := ctor()

	if typeName.Content == "BoolProperty" {
		tag.Property = prop
		return tag, nil
	}

	if bp, ok := prop.(*ByteProperty); ok {
		bp.EnumType = byteEnumType
	}

	if err := readPayloadWithFallback(r, tag, prop, size); err != nil {
		return nil, err
	}
	tag.Property = prop
	return tag, nil
}

// readPayloadWithFallback invokes ReadPayload at the reader's current
// position. ByteProperty instead dispatches on the header-declared size
// (spec §8 boundary case: size 0/8 decodes a raw 8-byte long value, not
// an enum name). TextProperty uses the declared size to bound the opaque
// bytes of a non-Base history, which it keeps in Raw.
func readPayloadWithFallback(r *Reader, tag *PropertyTag, prop Property, size int32) error {
	if bp, ok := prop.(*ByteProperty); ok {
		return bp.readSized(r, size)
	}
	if tp, ok := prop.(*TextProperty); ok {
		start := r.Position()
		if err := tp.ReadPayload(r, tag); err != nil || tp.HistoryType == 0 {
			return err
		}
		rest := int64(size) - (r.Position() - start)
		if rest < 0 {
			return NewInvalidFileError(r.Position(), "text property history overruns its declared size %d", size)
		}
		tp.Raw = make([]byte, rest)
		return r.ReadExact(tp.Raw)
	}
	return prop.ReadPayload(r, tag)
}

// WritePropertyTagged writes one property's full header+payload,
// back-patching the declared size once the payload is known (spec §4.5,
// §4.9 back-patch protocol). Writing the "None" sentinel terminates a
// property list and is the caller's responsibility (see StructProperty,
// NormalExport).
func WritePropertyTagged(w *Writer, tag *PropertyTag) error {
	if err := w.WriteFName(tag.Name); err != nil {
		return err
	}
	if err := w.WriteFName(tag.Type); err != nil {
		return err
	}

	sizeOffset, err := w.reserveI32()
	if err != nil {
		return err
	}
	if err := w.WriteI32(tag.ArrayIndex); err != nil {
		return err
	}

	if tag.Type.Content == "BoolProperty" {
		if err := w.WriteBool(tag.BoolValue); err != nil {
			return err
		}
	}

	if tag.Type.Content == "ByteProperty" {
		var enumType int64
		if bp, ok := tag.Property.(*ByteProperty); ok && bp.EnumType != nil {
			enumType = *bp.EnumType
		}
		if err := w.WriteI64(enumType); err != nil {
			return err
		}
	}

	if err := w.WritePropertyGuid(tag.Guid); err != nil {
		return err
	}

	if tag.Type.Content == "BoolProperty" {
		return w.patchI32(sizeOffset, 0, w.Position())
	}

	bodyStart := w.Position()
	n, err := tag.Property.WritePayload(w, tag)
	if err != nil {
		return err
	}
	return w.patchI32(sizeOffset, n, bodyStart+int64(n))
}

// WriteNoneSentinel writes the terminating "None" FName of a property
// list.
func WriteNoneSentinel(w *Writer) error {
	return w.WriteFName(NoneFName)
}
