package uasset

func init() {
	registerProperty("ArrayProperty", func() Property { return &ArrayProperty{} })
	registerProperty("SetProperty", func() Property { return &SetProperty{} })
	registerProperty("MapProperty", func() Property { return &MapProperty{} })
}

// ArrayProperty holds its element type once and, for struct elements, one
// shared StructName/StructGuid pair instead of per-element headers (spec
// §4.5: "ArrayProperty of StructProperty shares a single struct header
// across all elements").
type ArrayProperty struct {
	InnerType FName

	StructName FName
	StructGuid Guid

	Elements []interface{}
}

func (p *ArrayProperty) PropertyType() FName { return FName{Content: "ArrayProperty"} }

func (p *ArrayProperty) ReadPayload(r *Reader, tag *PropertyTag) error {
	innerType, err := r.ReadFName()
	if err != nil {
		return err
	}
	p.InnerType = innerType

	count, err := r.ReadI32()
	if err != nil {
		return err
	}
	if count < 0 {
		return NewInvalidFileError(r.Position(), "negative array property count %d", count)
	}

	if innerType.Content == "StructProperty" {
		// shared header: name, type, size, array index, struct name, guid
		if _, err := r.ReadFName(); err != nil { // repeated element name, ignored
			return err
		}
		if _, err := r.ReadFName(); err != nil { // repeated "StructProperty" type, ignored
			return err
		}
		if _, err := r.ReadI32(); err != nil { // element size, ignored (recomputed on write)
			return err
		}
		if _, err := r.ReadI32(); err != nil { // array index, ignored
			return err
		}
		structName, err := r.ReadFName()
		if err != nil {
			return err
		}
		p.StructName = structName
		guid, err := r.ReadGuid()
		if err != nil {
			return err
		}
		p.StructGuid = guid
		if _, err := r.ReadPropertyGuid(); err != nil { // trailing optional property guid, ignored
			return err
		}

		entry, isMath := mathStructs[structName.Content]
		for i := int32(0); i < count; i++ {
			if isMath {
				v, _, err := entry.read(r)
				if err != nil {
					return err
				}
				p.Elements = append(p.Elements, v)
				continue
			}
			var props []*PropertyTag
			for {
				child, err := ReadPropertyTagged(r)
				if err != nil {
					return err
				}
				if child == nil {
					break
				}
				props = append(props, child)
			}
			p.Elements = append(p.Elements, props)
		}
		return nil
	}

	ctor, ok := propertyConstructors[innerType.Content]
	if !ok {
		return NewPropertyError(innerType.Content, "unknown array element type")
	}
	for i := int32(0); i < count; i++ {
		elem := ctor()
		if err := elem.ReadPayload(r, &PropertyTag{Type: innerType}); err != nil {
			return err
		}
		p.Elements = append(p.Elements, elem)
	}
	return nil
}

func (p *ArrayProperty) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	start := w.Position()
	if err := w.WriteFName(p.InnerType); err != nil {
		return 0, err
	}
	if err := w.WriteI32(int32(len(p.Elements))); err != nil {
		return 0, err
	}

	if p.InnerType.Content == "StructProperty" {
		if err := w.WriteFName(tag.Name); err != nil {
			return 0, err
		}
		if err := w.WriteFName(p.InnerType); err != nil {
			return 0, err
		}
		sizeOffset, err := w.reserveI32()
		if err != nil {
			return 0, err
		}
		if err := w.WriteI32(0); err != nil {
			return 0, err
		}
		if err := w.WriteFName(p.StructName); err != nil {
			return 0, err
		}
		if err := w.WriteGuid(p.StructGuid); err != nil {
			return 0, err
		}
		if err := w.WritePropertyGuid(nil); err != nil {
			return 0, err
		}

		bodyStart := w.Position()
		entry, isMath := mathStructs[p.StructName.Content]
		for _, el := range p.Elements {
			if isMath {
				if _, err := entry.write(w, el); err != nil {
					return 0, err
				}
				continue
			}
			props, _ := el.([]*PropertyTag)
			for _, child := range props {
				if err := WritePropertyTagged(w, child); err != nil {
					return 0, err
				}
			}
			if err := WriteNoneSentinel(w); err != nil {
				return 0, err
			}
		}
		if err := w.patchI32(sizeOffset, int32(w.Position()-bodyStart), w.Position()); err != nil {
			return 0, err
		}
		return int32(w.Position() - start), nil
	}

	for _, el := range p.Elements {
		prop, ok := el.(Property)
		if !ok {
			return 0, NewPropertyError(p.InnerType.Content, "array element is not a Property")
		}
		if _, err := prop.WritePayload(w, &PropertyTag{Type: p.InnerType}); err != nil {
			return 0, err
		}
	}
	return int32(w.Position() - start), nil
}

// SetProperty shares ArrayProperty's wire shape, preceded by a removed-
// index count that is always zero on a freshly-serialized set (spec
// §4.5).
type SetProperty struct {
	Inner ArrayProperty
}

func (p *SetProperty) PropertyType() FName { return FName{Content: "SetProperty"} }

func (p *SetProperty) ReadPayload(r *Reader, tag *PropertyTag) error {
	if _, err := r.ReadI32(); err != nil { // removed-element count, always 0 on write
		return err
	}
	return p.Inner.ReadPayload(r, tag)
}

func (p *SetProperty) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	start := w.Position()
	if err := w.WriteI32(0); err != nil {
		return 0, err
	}
	if _, err := p.Inner.WritePayload(w, tag); err != nil {
		return 0, err
	}
	return int32(w.Position() - start), nil
}

// MapProperty pairs a key type and value type, falling back to the
// Reader/Writer's MapKeyOverride/MapValueOverride dictionaries when the
// on-disk inner types are ambiguous (spec §4.5, §4.4).
type MapProperty struct {
	KeyType   FName
	ValueType FName
	Keys      []Property
	Values    []Property
}

func (p *MapProperty) PropertyType() FName { return FName{Content: "MapProperty"} }

func (p *MapProperty) ReadPayload(r *Reader, tag *PropertyTag) error {
	keyType, err := r.ReadFName()
	if err != nil {
		return err
	}
	valueType, err := r.ReadFName()
	if err != nil {
		return err
	}
	if override, ok := r.MapKeyOverride[tag.Name.Content]; ok {
		keyType = FName{Content: override}
	}
	if override, ok := r.MapValueOverride[tag.Name.Content]; ok {
		valueType = FName{Content: override}
	}
	p.KeyType = keyType
	p.ValueType = valueType

	if _, err := r.ReadI32(); err != nil { // removed-element count, always 0 on write
		return err
	}
	count, err := r.ReadI32()
	if err != nil {
		return err
	}
	if count < 0 {
		return NewInvalidFileError(r.Position(), "negative map property count %d", count)
	}

	keyCtor, ok := propertyConstructors[keyType.Content]
	if !ok {
		return NewPropertyError(keyType.Content, "unknown map key type")
	}
	valCtor, ok := propertyConstructors[valueType.Content]
	if !ok {
		return NewPropertyError(valueType.Content, "unknown map value type")
	}
	for i := int32(0); i < count; i++ {
		k := keyCtor()
		if err := k.ReadPayload(r, &PropertyTag{Type: keyType}); err != nil {
			return err
		}
		v := valCtor()
		if err := v.ReadPayload(r, &PropertyTag{Type: valueType}); err != nil {
			return err
		}
		p.Keys = append(p.Keys, k)
		p.Values = append(p.Values, v)
	}
	return nil
}

func (p *MapProperty) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	start := w.Position()
	if err := w.WriteFName(p.KeyType); err != nil {
		return 0, err
	}
	if err := w.WriteFName(p.ValueType); err != nil {
		return 0, err
	}
	if err := w.WriteI32(0); err != nil {
		return 0, err
	}
	if err := w.WriteI32(int32(len(p.Keys))); err != nil {
		return 0, err
	}
	for i := range p.Keys {
		if _, err := p.Keys[i].WritePayload(w, &PropertyTag{Type: p.KeyType}); err != nil {
			return 0, err
		}
		if _, err := p.Values[i].WritePayload(w, &PropertyTag{Type: p.ValueType}); err != nil {
			return 0, err
		}
	}
	return int32(w.Position() - start), nil
}
