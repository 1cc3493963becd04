package uasset

func init() {
	registerProperty("StructProperty", func() Property { return &StructProperty{} })
	registerProperty("EnumProperty", func() Property { return &EnumProperty{} })
}

// StructProperty is either one of the fixed-layout math structs (spec
// §4.5 edge case, see property_math.go) or a nested, recursively-tagged
// property list terminated by the "None" sentinel (spec §4.6 NormalExport
// shares this same list-of-tagged-properties shape).
type StructProperty struct {
	StructName FName
	StructGuid Guid

	MathValue  interface{}
	Properties []*PropertyTag
}

func (p *StructProperty) PropertyType() FName { return FName{Content: "StructProperty"} }

func (p *StructProperty) ReadPayload(r *Reader, tag *PropertyTag) error {
	name, err := r.ReadFName()
	if err != nil {
		return err
	}
	p.StructName = name

	guid, err := r.ReadGuid()
	if err != nil {
		return err
	}
	p.StructGuid = guid

	if entry, ok := mathStructs[name.Content]; ok {
		v, _, err := entry.read(r)
		if err != nil {
			return err
		}
		p.MathValue = v
		return nil
	}

	for {
		child, err := ReadPropertyTagged(r)
		if err != nil {
			return err
		}
		if child == nil {
			break
		}
		p.Properties = append(p.Properties, child)
	}
	return nil
}

func (p *StructProperty) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	start := w.Position()
	if err := w.WriteFName(p.StructName); err != nil {
		return 0, err
	}
	if err := w.WriteGuid(p.StructGuid); err != nil {
		return 0, err
	}

	if entry, ok := mathStructs[p.StructName.Content]; ok && p.MathValue != nil {
		if _, err := entry.write(w, p.MathValue); err != nil {
			return 0, err
		}
		return int32(w.Position() - start), nil
	}

	for _, child := range p.Properties {
		if err := WritePropertyTagged(w, child); err != nil {
			return 0, err
		}
	}
	if err := WriteNoneSentinel(w); err != nil {
		return 0, err
	}
	return int32(w.Position() - start), nil
}

// EnumProperty carries the enum type's FName ahead of the serialized
// value, itself an FName naming the enum constant (spec §4.5).
type EnumProperty struct {
	EnumName FName
	Value    FName
}

func (p *EnumProperty) PropertyType() FName { return FName{Content: "EnumProperty"} }

func (p *EnumProperty) ReadPayload(r *Reader, tag *PropertyTag) error {
	enumName, err := r.ReadFName()
	if err != nil {
		return err
	}
	p.EnumName = enumName
	value, err := r.ReadFName()
	if err != nil {
		return err
	}
	p.Value = value
	return nil
}

func (p *EnumProperty) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	start := w.Position()
	if err := w.WriteFName(p.EnumName); err != nil {
		return 0, err
	}
	if err := w.WriteFName(p.Value); err != nil {
		return 0, err
	}
	return int32(w.Position() - start), nil
}
