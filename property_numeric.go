package uasset

func init() {
	registerProperty("Int8Property", func() Property { return &Int8Property{} })
	registerProperty("Int16Property", func() Property { return &Int16Property{} })
	registerProperty("IntProperty", func() Property { return &Int32Property{} })
	registerProperty("Int64Property", func() Property { return &Int64Property{} })
	registerProperty("ByteProperty", func() Property { return &ByteProperty{} })
	registerProperty("UInt16Property", func() Property { return &UInt16Property{} })
	registerProperty("UInt32Property", func() Property { return &UInt32Property{} })
	registerProperty("UInt64Property", func() Property { return &UInt64Property{} })
	registerProperty("FloatProperty", func() Property { return &FloatProperty{} })
	registerProperty("DoubleProperty", func() Property { return &DoubleProperty{} })
}

type Int8Property struct{ Value int8 }

func (p *Int8Property) PropertyType() FName { return FName{Content: "Int8Property"} }
func (p *Int8Property) ReadPayload(r *Reader, tag *PropertyTag) error {
	v, err := r.ReadI8()
	p.Value = v
	return err
}
func (p *Int8Property) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	return 1, w.WriteI8(p.Value)
}

type Int16Property struct{ Value int16 }

func (p *Int16Property) PropertyType() FName { return FName{Content: "Int16Property"} }
func (p *Int16Property) ReadPayload(r *Reader, tag *PropertyTag) error {
	v, err := r.ReadI16()
	p.Value = v
	return err
}
func (p *Int16Property) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	return 2, w.WriteI16(p.Value)
}

type Int32Property struct{ Value int32 }

func (p *Int32Property) PropertyType() FName { return FName{Content: "IntProperty"} }
func (p *Int32Property) ReadPayload(r *Reader, tag *PropertyTag) error {
	v, err := r.ReadI32()
	p.Value = v
	return err
}
func (p *Int32Property) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	return 4, w.WriteI32(p.Value)
}

type Int64Property struct{ Value int64 }

func (p *Int64Property) PropertyType() FName { return FName{Content: "Int64Property"} }
func (p *Int64Property) ReadPayload(r *Reader, tag *PropertyTag) error {
	v, err := r.ReadI64()
	p.Value = v
	return err
}
func (p *Int64Property) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	return 8, w.WriteI64(p.Value)
}

type UInt16Property struct{ Value uint16 }

func (p *UInt16Property) PropertyType() FName { return FName{Content: "UInt16Property"} }
func (p *UInt16Property) ReadPayload(r *Reader, tag *PropertyTag) error {
	v, err := r.ReadU16()
	p.Value = v
	return err
}
func (p *UInt16Property) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	return 2, w.WriteU16(p.Value)
}

type UInt32Property struct{ Value uint32 }

func (p *UInt32Property) PropertyType() FName { return FName{Content: "UInt32Property"} }
func (p *UInt32Property) ReadPayload(r *Reader, tag *PropertyTag) error {
	v, err := r.ReadU32()
	p.Value = v
	return err
}
func (p *UInt32Property) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	return 4, w.WriteU32(p.Value)
}

type UInt64Property struct{ Value uint64 }

func (p *UInt64Property) PropertyType() FName { return FName{Content: "UInt64Property"} }
func (p *UInt64Property) ReadPayload(r *Reader, tag *PropertyTag) error {
	v, err := r.ReadU64()
	p.Value = v
	return err
}
func (p *UInt64Property) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	return 8, w.WriteU64(p.Value)
}

type FloatProperty struct{ Value float32 }

func (p *FloatProperty) PropertyType() FName { return FName{Content: "FloatProperty"} }
func (p *FloatProperty) ReadPayload(r *Reader, tag *PropertyTag) error {
	v, err := r.ReadF32()
	p.Value = v
	return err
}
func (p *FloatProperty) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	return 4, w.WriteF32(p.Value)
}

type DoubleProperty struct{ Value float64 }

func (p *DoubleProperty) PropertyType() FName { return FName{Content: "DoubleProperty"} }
func (p *DoubleProperty) ReadPayload(r *Reader, tag *PropertyTag) error {
	v, err := r.ReadF64()
	p.Value = v
	return err
}
func (p *DoubleProperty) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	return 8, w.WriteF64(p.Value)
}
