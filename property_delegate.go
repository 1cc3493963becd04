package uasset

func init() {
	registerProperty("DelegateProperty", func() Property { return &DelegateProperty{} })
	registerProperty("MulticastDelegateProperty", func() Property { return &MulticastDelegateProperty{} })
	registerProperty("MulticastInlineDelegateProperty", func() Property { return &MulticastDelegateProperty{} })
	registerProperty("MulticastSparseDelegateProperty", func() Property { return &MulticastDelegateProperty{} })
	registerProperty("ViewTargetBlendParamsProperty", func() Property { return &ViewTargetBlendParamsProperty{} })
}

// ScriptDelegate is a bound UFunction reference: the owning object and
// the function's FName (spec §11 supplement, unreal_asset's
// FScriptDelegate).
type ScriptDelegate struct {
	Object       PackageIndex
	FunctionName FName
}

func readScriptDelegate(r *Reader) (ScriptDelegate, error) {
	var d ScriptDelegate
	idx, err := r.ReadPackageIndex()
	if err != nil {
		return d, err
	}
	d.Object = idx
	name, err := r.ReadFName()
	if err != nil {
		return d, err
	}
	d.FunctionName = name
	return d, nil
}

func writeScriptDelegate(w *Writer, d ScriptDelegate) error {
	if err := w.WritePackageIndex(d.Object); err != nil {
		return err
	}
	return w.WriteFName(d.FunctionName)
}

type DelegateProperty struct{ Value ScriptDelegate }

func (p *DelegateProperty) PropertyType() FName { return FName{Content: "DelegateProperty"} }
func (p *DelegateProperty) ReadPayload(r *Reader, tag *PropertyTag) error {
	v, err := readScriptDelegate(r)
	p.Value = v
	return err
}
func (p *DelegateProperty) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	start := w.Position()
	if err := writeScriptDelegate(w, p.Value); err != nil {
		return 0, err
	}
	return int32(w.Position() - start), nil
}

// MulticastDelegateProperty serves all three multicast delegate kinds
// (inline, sparse, and the plain legacy form): each serializes as an
// array of bound ScriptDelegates (spec §4.5).
type MulticastDelegateProperty struct{ Values []ScriptDelegate }

func (p *MulticastDelegateProperty) PropertyType() FName {
	return FName{Content: "MulticastDelegateProperty"}
}
func (p *MulticastDelegateProperty) ReadPayload(r *Reader, tag *PropertyTag) error {
	count, err := r.ReadI32()
	if err != nil {
		return err
	}
	if count < 0 {
		return NewInvalidFileError(r.Position(), "negative delegate count %d", count)
	}
	for i := int32(0); i < count; i++ {
		d, err := readScriptDelegate(r)
		if err != nil {
			return err
		}
		p.Values = append(p.Values, d)
	}
	return nil
}
func (p *MulticastDelegateProperty) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	start := w.Position()
	if err := w.WriteI32(int32(len(p.Values))); err != nil {
		return 0, err
	}
	for _, d := range p.Values {
		if err := writeScriptDelegate(w, d); err != nil {
			return 0, err
		}
	}
	return int32(w.Position() - start), nil
}

// ViewTargetBlendParams is a camera-transition struct serialized as a
// fixed sequence of fields rather than a generic property list (spec §11
// supplement, unreal_asset's view_target_blend_params.rs).
type ViewTargetBlendParamsProperty struct {
	BlendTime     float32
	BlendFunction uint8
	BlendExp      float32
	LockOutgoing  bool
}

func (p *ViewTargetBlendParamsProperty) PropertyType() FName {
	return FName{Content: "ViewTargetBlendParamsProperty"}
}
func (p *ViewTargetBlendParamsProperty) ReadPayload(r *Reader, tag *PropertyTag) error {
	var err error
	if p.BlendTime, err = r.ReadF32(); err != nil {
		return err
	}
	if p.BlendFunction, err = r.ReadU8(); err != nil {
		return err
	}
	if p.BlendExp, err = r.ReadF32(); err != nil {
		return err
	}
	p.LockOutgoing, err = r.ReadBool()
	return err
}
func (p *ViewTargetBlendParamsProperty) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	if err := w.WriteF32(p.BlendTime); err != nil {
		return 0, err
	}
	if err := w.WriteU8(p.BlendFunction); err != nil {
		return 0, err
	}
	if err := w.WriteF32(p.BlendExp); err != nil {
		return 0, err
	}
	return 10, w.WriteBool(p.LockOutgoing)
}
