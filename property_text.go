package uasset

func init() {
	registerProperty("StrProperty", func() Property { return &StrProperty{} })
	registerProperty("NameProperty", func() Property { return &NameProperty{} })
	registerProperty("TextProperty", func() Property { return &TextProperty{} })
	registerProperty("ObjectProperty", func() Property { return &ObjectProperty{} })
	registerProperty("SoftObjectProperty", func() Property { return &SoftObjectProperty{} })
}

type StrProperty struct {
	Value  string
	IsNull bool
}

func (p *StrProperty) PropertyType() FName { return FName{Content: "StrProperty"} }
func (p *StrProperty) ReadPayload(r *Reader, tag *PropertyTag) error {
	s, isNull, err := r.ReadString()
	p.Value, p.IsNull = s, isNull
	return err
}
func (p *StrProperty) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	n, err := w.WriteString(p.Value, p.IsNull)
	return int32(n), err
}

type NameProperty struct{ Value FName }

func (p *NameProperty) PropertyType() FName { return FName{Content: "NameProperty"} }
func (p *NameProperty) ReadPayload(r *Reader, tag *PropertyTag) error {
	v, err := r.ReadFName()
	p.Value = v
	return err
}
func (p *NameProperty) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	start := w.Position()
	if err := w.WriteFName(p.Value); err != nil {
		return 0, err
	}
	return int32(w.Position() - start), nil
}

// TextProperty is a simplified rendition of FText's localization-key
// envelope (spec §11 supplement, unreal_asset/src/types/fproperty/text.rs):
// flags, a history type byte, and for the common "Base" history the
// namespace/key/source-string triple. Other history types are preserved
// as their raw trailing bytes (Raw) rather than fully modeled, since
// nothing downstream of this codec needs to re-localize text. Raw is
// filled only for a tagged property, whose header gives the payload size;
// a headerless array, set or map element reads just flags and history type.
type TextProperty struct {
	Flags       uint32
	HistoryType int8
	Namespace   NamespacedString
	Key         string
	Source      string
	Raw         []byte
}

func (p *TextProperty) PropertyType() FName { return FName{Content: "TextProperty"} }

func (p *TextProperty) ReadPayload(r *Reader, tag *PropertyTag) error {
	flags, err := r.ReadU32()
	if err != nil {
		return err
	}
	p.Flags = flags
	historyType, err := r.ReadI8()
	if err != nil {
		return err
	}
	p.HistoryType = historyType

	if historyType != 0 {
		return nil // non-Base history kept opaque; nothing further to decode here
	}

	ns, _, err := r.ReadString()
	if err != nil {
		return err
	}
	p.Namespace = NamespacedString{Namespace: &ns}
	key, _, err := r.ReadString()
	if err != nil {
		return err
	}
	p.Key = key
	source, _, err := r.ReadString()
	if err != nil {
		return err
	}
	p.Source = source
	return nil
}

func (p *TextProperty) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	start := w.Position()
	if err := w.WriteU32(p.Flags); err != nil {
		return 0, err
	}
	if err := w.WriteI8(p.HistoryType); err != nil {
		return 0, err
	}
	if p.HistoryType != 0 {
		if err := w.WriteAll(p.Raw); err != nil {
			return 0, err
		}
		return int32(w.Position() - start), nil
	}
	ns := ""
	if p.Namespace.Namespace != nil {
		ns = *p.Namespace.Namespace
	}
	if _, err := w.WriteString(ns, false); err != nil {
		return 0, err
	}
	if _, err := w.WriteString(p.Key, false); err != nil {
		return 0, err
	}
	if _, err := w.WriteString(p.Source, false); err != nil {
		return 0, err
	}
	return int32(w.Position() - start), nil
}

// ObjectProperty holds a PackageIndex; SoftObjectProperty instead holds
// the soft path's asset path FName plus its sub-path string (spec §4.5).
type ObjectProperty struct{ Value PackageIndex }

func (p *ObjectProperty) PropertyType() FName { return FName{Content: "ObjectProperty"} }
func (p *ObjectProperty) ReadPayload(r *Reader, tag *PropertyTag) error {
	v, err := r.ReadPackageIndex()
	p.Value = v
	return err
}
func (p *ObjectProperty) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	return 4, w.WritePackageIndex(p.Value)
}

type SoftObjectProperty struct {
	AssetPathName FName
	SubPathString string
	SubPathIsNull bool
}

func (p *SoftObjectProperty) PropertyType() FName { return FName{Content: "SoftObjectProperty"} }
func (p *SoftObjectProperty) ReadPayload(r *Reader, tag *PropertyTag) error {
	name, err := r.ReadFName()
	if err != nil {
		return err
	}
	p.AssetPathName = name
	s, isNull, err := r.ReadString()
	p.SubPathString, p.SubPathIsNull = s, isNull
	return err
}
func (p *SoftObjectProperty) WritePayload(w *Writer, tag *PropertyTag) (int32, error) {
	start := w.Position()
	if err := w.WriteFName(p.AssetPathName); err != nil {
		return 0, err
	}
	if _, err := w.WriteString(p.SubPathString, p.SubPathIsNull); err != nil {
		return 0, err
	}
	return int32(w.Position() - start), nil
}
