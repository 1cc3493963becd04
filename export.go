package uasset

// BaseExport carries the fields every export kind shares ahead of its
// kind-specific body (spec §4.6): the owning class, outer, and template,
// the export's own FName, flags, and serialized size/offset — mirrors
// the teacher's BaseExport / the fields every directory entry in file.go
// reads before dispatching to a kind-specific parser.
type BaseExport struct {
	ClassIndex   PackageIndex
	SuperIndex   PackageIndex
	TemplateIndex PackageIndex
	OuterIndex   PackageIndex
	ObjectName   FName
	ObjectFlags  uint32
	SerialSize   int64
	SerialOffset int64
	bExportLoaded bool
}

func readBaseExport(r *Reader) (BaseExport, error) {
	var e BaseExport
	var err error
	if e.ClassIndex, err = r.ReadPackageIndex(); err != nil {
		return e, err
	}
	if e.SuperIndex, err = r.ReadPackageIndex(); err != nil {
		return e, err
	}
	if e.TemplateIndex, err = r.ReadPackageIndex(); err != nil {
		return e, err
	}
	if e.OuterIndex, err = r.ReadPackageIndex(); err != nil {
		return e, err
	}
	if e.ObjectName, err = r.ReadFName(); err != nil {
		return e, err
	}
	if e.ObjectFlags, err = r.ReadU32(); err != nil {
		return e, err
	}
	if e.SerialSize, err = r.ReadI64(); err != nil {
		return e, err
	}
	if e.SerialOffset, err = r.ReadI64(); err != nil {
		return e, err
	}
	e.bExportLoaded, err = r.ReadBool()
	return e, err
}

func writeBaseExport(w *Writer, e BaseExport) error {
	if err := w.WritePackageIndex(e.ClassIndex); err != nil {
		return err
	}
	if err := w.WritePackageIndex(e.SuperIndex); err != nil {
		return err
	}
	if err := w.WritePackageIndex(e.TemplateIndex); err != nil {
		return err
	}
	if err := w.WritePackageIndex(e.OuterIndex); err != nil {
		return err
	}
	if err := w.WriteFName(e.ObjectName); err != nil {
		return err
	}
	if err := w.WriteU32(e.ObjectFlags); err != nil {
		return err
	}
	if err := w.WriteI64(e.SerialSize); err != nil {
		return err
	}
	if err := w.WriteI64(e.SerialOffset); err != nil {
		return err
	}
	return w.WriteBool(e.bExportLoaded)
}

// Export is one export-table entry's payload codec (spec §4.6),
// dispatched from the owning class's FName via exportConstructors —
// the same funcMaps dispatch-table idiom property.go uses for property
// types.
type Export interface {
	Base() *BaseExport
	// ReadBody reads the export's kind-specific body. bodyEnd is the
	// absolute stream offset the body must not read past — BaseExport.
	// SerialOffset+SerialSize — needed by export kinds whose trailing
	// data has no length prefix of its own (spec §4.6: NormalExport's
	// extras, LevelExport's misc_category_data).
	ReadBody(r *Reader, bodyEnd int64) error
	WriteBody(w *Writer) error
}

var exportConstructors = map[string]func(BaseExport) Export{
	"Level": func(b BaseExport) Export { return &LevelExport{BaseExport: b} },
}

// structExportClasses marks class FNames that serialize as a
// StructExport (UClass, UScriptStruct, UFunction, UEnum and their kin) as
// opposed to the generic NormalExport property-bag. Anything not
// registered as Level or a struct-like class falls back to NormalExport.
var structExportClasses = map[string]bool{
	"Class":    true,
	"Function": true,
	"ScriptStruct": true,
	"Enum":     true,
}

// NewExport constructs the right Export implementation for className,
// defaulting to NormalExport for any class that is neither registered in
// exportConstructors nor in structExportClasses. RawExport is never
// returned here; Asset.Parse substitutes it when an export body fails to
// decode.
func NewExport(className string, base BaseExport) Export {
	if ctor, ok := exportConstructors[className]; ok {
		return ctor(base)
	}
	if structExportClasses[className] {
		return &StructExport{NormalExport: NormalExport{BaseExport: base}}
	}
	return &NormalExport{BaseExport: base}
}

// RawExport keeps an export body as SerialSize raw bytes. Asset.Parse
// falls back to it when the class-specific body decoder fails, so the
// export still round-trips byte for byte (spec §4.6).
type RawExport struct {
	BaseExport
	Data []byte
}

func (e *RawExport) Base() *BaseExport { return &e.BaseExport }
func (e *RawExport) ReadBody(r *Reader, bodyEnd int64) error {
	buf := make([]byte, e.SerialSize)
	err := r.ReadExact(buf)
	e.Data = buf
	return err
}
func (e *RawExport) WriteBody(w *Writer) error { return w.WriteAll(e.Data) }
