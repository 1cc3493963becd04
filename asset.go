package uasset

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/galehaven/uasset/internal/ulog"
	"github.com/galehaven/uasset/internal/uversion"
)

// PackageMagic is the FPackageFileSummary tag every uasset file opens
// with.
const PackageMagic uint32 = 0x9E2A83C1

// Import is one entry of the package's import table: the class that
// resolves the referenced object, and the object's own outer chain and
// name (spec §4.4 "ImportRef").
type Import struct {
	ClassPackage FName
	ClassName    FName
	OuterIndex   PackageIndex
	ObjectName   FName
}

// AssetOptions configures Asset parsing, in the shape the teacher's
// pe.Options configures File parsing (a logger and a couple of
// fast/slow-path toggles).
type AssetOptions struct {
	// Logger receives recoverable-condition messages (bytecode fallback,
	// unresolved imports); nil uses a filtered stdout logger at Error
	// level, matching the teacher's File default.
	Logger ulog.Logger

	// Metrics, when non-nil, records parse counters/durations (spec §9.5).
	Metrics *Metrics

	// SkipExportBodies parses only the header, name, import and export
	// tables, not each export's payload — the teacher's Options.Fast
	// equivalent.
	SkipExportBodies bool
}

// Asset is one parsed uasset package (spec §4.6, §4.8's sibling format):
// header, deduplicated name table, import table, and fully-decoded
// export list.
type Asset struct {
	Matrix *uversion.Matrix

	LegacyFileVersion      int32
	PackageFlags           uint32
	FolderName             string
	Guid                   Guid
	NameTableOffset        int64
	Imports                []Import
	Exports                []*ExportEntry

	data   mmap.MMap
	buf    []byte
	f      *os.File
	opts   *AssetOptions
	logger *ulog.Helper
}

// ExportEntry pairs an export's table header with its decoded body.
type ExportEntry struct {
	BaseExport
	Export Export
}

// OpenFile memory-maps name read-only and parses it (spec §4.9: "Asset
// and AssetRegistry both expose an OpenFile that mmaps the package and
// defers to Read").
func OpenFile(name string, opts *AssetOptions) (*Asset, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	a := newAsset(opts)
	a.data = data
	a.buf = data
	a.f = f
	if err := a.Parse(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// NewBytes parses an in-memory package buffer without mmap (handy for
// tests and embedded data).
func NewBytes(data []byte, opts *AssetOptions) (*Asset, error) {
	a := newAsset(opts)
	a.buf = data
	if err := a.Parse(); err != nil {
		return nil, err
	}
	return a, nil
}

func newAsset(opts *AssetOptions) *Asset {
	a := &Asset{}
	if opts != nil {
		a.opts = opts
	} else {
		a.opts = &AssetOptions{}
	}

	var logger ulog.Logger
	if a.opts.Logger == nil {
		logger = ulog.NewFilter(ulog.NewStdLogger(os.Stdout), ulog.FilterLevel(ulog.LevelError))
	} else {
		logger = a.opts.Logger
	}
	a.logger = ulog.NewHelper(logger)
	return a
}

// Close releases the mmap and underlying file handle, if any.
func (a *Asset) Close() error {
	if a.data != nil {
		_ = a.data.Unmap()
	}
	if a.f != nil {
		return a.f.Close()
	}
	return nil
}

// Parse performs the full package parse: header, name table, import
// table, export table, and (unless SkipExportBodies) every export's
// payload (spec §4.6).
func (a *Asset) Parse() error {
	if a.opts.Metrics != nil {
		stop := a.opts.Metrics.ObserveParse("asset")
		defer stop()
	}

	raw := newPrimitiveReader(a.buf)
	tag, err := raw.ReadU32()
	if err != nil {
		return err
	}
	if tag != PackageMagic {
		return NewInvalidFileError(0, "not a uasset package (bad magic 0x%08x)", tag)
	}

	legacyVersion, err := raw.ReadI32()
	if err != nil {
		return err
	}
	a.LegacyFileVersion = legacyVersion

	engineVersion, err := raw.ReadI32()
	if err != nil {
		return err
	}
	a.Matrix = uversion.NewMatrix(engineVersion)

	customVersionCount, err := raw.ReadI32()
	if err != nil {
		return err
	}
	if customVersionCount < 0 {
		return NewInvalidFileError(raw.Position(), "negative custom version count %d", customVersionCount)
	}
	for i := int32(0); i < customVersionCount; i++ {
		guid, err := raw.ReadGuid()
		if err != nil {
			return err
		}
		version, err := raw.ReadI32()
		if err != nil {
			return err
		}
		key, ok := uversion.GUIDToKey(guid)
		if !ok {
			key = uversion.CustomVersionKey(guid.String())
		}
		a.Matrix.SetCustomVersion(key, guid, version)
	}

	if _, err := raw.ReadI32(); err != nil { // total header size, unused here
		return err
	}
	folderName, _, err := raw.ReadString()
	if err != nil {
		return err
	}
	a.FolderName = folderName
	packageFlags, err := raw.ReadU32()
	if err != nil {
		return err
	}
	a.PackageFlags = packageFlags

	nameCount, err := raw.ReadI32()
	if err != nil {
		return err
	}
	nameOffset, err := raw.ReadI32()
	if err != nil {
		return err
	}
	a.NameTableOffset = int64(nameOffset)
	_ = nameCount // the table's own leading count prefix is authoritative

	guid, err := raw.ReadGuid()
	if err != nil {
		return err
	}
	a.Guid = guid

	importCount, err := raw.ReadI32()
	if err != nil {
		return err
	}
	importOffset, err := raw.ReadI32()
	if err != nil {
		return err
	}
	exportCount, err := raw.ReadI32()
	if err != nil {
		return err
	}
	exportOffset, err := raw.ReadI32()
	if err != nil {
		return err
	}

	r, err := NewNameTableReader(a.buf, a.Matrix, a.NameTableOffset)
	if err != nil {
		return err
	}
	r.Imports = a
	r.Exports = a

	if _, err := r.Seek(int64(importOffset), 0); err != nil {
		return err
	}
	imports, err := ReadArrayWithLength(r, importCount, readImport)
	if err != nil {
		return err
	}
	a.Imports = imports

	if _, err := r.Seek(int64(exportOffset), 0); err != nil {
		return err
	}
	bases, err := ReadArrayWithLength(r, exportCount, readBaseExport)
	if err != nil {
		return err
	}
	a.Exports = make([]*ExportEntry, len(bases))
	for i, base := range bases {
		a.Exports[i] = &ExportEntry{BaseExport: base}
	}

	if a.opts.SkipExportBodies {
		return nil
	}

	for _, entry := range a.Exports {
		className, _ := a.ResolveExportClassName(entry.ClassIndex)
		export := NewExport(className, entry.BaseExport)
		bodyEnd := entry.SerialOffset + entry.SerialSize
		if _, err := r.Seek(entry.SerialOffset, 0); err != nil {
			return err
		}
		if err := export.ReadBody(r, bodyEnd); err != nil {
			a.logger.Warnf("export %s body decode failed, keeping raw fallback: %v", entry.ObjectName, err)
			export = &RawExport{BaseExport: entry.BaseExport}
			if _, err := r.Seek(entry.SerialOffset, 0); err != nil {
				return err
			}
			if err := export.ReadBody(r, bodyEnd); err != nil {
				return err
			}
		}
		if se, ok := export.(*StructExport); ok && se.ScriptStorageSize > 0 && !se.bytecodeWasDecoded {
			a.logger.Warnf("export %s: kismet bytecode decode failed, kept raw", entry.ObjectName)
			if a.opts.Metrics != nil {
				a.opts.Metrics.RecordBytecodeFallback()
			}
		}
		entry.Export = export
	}
	return nil
}

func readImport(r *Reader) (Import, error) {
	var im Import
	var err error
	if im.ClassPackage, err = r.ReadFName(); err != nil {
		return im, err
	}
	if im.ClassName, err = r.ReadFName(); err != nil {
		return im, err
	}
	if im.OuterIndex, err = r.ReadPackageIndex(); err != nil {
		return im, err
	}
	im.ObjectName, err = r.ReadFName()
	return im, err
}

func writeImport(w *Writer, im Import) error {
	if err := w.WriteFName(im.ClassPackage); err != nil {
		return err
	}
	if err := w.WriteFName(im.ClassName); err != nil {
		return err
	}
	if err := w.WritePackageIndex(im.OuterIndex); err != nil {
		return err
	}
	return w.WriteFName(im.ObjectName)
}

// ResolveImport implements ImportRef: resolving a PackageIndex that
// references the import table returns that import's own object FName.
func (a *Asset) ResolveImport(idx PackageIndex) (FName, bool) {
	if !idx.IsImport() {
		return FName{}, false
	}
	i := idx.ImportIndex()
	if i < 0 || i >= len(a.Imports) {
		return FName{}, false
	}
	return a.Imports[i].ObjectName, true
}

// ResolveExportClass implements ExportClassRef.
func (a *Asset) ResolveExportClass(idx PackageIndex) (FName, bool) {
	if !idx.IsExport() {
		return FName{}, false
	}
	i := idx.ExportIndex()
	if i < 0 || i >= len(a.Exports) {
		return FName{}, false
	}
	return a.Exports[i].ObjectName, true
}

// ResolveExportClassName follows idx to the class FName driving export
// dispatch: an import (most common, e.g. "Class" defined in CoreUObject)
// or another export acting as its own class (rare, e.g. a UClass export
// describing itself).
func (a *Asset) ResolveExportClassName(idx PackageIndex) (string, bool) {
	if idx.IsImport() {
		name, ok := a.ResolveImport(idx)
		return name.Content, ok
	}
	if idx.IsExport() {
		name, ok := a.ResolveExportClass(idx)
		return name.Content, ok
	}
	return "", false
}

// Write serializes the package back to bytes, rebuilding the name table
// from every FName referenced by the import/export tables and bodies
// (spec §4.3, §4.9 round-trip property). Export SerialOffset/SerialSize
// fields are recomputed, not copied from the parsed values.
func (a *Asset) Write() ([]byte, error) {
	if a.opts != nil && a.opts.Metrics != nil {
		stop := a.opts.Metrics.ObserveParse("asset_write")
		defer stop()
	}

	names := newNameTable()
	collectAssetNames(a, names)
	lookup := make(map[string]int32, names.Len())
	for i, s := range names.entries {
		lookup[s] = int32(i)
	}

	w := NewNameTableWriter(a.Matrix, lookup)
	w.MapKeyOverride = map[string]string{}
	w.MapValueOverride = map[string]string{}

	if err := w.WriteU32(PackageMagic); err != nil {
		return nil, err
	}
	if err := w.WriteI32(a.LegacyFileVersion); err != nil {
		return nil, err
	}
	if err := w.WriteI32(a.Matrix.EngineVersion); err != nil {
		return nil, err
	}

	custom := make([]uversion.CustomVersion, 0, len(a.Matrix.CustomVersions))
	for _, cv := range a.Matrix.CustomVersions {
		custom = append(custom, cv)
	}
	if err := w.WriteI32(int32(len(custom))); err != nil {
		return nil, err
	}
	for _, cv := range custom {
		if err := w.WriteGuid(Guid(cv.GUID)); err != nil {
			return nil, err
		}
		if err := w.WriteI32(cv.Version); err != nil {
			return nil, err
		}
	}

	totalHeaderSizeOffset, err := w.reserveI32()
	if err != nil {
		return nil, err
	}
	if _, err := w.WriteString(a.FolderName, a.FolderName == ""); err != nil {
		return nil, err
	}
	if err := w.WriteU32(a.PackageFlags); err != nil {
		return nil, err
	}

	nameCountOffset, err := w.reserveI32()
	if err != nil {
		return nil, err
	}
	nameOffsetOffset, err := w.reserveI32()
	if err != nil {
		return nil, err
	}
	if err := w.WriteGuid(a.Guid); err != nil {
		return nil, err
	}

	importCountOffset, err := w.reserveI32()
	if err != nil {
		return nil, err
	}
	importOffsetOffset, err := w.reserveI32()
	if err != nil {
		return nil, err
	}
	exportCountOffset, err := w.reserveI32()
	if err != nil {
		return nil, err
	}
	exportOffsetOffset, err := w.reserveI32()
	if err != nil {
		return nil, err
	}

	if err := w.patchI32(totalHeaderSizeOffset, int32(w.Position()), w.Position()); err != nil {
		return nil, err
	}

	importOffset := w.Position()
	for _, im := range a.Imports {
		if err := writeImport(w, im); err != nil {
			return nil, err
		}
	}
	if err := w.patchI32(importOffsetOffset, int32(importOffset), w.Position()); err != nil {
		return nil, err
	}
	if err := w.patchI32(importCountOffset, int32(len(a.Imports)), w.Position()); err != nil {
		return nil, err
	}

	exportOffset := w.Position()
	exportHeaderPositions := make([]int64, len(a.Exports))
	for i, entry := range a.Exports {
		exportHeaderPositions[i] = w.Position()
		if err := writeBaseExport(w, entry.BaseExport); err != nil {
			return nil, err
		}
	}
	if err := w.patchI32(exportOffsetOffset, int32(exportOffset), w.Position()); err != nil {
		return nil, err
	}
	if err := w.patchI32(exportCountOffset, int32(len(a.Exports)), w.Position()); err != nil {
		return nil, err
	}

	for i, entry := range a.Exports {
		bodyStart := w.Position()
		if entry.Export != nil {
			if err := entry.Export.WriteBody(w); err != nil {
				return nil, err
			}
		}
		bodyEnd := w.Position()
		resume := bodyEnd

		// back-patch this export's own SerialOffset/SerialSize fields in
		// its already-written header.
		w.SetPosition(exportHeaderPositions[i] + 4*4 /* Class/Super/Template/Outer PackageIndex */ + 4 /* ObjectName idx */ + 4 /* ObjectName number */ + 4 /* flags */)
		if err := w.WriteI64(bodyEnd - bodyStart); err != nil {
			return nil, err
		}
		if err := w.WriteI64(bodyStart); err != nil {
			return nil, err
		}
		w.SetPosition(resume)
	}

	nameOffset := w.Position()
	if err := writeLegacyNameTable(w, names, a.Matrix); err != nil {
		return nil, err
	}
	if err := w.patchI32(nameOffsetOffset, int32(nameOffset), w.Position()); err != nil {
		return nil, err
	}
	if err := w.patchI32(nameCountOffset, int32(names.Len()), w.Position()); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// collectAssetNames walks every FName reachable from a's header, tables,
// and export bodies so Write can build a complete deduplicated name table
// up front — symmetric with seedLegacyNameTable's read-back pass.
func collectAssetNames(a *Asset, names *nameTable) {
	names.AddNameReference(a.FolderName, true)
	for _, im := range a.Imports {
		names.AddNameReference(im.ClassPackage.Content, false)
		names.AddNameReference(im.ClassName.Content, false)
		names.AddNameReference(im.ObjectName.Content, false)
	}
	for _, entry := range a.Exports {
		names.AddNameReference(entry.ObjectName.Content, false)
		if ne, ok := exportAsNormal(entry.Export); ok {
			for _, tag := range ne.Properties {
				collectPropertyTagNames(tag, names)
			}
		}
		if se, ok := entry.Export.(*StructExport); ok {
			for _, prop := range se.Properties {
				names.AddNameReference(prop.Name.Content, false)
				names.AddNameReference(prop.RepNotifyFunc.Content, false)
			}
		}
	}
	names.AddNameReference("None", false)
}

func exportAsNormal(e Export) (*NormalExport, bool) {
	switch v := e.(type) {
	case *NormalExport:
		return v, true
	case *LevelExport:
		return &v.NormalExport, true
	case *StructExport:
		return &v.NormalExport, true
	default:
		return nil, false
	}
}

// collectPropertyTagNames recursively records every FName a property
// tree references, so Write's name table is complete before any property
// payload is serialized.
func collectPropertyTagNames(tag *PropertyTag, names *nameTable) {
	if tag == nil {
		return
	}
	names.AddNameReference(tag.Name.Content, false)
	names.AddNameReference(tag.Type.Content, false)

	switch v := tag.Property.(type) {
	case *StructProperty:
		names.AddNameReference(v.StructName.Content, false)
		for _, child := range v.Properties {
			collectPropertyTagNames(child, names)
		}
	case *EnumProperty:
		names.AddNameReference(v.EnumName.Content, false)
		names.AddNameReference(v.Value.Content, false)
	case *NameProperty:
		names.AddNameReference(v.Value.Content, false)
	case *ArrayProperty:
		names.AddNameReference(v.InnerType.Content, false)
		if v.InnerType.Content == "StructProperty" {
			names.AddNameReference(v.StructName.Content, false)
			for _, el := range v.Elements {
				if props, ok := el.([]*PropertyTag); ok {
					for _, child := range props {
						collectPropertyTagNames(child, names)
					}
				}
			}
		}
	case *SetProperty:
		names.AddNameReference(v.Inner.InnerType.Content, false)
		if v.Inner.InnerType.Content == "StructProperty" {
			names.AddNameReference(v.Inner.StructName.Content, false)
			for _, el := range v.Inner.Elements {
				if props, ok := el.([]*PropertyTag); ok {
					for _, child := range props {
						collectPropertyTagNames(child, names)
					}
				}
			}
		}
	case *MapProperty:
		names.AddNameReference(v.KeyType.Content, false)
		names.AddNameReference(v.ValueType.Content, false)
	case *SoftObjectProperty:
		names.AddNameReference(v.AssetPathName.Content, false)
	case *DelegateProperty:
		names.AddNameReference(v.Value.FunctionName.Content, false)
	case *MulticastDelegateProperty:
		for _, d := range v.Values {
			names.AddNameReference(d.FunctionName.Content, false)
		}
	}
}
