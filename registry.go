package uasset

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/galehaven/uasset/internal/ulog"
	"github.com/galehaven/uasset/internal/uversion"
)

// Registry files carry no magic tag, only a version; anything past the
// newest layout this codec understands is rejected outright (spec §4.8).
const maxSupportedRegistryVersion = uversion.RegistryVersionLatest

// AssetData is one catalogued asset entry (spec §4.8).
type AssetData struct {
	ObjectPath FName
	PackageName FName
	PackagePath FName
	AssetClass FName
	Tags       map[FName]string
	Dependencies []PackageIndex
}

// AssetPackageData carries per-package metadata the registry indexes
// alongside its AssetData entries, with fields gated field-by-field on
// RegistryVersion exactly as unreal_asset/src/registry/objects/asset_package_data.rs
// does (spec §11 supplement).
type AssetPackageData struct {
	DiskSize        int64
	PackageGuid     Guid
	CookedHash      []byte // present from RegistryVersionAddedCookedMD5Hash onward
	FileVersionUE4  int32
	FileVersionUE5  int32 // present from RegistryVersionPackageFileSummaryVersionChg onward
	LicenseeVersion int32
	Flags           uint32 // present from RegistryVersionWorkspaceDomain onward
	CustomVersions  []uversion.CustomVersion
	ImportedClasses []FName // present from RegistryVersionPackageImportedClasses
}

// DependsNode is one node of the dependency graph (spec §4.8): the
// package it represents, and its hard and soft dependency edges.
// Pre/post RegistryVersionAddedDependencyFlags use two different wire
// layouts (the flag byte per edge was added in the later layout).
type DependsNode struct {
	PackageName FName
	HardDependencies []PackageIndex
	SoftDependencies []PackageIndex
	DependencyFlags  []uint8 // parallel to the concatenation of hard+soft, only when AddedDependencyFlags
}

// AssetRegistry is a parsed .assetregistry.bin / DevelopmentAssetRegistry
// snapshot (spec §4.8).
type AssetRegistry struct {
	Version      uversion.RegistryVersion
	Assets       []AssetData
	DependsNodes []DependsNode
	PackageData  map[FName]AssetPackageData

	data mmap.MMap
	buf  []byte
	f    *os.File
	opts *AssetOptions
	logger *ulog.Helper
}

// OpenRegistryFile memory-maps and parses a registry file.
func OpenRegistryFile(name string, opts *AssetOptions) (*AssetRegistry, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	reg := newAssetRegistry(opts)
	reg.data = data
	reg.buf = data
	reg.f = f
	if err := reg.Parse(); err != nil {
		reg.Close()
		return nil, err
	}
	return reg, nil
}

// NewRegistryBytes parses an in-memory registry buffer.
func NewRegistryBytes(data []byte, opts *AssetOptions) (*AssetRegistry, error) {
	reg := newAssetRegistry(opts)
	reg.buf = data
	if err := reg.Parse(); err != nil {
		return nil, err
	}
	return reg, nil
}

func newAssetRegistry(opts *AssetOptions) *AssetRegistry {
	r := &AssetRegistry{PackageData: make(map[FName]AssetPackageData)}
	if opts != nil {
		r.opts = opts
	} else {
		r.opts = &AssetOptions{}
	}
	var logger ulog.Logger
	if r.opts.Logger == nil {
		logger = ulog.NewFilter(ulog.NewStdLogger(os.Stdout), ulog.FilterLevel(ulog.LevelError))
	} else {
		logger = r.opts.Logger
	}
	r.logger = ulog.NewHelper(logger)
	return r
}

// Close releases the mmap and file handle, if any.
func (reg *AssetRegistry) Close() error {
	if reg.data != nil {
		_ = reg.data.Unmap()
	}
	if reg.f != nil {
		return reg.f.Close()
	}
	return nil
}

// Parse reads the registry header and body (spec §4.8): version,
// optional (pre-RemovedMD5Hash only) MD5 hash, name table, asset-data
// array, and the version-gated dependency/package-data sections.
func (reg *AssetRegistry) Parse() error {
	if reg.opts.Metrics != nil {
		stop := reg.opts.Metrics.ObserveParse("registry")
		defer stop()
	}

	raw := newPrimitiveReader(reg.buf)
	version, err := raw.ReadI32()
	if err != nil {
		return err
	}
	reg.Version = uversion.RegistryVersion(version)
	if reg.Version > maxSupportedRegistryVersion {
		return NewRegistryVersionError("AssetRegistryVersion", version)
	}

	if reg.Version < uversion.RegistryVersionRemovedMD5Hash {
		if _, err := raw.bytes(16); err != nil { // legacy whole-file MD5 hash, unused
			return err
		}
	}

	matrix := uversion.NewMatrix(uversion.VerUE4_27)
	table, err := readInlineNameTable(raw, matrix)
	if err != nil {
		return err
	}
	r := &Reader{primitiveReader: raw, Matrix: matrix, names: table}

	assetCount, err := r.ReadI32()
	if err != nil {
		return err
	}
	if assetCount < 0 {
		return NewInvalidFileError(r.Position(), "negative asset count %d", assetCount)
	}
	for i := int32(0); i < assetCount; i++ {
		ad, err := reg.readAssetData(r)
		if err != nil {
			return err
		}
		reg.Assets = append(reg.Assets, ad)
	}

	if reg.Version >= uversion.RegistryVersionHardSoftDependencies {
		depCountOffset, err := r.ReadI32() // back-patched section length, spec §4.8
		if err != nil {
			return err
		}
		sectionEnd := r.Position() + int64(depCountOffset)

		nodeCount, err := r.ReadI32()
		if err != nil {
			return err
		}
		if nodeCount < 0 {
			return NewInvalidFileError(r.Position(), "negative depends-node count %d", nodeCount)
		}
		for i := int32(0); i < nodeCount; i++ {
			node, err := reg.readDependsNode(r)
			if err != nil {
				return err
			}
			reg.DependsNodes = append(reg.DependsNodes, node)
		}

		if r.Position() != sectionEnd {
			reg.logger.Warnf("dependency section declared %d bytes, consumed %d", depCountOffset, r.Position()-(sectionEnd-int64(depCountOffset)))
			r.SetPosition(sectionEnd)
		}
	}

	if reg.Version >= uversion.RegistryVersionAddAssetRegistryState {
		packageCount, err := r.ReadI32()
		if err != nil {
			return err
		}
		if packageCount < 0 {
			return NewInvalidFileError(r.Position(), "negative package-data count %d", packageCount)
		}
		for i := int32(0); i < packageCount; i++ {
			name, err := r.ReadFName()
			if err != nil {
				return err
			}
			pd, err := reg.readAssetPackageData(r)
			if err != nil {
				return err
			}
			reg.PackageData[name] = pd
		}
	}

	return nil
}

func (reg *AssetRegistry) readAssetData(r *Reader) (AssetData, error) {
	var ad AssetData
	var err error
	if ad.ObjectPath, err = r.ReadFName(); err != nil {
		return ad, err
	}
	if ad.PackageName, err = r.ReadFName(); err != nil {
		return ad, err
	}
	if ad.PackagePath, err = r.ReadFName(); err != nil {
		return ad, err
	}
	if ad.AssetClass, err = r.ReadFName(); err != nil {
		return ad, err
	}

	tagCount, err := r.ReadI32()
	if err != nil {
		return ad, err
	}
	if tagCount < 0 {
		return ad, NewInvalidFileError(r.Position(), "negative tag count %d", tagCount)
	}
	ad.Tags = make(map[FName]string, tagCount)
	for i := int32(0); i < tagCount; i++ {
		key, err := r.ReadFName()
		if err != nil {
			return ad, err
		}
		value, _, err := r.ReadString()
		if err != nil {
			return ad, err
		}
		ad.Tags[key] = value
	}

	if reg.Version >= uversion.RegistryVersionHardSoftDependencies {
		deps, err := ReadArray(r, func(r *Reader) (PackageIndex, error) { return r.ReadPackageIndex() })
		if err != nil {
			return ad, err
		}
		ad.Dependencies = deps
	}
	return ad, nil
}

func (reg *AssetRegistry) readDependsNode(r *Reader) (DependsNode, error) {
	var node DependsNode
	name, err := r.ReadFName()
	if err != nil {
		return node, err
	}
	node.PackageName = name

	readEdges := func() ([]PackageIndex, error) {
		return ReadArray(r, func(r *Reader) (PackageIndex, error) { return r.ReadPackageIndex() })
	}

	hard, err := readEdges()
	if err != nil {
		return node, err
	}
	node.HardDependencies = hard

	soft, err := readEdges()
	if err != nil {
		return node, err
	}
	node.SoftDependencies = soft

	if reg.Version >= uversion.RegistryVersionAddedDependencyFlags {
		flags, err := ReadArrayWithLength(r, int32(len(hard)+len(soft)), func(r *Reader) (uint8, error) { return r.ReadU8() })
		if err != nil {
			return node, err
		}
		node.DependencyFlags = flags
	}
	return node, nil
}

func (reg *AssetRegistry) readAssetPackageData(r *Reader) (AssetPackageData, error) {
	var pd AssetPackageData
	diskSize, err := r.ReadI64()
	if err != nil {
		return pd, err
	}
	pd.DiskSize = diskSize

	guid, err := r.ReadGuid()
	if err != nil {
		return pd, err
	}
	pd.PackageGuid = guid

	if reg.Version >= uversion.RegistryVersionAddedCookedMD5Hash {
		hash := make([]byte, 16)
		if err := r.ReadExact(hash); err != nil {
			return pd, err
		}
		pd.CookedHash = hash
	}

	// FileVersionUE4/FileVersionUE5/LicenseeVersion/Flags/CustomVersions
	// are only present from RegistryVersionWorkspaceDomain onward; below
	// that, unreal_asset's AssetPackageData::new leaves them at their
	// zero values except LicenseeVersion, which defaults to -1.
	pd.LicenseeVersion = -1

	if reg.Version >= uversion.RegistryVersionWorkspaceDomain {
		fv4, err := r.ReadI32()
		if err != nil {
			return pd, err
		}
		pd.FileVersionUE4 = fv4

		if reg.Version >= uversion.RegistryVersionPackageFileSummaryVersionChg {
			fv5, err := r.ReadI32()
			if err != nil {
				return pd, err
			}
			pd.FileVersionUE5 = fv5
		}

		licensee, err := r.ReadI32()
		if err != nil {
			return pd, err
		}
		pd.LicenseeVersion = licensee

		flags, err := r.ReadU32()
		if err != nil {
			return pd, err
		}
		pd.Flags = flags

		customCount, err := r.ReadI32()
		if err != nil {
			return pd, err
		}
		if customCount < 0 {
			return pd, NewInvalidFileError(r.Position(), "negative custom version count %d", customCount)
		}
		for i := int32(0); i < customCount; i++ {
			guid, err := r.ReadGuid()
			if err != nil {
				return pd, err
			}
			version, err := r.ReadI32()
			if err != nil {
				return pd, err
			}
			key, ok := uversion.GUIDToKey(guid)
			if !ok {
				key = uversion.CustomVersionKey(guid.String())
			}
			pd.CustomVersions = append(pd.CustomVersions, uversion.CustomVersion{Key: key, GUID: guid, Version: version})
		}
	}

	if reg.Version >= uversion.RegistryVersionPackageImportedClasses {
		classes, err := ReadArray(r, func(r *Reader) (FName, error) { return r.ReadFName() })
		if err != nil {
			return pd, err
		}
		pd.ImportedClasses = classes
	}
	return pd, nil
}

// Write serializes the registry back to bytes, rebuilding the inline
// name table from every FName the asset-data and depends-node sections
// reference and back-patching the dependency section's byte length
// exactly as Parse expects to read it (spec §4.8, §4.9).
func (reg *AssetRegistry) Write() ([]byte, error) {
	if reg.opts != nil && reg.opts.Metrics != nil {
		stop := reg.opts.Metrics.ObserveParse("registry_write")
		defer stop()
	}

	names := newNameTable()
	for _, ad := range reg.Assets {
		names.AddNameReference(ad.ObjectPath.Content, false)
		names.AddNameReference(ad.PackageName.Content, false)
		names.AddNameReference(ad.PackagePath.Content, false)
		names.AddNameReference(ad.AssetClass.Content, false)
		for k := range ad.Tags {
			names.AddNameReference(k.Content, false)
		}
	}
	for _, node := range reg.DependsNodes {
		names.AddNameReference(node.PackageName.Content, false)
	}
	for name, pd := range reg.PackageData {
		names.AddNameReference(name.Content, false)
		for _, c := range pd.ImportedClasses {
			names.AddNameReference(c.Content, false)
		}
	}
	lookup := make(map[string]int32, names.Len())
	for i, s := range names.entries {
		lookup[s] = int32(i)
	}

	matrix := uversion.NewMatrix(uversion.VerUE4_27)
	w := NewNameTableWriter(matrix, lookup)

	if err := w.WriteI32(int32(reg.Version)); err != nil {
		return nil, err
	}
	if err := writeLegacyNameTable(w, names, matrix); err != nil {
		return nil, err
	}

	if err := w.WriteI32(int32(len(reg.Assets))); err != nil {
		return nil, err
	}
	for _, ad := range reg.Assets {
		if err := reg.writeAssetData(w, ad); err != nil {
			return nil, err
		}
	}

	if reg.Version >= uversion.RegistryVersionHardSoftDependencies {
		sizeOffset, err := w.reserveI32()
		if err != nil {
			return nil, err
		}
		bodyStart := w.Position()

		if err := w.WriteI32(int32(len(reg.DependsNodes))); err != nil {
			return nil, err
		}
		for _, node := range reg.DependsNodes {
			if err := reg.writeDependsNode(w, node); err != nil {
				return nil, err
			}
		}
		if err := w.patchI32(sizeOffset, int32(w.Position()-bodyStart), w.Position()); err != nil {
			return nil, err
		}
	}

	if reg.Version >= uversion.RegistryVersionAddAssetRegistryState {
		if err := w.WriteI32(int32(len(reg.PackageData))); err != nil {
			return nil, err
		}
		for name, pd := range reg.PackageData {
			if err := w.WriteFName(name); err != nil {
				return nil, err
			}
			if err := reg.writeAssetPackageData(w, pd); err != nil {
				return nil, err
			}
		}
	}

	return w.Bytes(), nil
}

func (reg *AssetRegistry) writeAssetData(w *Writer, ad AssetData) error {
	if err := w.WriteFName(ad.ObjectPath); err != nil {
		return err
	}
	if err := w.WriteFName(ad.PackageName); err != nil {
		return err
	}
	if err := w.WriteFName(ad.PackagePath); err != nil {
		return err
	}
	if err := w.WriteFName(ad.AssetClass); err != nil {
		return err
	}
	if err := w.WriteI32(int32(len(ad.Tags))); err != nil {
		return err
	}
	for k, v := range ad.Tags {
		if err := w.WriteFName(k); err != nil {
			return err
		}
		if _, err := w.WriteString(v, false); err != nil {
			return err
		}
	}
	if reg.Version >= uversion.RegistryVersionHardSoftDependencies {
		if err := w.WriteI32(int32(len(ad.Dependencies))); err != nil {
			return err
		}
		for _, d := range ad.Dependencies {
			if err := w.WritePackageIndex(d); err != nil {
				return err
			}
		}
	}
	return nil
}

func (reg *AssetRegistry) writeDependsNode(w *Writer, node DependsNode) error {
	if err := w.WriteFName(node.PackageName); err != nil {
		return err
	}
	if err := w.WriteI32(int32(len(node.HardDependencies))); err != nil {
		return err
	}
	for _, d := range node.HardDependencies {
		if err := w.WritePackageIndex(d); err != nil {
			return err
		}
	}
	if err := w.WriteI32(int32(len(node.SoftDependencies))); err != nil {
		return err
	}
	for _, d := range node.SoftDependencies {
		if err := w.WritePackageIndex(d); err != nil {
			return err
		}
	}
	if reg.Version >= uversion.RegistryVersionAddedDependencyFlags {
		for _, flag := range node.DependencyFlags {
			if err := w.WriteU8(flag); err != nil {
				return err
			}
		}
	}
	return nil
}

func (reg *AssetRegistry) writeAssetPackageData(w *Writer, pd AssetPackageData) error {
	if err := w.WriteI64(pd.DiskSize); err != nil {
		return err
	}
	if err := w.WriteGuid(pd.PackageGuid); err != nil {
		return err
	}
	if reg.Version >= uversion.RegistryVersionAddedCookedMD5Hash {
		if err := w.WriteAll(pd.CookedHash); err != nil {
			return err
		}
	}
	if reg.Version >= uversion.RegistryVersionWorkspaceDomain {
		if err := w.WriteI32(pd.FileVersionUE4); err != nil {
			return err
		}
		if reg.Version >= uversion.RegistryVersionPackageFileSummaryVersionChg {
			if err := w.WriteI32(pd.FileVersionUE5); err != nil {
				return err
			}
		}
		if err := w.WriteI32(pd.LicenseeVersion); err != nil {
			return err
		}
		if err := w.WriteU32(pd.Flags); err != nil {
			return err
		}
		if err := w.WriteI32(int32(len(pd.CustomVersions))); err != nil {
			return err
		}
		for _, cv := range pd.CustomVersions {
			if err := w.WriteGuid(Guid(cv.GUID)); err != nil {
				return err
			}
			if err := w.WriteI32(cv.Version); err != nil {
				return err
			}
		}
	}
	if reg.Version >= uversion.RegistryVersionPackageImportedClasses {
		if err := w.WriteI32(int32(len(pd.ImportedClasses))); err != nil {
			return err
		}
		for _, c := range pd.ImportedClasses {
			if err := w.WriteFName(c); err != nil {
				return err
			}
		}
	}
	return nil
}
