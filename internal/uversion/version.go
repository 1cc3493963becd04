// Package uversion implements the engine-version / custom-version matrix
// threaded through every reader and writer in the codec (spec §4.2).
package uversion

// Milestone engine-version ordinals. Only the handful of milestones the
// codec actually branches on are named; unknown ordinals are never
// produced by this package, matching the closed-enumeration discipline
// the on-disk format itself uses for its version fields.
const (
	VerUE4OldestLoadablePackage int32 = 214
	VerUE4NameHashesSerialized  int32 = 504
	VerUE4_16                  int32 = 507
	VerUE4_27                  int32 = 522
	VerUE5_0                   int32 = 1004
)

// CustomVersionKey identifies a per-subsystem custom-version GUID. The
// concrete GUID bytes live in well_known.go; this is just a lookup key
// so call sites can ask "what's FCoreObjectVersion on this asset" without
// hardcoding sixteen bytes everywhere.
type CustomVersionKey string

// Custom-version subsystems the codec consults during export/property
// serialization.
const (
	KeyCoreObjectVersion   CustomVersionKey = "FCoreObjectVersion"
	KeyFrameworkObjectVer  CustomVersionKey = "FFrameworkObjectVersion"
	KeyReleaseObjectVer    CustomVersionKey = "FReleaseObjectVersion"
	KeyEditorObjectVersion CustomVersionKey = "FEditorObjectVersion"
)

// FCoreObjectVersion ordinals (subset the struct-export codec needs).
const (
	FCoreObjectVersionBeforeCustomVersionWasAdded int32 = 0
	FCoreObjectVersionFProperties                 int32 = 3
)

// FAssetRegistryVersionType ordinals, in the closed enumeration the
// registry codec switches on (spec §4.8, §3).
type RegistryVersion int32

// Registry format milestones, in increasing order.
const (
	RegistryVersionPreVersioning                RegistryVersion = 0
	RegistryVersionHardSoftDependencies         RegistryVersion = 1
	RegistryVersionAddAssetRegistryState         RegistryVersion = 2
	RegistryVersionChangedAssetData              RegistryVersion = 3
	RegistryVersionRemovedMD5Hash                RegistryVersion = 5
	RegistryVersionAddedCookedMD5Hash            RegistryVersion = 6
	RegistryVersionWorkspaceDomain               RegistryVersion = 9
	RegistryVersionPackageImportedClasses        RegistryVersion = 10
	RegistryVersionPackageFileSummaryVersionChg  RegistryVersion = 11
	RegistryVersionAddedDependencyFlags          RegistryVersion = 12
	RegistryVersionFixedTags                     RegistryVersion = 13
	RegistryVersionLatest                        = RegistryVersionFixedTags
)

// CustomVersion is a (subsystem GUID, integer version) pair as stored
// per-package.
type CustomVersion struct {
	Key     CustomVersionKey
	GUID    [16]byte
	Version int32
}

// Matrix bundles the engine version and every custom version known for
// one asset/registry session. It is passed around by reference (never
// copied into call signatures) exactly as spec §4.9/§9 require: version
// state is read-available at every call site via the owning
// reader/writer, not threaded as a parameter.
type Matrix struct {
	EngineVersion  int32
	CustomVersions map[CustomVersionKey]CustomVersion
}

// NewMatrix builds a Matrix for the given engine version with no custom
// versions set; callers populate CustomVersions as they're discovered
// from the package's own custom-version table.
func NewMatrix(engineVersion int32) *Matrix {
	return &Matrix{
		EngineVersion:  engineVersion,
		CustomVersions: make(map[CustomVersionKey]CustomVersion),
	}
}

// AtLeast reports whether the engine version is >= milestone.
func (m *Matrix) AtLeast(milestone int32) bool {
	return m.EngineVersion >= milestone
}

// Before reports whether the engine version is < milestone.
func (m *Matrix) Before(milestone int32) bool {
	return m.EngineVersion < milestone
}

// CustomVersion returns the version integer registered for key, or 0 if
// the subsystem was never declared for this package (matching the Rust
// source's CustomVersion::new([0u8;16], 0) fallback for raw readers with
// no custom-version table at all).
func (m *Matrix) CustomVersion(key CustomVersionKey) int32 {
	if m == nil || m.CustomVersions == nil {
		return 0
	}
	return m.CustomVersions[key].Version
}

// SetCustomVersion records a subsystem version, overwriting any prior
// entry for the same key.
func (m *Matrix) SetCustomVersion(key CustomVersionKey, guid [16]byte, version int32) {
	if m.CustomVersions == nil {
		m.CustomVersions = make(map[CustomVersionKey]CustomVersion)
	}
	m.CustomVersions[key] = CustomVersion{Key: key, GUID: guid, Version: version}
}

// String renders a registry milestone the way pe.go's ImageDirectoryEntry
// stringifies its own closed enumeration, for log lines and error text.
func (v RegistryVersion) String() string {
	names := map[RegistryVersion]string{
		RegistryVersionPreVersioning:               "PreVersioning",
		RegistryVersionHardSoftDependencies:        "HardSoftDependencies",
		RegistryVersionAddAssetRegistryState:       "AddAssetRegistryState",
		RegistryVersionChangedAssetData:            "ChangedAssetData",
		RegistryVersionRemovedMD5Hash:              "RemovedMD5Hash",
		RegistryVersionAddedCookedMD5Hash:          "AddedCookedMD5Hash",
		RegistryVersionWorkspaceDomain:             "WorkspaceDomain",
		RegistryVersionPackageImportedClasses:      "PackageImportedClasses",
		RegistryVersionPackageFileSummaryVersionChg: "PackageFileSummaryVersionChange",
		RegistryVersionAddedDependencyFlags:        "AddedDependencyFlags",
		RegistryVersionFixedTags:                   "FixedTags",
	}
	if name, ok := names[v]; ok {
		return name
	}
	return "Unknown"
}
