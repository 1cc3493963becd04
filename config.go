package uasset

import (
	"github.com/BurntSushi/toml"

	"github.com/galehaven/uasset/internal/uversion"
)

// VersionProfile names an engine-version + custom-version combination so
// callers don't have to hand-type a custom-version table on every run
// (spec §9.3). This is the one legitimate codec-adjacent sliver of the
// out-of-scope modloader configuration surface: naming a profile, not
// modloader state.
type VersionProfile struct {
	Name            string           `toml:"name"`
	EngineVersion   int32            `toml:"engine_version"`
	CustomVersions  map[string]int32 `toml:"custom_versions"`
}

// profileFile is the on-disk shape of a --profile TOML file: a table of
// named profiles keyed by friendly name ("UE4.27", "UE5.1").
type profileFile struct {
	Profiles map[string]VersionProfile `toml:"profiles"`
}

// LoadVersionProfiles parses a TOML profile file at path.
func LoadVersionProfiles(path string) (map[string]VersionProfile, error) {
	var pf profileFile
	if _, err := toml.DecodeFile(path, &pf); err != nil {
		return nil, err
	}
	return pf.Profiles, nil
}

// Matrix builds an uversion.Matrix from the profile, resolving each named
// custom-version subsystem to its well-known GUID.
func (p VersionProfile) Matrix() *uversion.Matrix {
	m := uversion.NewMatrix(p.EngineVersion)
	for name, version := range p.CustomVersions {
		key := uversion.CustomVersionKey(name)
		m.SetCustomVersion(key, uversion.KeyGUID(key), version)
	}
	return m
}
