package uasset

// Fuzz is the legacy go-fuzz entry point (github.com/dvyukov/go-fuzz):
// feed it raw bytes and it reports whether the corpus input was worth
// keeping. Kept alongside the native FuzzAsset/FuzzAssetRegistry testing.F
// harnesses in asset_fuzz_test.go since both styles of fuzzing this
// module's dependency on go-fuzz's legacy corpus format coexist in
// practice.
func Fuzz(data []byte) int {
	a, err := NewBytes(data, &AssetOptions{})
	if err != nil {
		return 0
	}
	defer a.Close()
	if _, err := a.Write(); err != nil {
		return 0
	}
	return 1
}

// FuzzRegistry is the registry-codec counterpart of Fuzz.
func FuzzRegistry(data []byte) int {
	reg, err := NewRegistryBytes(data, &AssetOptions{})
	if err != nil {
		return 0
	}
	defer reg.Close()
	if _, err := reg.Write(); err != nil {
		return 0
	}
	return 1
}
