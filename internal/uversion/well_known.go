package uversion

// Well-known custom-version GUIDs, keyed by the subsystem names declared
// in Key* above. A package's custom-version table on disk is a flat list
// of (GUID, version) pairs; this lookup is what turns a parsed GUID back
// into the named key the rest of the codec branches on (spec §4.2).
var wellKnownGUIDs = map[CustomVersionKey][16]byte{
	KeyCoreObjectVersion:   {0x4C, 0xE7, 0x5A, 0x7B, 0x10, 0xC2, 0x46, 0xA4, 0x8D, 0xC7, 0xB4, 0x81, 0xF8, 0x28, 0x0E, 0x38},
	KeyFrameworkObjectVer:  {0xCF, 0xFC, 0x74, 0x3F, 0x9E, 0x68, 0x40, 0xB5, 0xA0, 0x4C, 0xAF, 0xA9, 0xE3, 0xBE, 0x37, 0x02},
	KeyReleaseObjectVer:    {0x97, 0xA8, 0xB7, 0xA9, 0x68, 0x36, 0x43, 0xA5, 0xB8, 0xA9, 0xA6, 0x55, 0xAF, 0xFF, 0xEB, 0x41},
	KeyEditorObjectVersion: {0xB6, 0x86, 0xA4, 0xB9, 0xDF, 0xCC, 0x45, 0x35, 0x8E, 0x0B, 0x6E, 0xEC, 0x69, 0x4A, 0xD3, 0x12},
}

// GUIDToKey resolves a parsed custom-version GUID to its named key.
// Unrecognized GUIDs return ok=false; the caller keeps the raw GUID under
// a synthesized key so the version is still recorded and round-trips,
// even though nothing in this codec branches on it by name.
func GUIDToKey(guid [16]byte) (CustomVersionKey, bool) {
	for key, known := range wellKnownGUIDs {
		if known == guid {
			return key, true
		}
	}
	return "", false
}

// KeyGUID returns the well-known GUID bytes for key, or the zero GUID if
// key names a subsystem this package doesn't track (should not happen for
// the Key* constants declared above).
func KeyGUID(key CustomVersionKey) [16]byte {
	return wellKnownGUIDs[key]
}
