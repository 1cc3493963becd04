package uasset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galehaven/uasset/internal/kismet"
	"github.com/galehaven/uasset/internal/uversion"
)

func baseExportFixture() BaseExport {
	return BaseExport{
		ClassIndex:   PackageIndex{Index: -1},
		OuterIndex:   PackageIndex{Index: 0},
		ObjectName:   FName{Content: "MyActor"},
		ObjectFlags:  0x21,
		SerialOffset: 0,
	}
}

func TestBaseExportRoundTrip(t *testing.T) {
	matrix := uversion.NewMatrix(uversion.VerUE4_27)
	base := baseExportFixture()

	w := NewRawWriter(matrix)
	require.NoError(t, writeBaseExport(w, base))

	r := NewRawReader(w.Bytes(), matrix)
	got, err := readBaseExport(r)
	require.NoError(t, err)
	assert.Equal(t, base, got)
}

func TestNormalExportRoundTrip(t *testing.T) {
	matrix := uversion.NewMatrix(uversion.VerUE4_27)
	exp := &NormalExport{
		BaseExport: baseExportFixture(),
		Properties: []*PropertyTag{
			{Name: FName{Content: "Health"}, Type: FName{Content: "IntProperty"}, Property: &Int32Property{Value: 100}},
		},
	}

	exp.Extras = []byte{0xDE, 0xAD, 0xBE, 0xEF}

	w := NewRawWriter(matrix)
	require.NoError(t, exp.WriteBody(w))

	r := NewRawReader(w.Bytes(), matrix)
	got := &NormalExport{BaseExport: exp.BaseExport}
	require.NoError(t, got.ReadBody(r, int64(len(w.Bytes()))))

	require.Len(t, got.Properties, 1)
	assert.Equal(t, "Health", got.Properties[0].Name.Content)
	assert.Equal(t, int32(100), got.Properties[0].Property.(*Int32Property).Value)
	assert.Equal(t, exp.Extras, got.Extras)
}

func TestLevelExportRoundTrip(t *testing.T) {
	matrix := uversion.NewMatrix(uversion.VerUE4_27)
	value := "/Script/Engine.World"
	exp := &LevelExport{
		NormalExport:     NormalExport{BaseExport: baseExportFixture()},
		IndexData:        []int32{3, 4, 5},
		LevelType:        NamespacedString{Value: &value},
		FlagsProbably:    0x1,
		MiscCategoryData: []int32{10, 20, 30},
	}

	w := NewRawWriter(matrix)
	require.NoError(t, exp.WriteBody(w))

	r := NewRawReader(w.Bytes(), matrix)
	got := &LevelExport{NormalExport: NormalExport{BaseExport: exp.BaseExport}}
	require.NoError(t, got.ReadBody(r, int64(len(w.Bytes()))))

	require.Len(t, got.IndexData, 3)
	assert.Equal(t, int32(3), got.IndexData[0])
	require.NotNil(t, got.LevelType.Value)
	assert.Equal(t, value, *got.LevelType.Value)
	assert.Nil(t, got.LevelType.Namespace)
	assert.Equal(t, uint64(0x1), got.FlagsProbably)
	assert.Equal(t, []int32{10, 20, 30}, got.MiscCategoryData)
}

func TestStructExportWithDecodableBytecodeRoundTrip(t *testing.T) {
	matrix := uversion.NewMatrix(uversion.VerUE4_27)
	matrix.SetCustomVersion(uversion.KeyCoreObjectVersion, uversion.KeyGUID(uversion.KeyCoreObjectVersion), uversion.FCoreObjectVersionFProperties)

	exp := &StructExport{
		NormalExport: NormalExport{BaseExport: baseExportFixture()},
		Properties: []FPropertyDescriptor{
			{Name: FName{Content: "Count"}, PropertyFlags: 0x1},
		},
		ScriptBytecode: []kismet.Expression{
			{Op: kismet.OpIntConst, Int32: 7},
			{Op: kismet.OpReturn},
		},
		bytecodeWasDecoded: true,
	}

	w := NewRawWriter(matrix)
	require.NoError(t, exp.WriteBody(w))

	r := NewRawReader(w.Bytes(), matrix)
	got := &StructExport{NormalExport: NormalExport{BaseExport: exp.BaseExport}}
	require.NoError(t, got.ReadBody(r, int64(len(w.Bytes()))))

	require.Len(t, got.Properties, 1)
	assert.Equal(t, "Count", got.Properties[0].Name.Content)
	assert.True(t, got.bytecodeWasDecoded)
	require.Len(t, got.ScriptBytecode, 2)
	assert.Equal(t, int32(7), got.ScriptBytecode[0].Int32)
}

func TestStructExportFallsBackToRawOnUndecodableBytecode(t *testing.T) {
	matrix := uversion.NewMatrix(uversion.VerUE4_27)

	base := baseExportFixture()

	// Hand-assemble a struct export body with a garbage bytecode opcode
	// so the reader must fall back to raw storage (spec §4.9).
	w := NewRawWriter(matrix)
	normal := &NormalExport{BaseExport: base}
	require.NoError(t, normal.WriteBody(w))
	require.NoError(t, w.WritePackageIndex(PackageIndex{}))
	require.NoError(t, w.WriteI32(0)) // no children
	// FProperty descriptor count is skipped entirely below
	// uversion.FCoreObjectVersionFProperties — matrix carries no custom
	// version here, so the reader never expects that field.
	require.NoError(t, w.WriteI32(1)) // bytecode size
	require.NoError(t, w.WriteI32(1)) // storage size
	require.NoError(t, w.WriteU8(0xFF))

	r := NewRawReader(w.Bytes(), matrix)
	got := &StructExport{NormalExport: NormalExport{BaseExport: base}}
	require.NoError(t, got.ReadBody(r, int64(len(w.Bytes()))))

	assert.False(t, got.bytecodeWasDecoded)
	assert.Equal(t, []byte{0xFF}, got.ScriptBytecodeRaw)
}
