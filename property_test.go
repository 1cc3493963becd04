package uasset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galehaven/uasset/internal/uversion"
)

// writeAndReadTaggedProperty round-trips one PropertyTag through
// WritePropertyTagged/ReadPropertyTagged over a raw (inline-name) stream,
// the simplest of the two Reader/Writer encodings.
func writeAndReadTaggedProperty(t *testing.T, tag *PropertyTag) *PropertyTag {
	t.Helper()
	matrix := uversion.NewMatrix(uversion.VerUE4_27)

	w := NewRawWriter(matrix)
	require.NoError(t, WritePropertyTagged(w, tag))
	require.NoError(t, WriteNoneSentinel(w))

	r := NewRawReader(w.Bytes(), matrix)
	got, err := ReadPropertyTagged(r)
	require.NoError(t, err)
	require.NotNil(t, got)

	sentinel, err := ReadPropertyTagged(r)
	require.NoError(t, err)
	assert.Nil(t, sentinel)

	return got
}

func TestIntPropertyRoundTrip(t *testing.T) {
	tag := &PropertyTag{
		Name:     FName{Content: "Health"},
		Type:     FName{Content: "IntProperty"},
		Property: &Int32Property{Value: -42},
	}

	got := writeAndReadTaggedProperty(t, tag)

	assert.Equal(t, tag.Name, got.Name)
	assert.Equal(t, tag.Type, got.Type)
	require.IsType(t, &Int32Property{}, got.Property)
	assert.Equal(t, int32(-42), got.Property.(*Int32Property).Value)
}

func TestFloatPropertyRoundTrip(t *testing.T) {
	tag := &PropertyTag{
		Name:     FName{Content: "Speed"},
		Type:     FName{Content: "FloatProperty"},
		Property: &FloatProperty{Value: 1.25},
	}

	got := writeAndReadTaggedProperty(t, tag)
	require.IsType(t, &FloatProperty{}, got.Property)
	assert.Equal(t, float32(1.25), got.Property.(*FloatProperty).Value)
}

func TestBoolPropertyRoundTrip(t *testing.T) {
	tag := &PropertyTag{
		Name:      FName{Content: "bHidden"},
		Type:      FName{Content: "BoolProperty"},
		BoolValue: true,
		Property:  &BoolProperty{},
	}

	got := writeAndReadTaggedProperty(t, tag)
	assert.True(t, got.BoolValue)
}

func TestBytePropertyRawRoundTrip(t *testing.T) {
	tag := &PropertyTag{
		Name:     FName{Content: "Flags"},
		Type:     FName{Content: "ByteProperty"},
		Property: &ByteProperty{Value: 7},
	}

	got := writeAndReadTaggedProperty(t, tag)
	require.IsType(t, &ByteProperty{}, got.Property)
	bp := got.Property.(*ByteProperty)
	assert.False(t, bp.IsLong)
	assert.Equal(t, int64(7), bp.Value)
}

func TestBytePropertyLongValueRoundTrip(t *testing.T) {
	tag := &PropertyTag{
		Name:     FName{Content: "State"},
		Type:     FName{Content: "ByteProperty"},
		Property: &ByteProperty{IsLong: true, Value: 1234567890},
	}

	got := writeAndReadTaggedProperty(t, tag)
	require.IsType(t, &ByteProperty{}, got.Property)
	bp := got.Property.(*ByteProperty)
	assert.True(t, bp.IsLong)
	assert.Equal(t, int64(1234567890), bp.Value)
}

func TestBytePropertyHeaderEnumTypeRoundTrip(t *testing.T) {
	enumType := int64(42)
	tag := &PropertyTag{
		Name:     FName{Content: "State"},
		Type:     FName{Content: "ByteProperty"},
		Property: &ByteProperty{EnumType: &enumType, Value: 3},
	}

	got := writeAndReadTaggedProperty(t, tag)
	require.IsType(t, &ByteProperty{}, got.Property)
	bp := got.Property.(*ByteProperty)
	require.NotNil(t, bp.EnumType)
	assert.Equal(t, int64(42), *bp.EnumType)
	assert.Equal(t, int64(3), bp.Value)
}

func TestStructPropertyMathValueRoundTrip(t *testing.T) {
	tag := &PropertyTag{
		Name: FName{Content: "RelativeLocation"},
		Type: FName{Content: "StructProperty"},
		Property: &StructProperty{
			StructName: FName{Content: "Vector"},
			MathValue:  Vector{X: 1, Y: 2, Z: 3},
		},
	}

	got := writeAndReadTaggedProperty(t, tag)
	require.IsType(t, &StructProperty{}, got.Property)
	sp := got.Property.(*StructProperty)
	assert.Equal(t, "Vector", sp.StructName.Content)
	assert.Equal(t, Vector{X: 1, Y: 2, Z: 3}, sp.MathValue)
}

func TestStructPropertyNestedPropertiesRoundTrip(t *testing.T) {
	inner := &PropertyTag{
		Name:     FName{Content: "Count"},
		Type:     FName{Content: "IntProperty"},
		Property: &Int32Property{Value: 9},
	}
	tag := &PropertyTag{
		Name: FName{Content: "Payload"},
		Type: FName{Content: "StructProperty"},
		Property: &StructProperty{
			StructName: FName{Content: "MyCustomStruct"},
			Properties: []*PropertyTag{inner},
		},
	}

	got := writeAndReadTaggedProperty(t, tag)
	require.IsType(t, &StructProperty{}, got.Property)
	sp := got.Property.(*StructProperty)
	require.Len(t, sp.Properties, 1)
	require.IsType(t, &Int32Property{}, sp.Properties[0].Property)
	assert.Equal(t, int32(9), sp.Properties[0].Property.(*Int32Property).Value)
}

func TestEnumPropertyRoundTrip(t *testing.T) {
	tag := &PropertyTag{
		Name: FName{Content: "CurrentState"},
		Type: FName{Content: "EnumProperty"},
		Property: &EnumProperty{
			EnumName: FName{Content: "EMyEnum"},
			Value:    FName{Content: "EMyEnum::Idle"},
		},
	}

	got := writeAndReadTaggedProperty(t, tag)
	require.IsType(t, &EnumProperty{}, got.Property)
	ep := got.Property.(*EnumProperty)
	assert.Equal(t, "EMyEnum", ep.EnumName.Content)
	assert.Equal(t, "EMyEnum::Idle", ep.Value.Content)
}

func TestReadPropertyTaggedRejectsUnknownType(t *testing.T) {
	matrix := uversion.NewMatrix(uversion.VerUE4_27)
	w := NewRawWriter(matrix)

	require.NoError(t, w.WriteFName(FName{Content: "Whatever"}))
	require.NoError(t, w.WriteFName(FName{Content: "TotallyMadeUpProperty"}))
	require.NoError(t, w.WriteI32(0)) // size
	require.NoError(t, w.WriteI32(0)) // array index
	require.NoError(t, w.WriteBool(false))

	r := NewRawReader(w.Bytes(), matrix)
	_, err := ReadPropertyTagged(r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownPropertyType)
}
