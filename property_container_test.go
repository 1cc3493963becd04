package uasset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galehaven/uasset/internal/uversion"
)

func TestArrayPropertyOfIntRoundTrip(t *testing.T) {
	tag := &PropertyTag{
		Name: FName{Content: "Scores"},
		Type: FName{Content: "ArrayProperty"},
		Property: &ArrayProperty{
			InnerType: FName{Content: "IntProperty"},
			Elements: []interface{}{
				&Int32Property{Value: 1},
				&Int32Property{Value: 2},
				&Int32Property{Value: 3},
			},
		},
	}

	got := writeAndReadTaggedProperty(t, tag)
	require.IsType(t, &ArrayProperty{}, got.Property)
	ap := got.Property.(*ArrayProperty)
	require.Len(t, ap.Elements, 3)
	for i, want := range []int32{1, 2, 3} {
		require.IsType(t, &Int32Property{}, ap.Elements[i])
		assert.Equal(t, want, ap.Elements[i].(*Int32Property).Value)
	}
}

func TestArrayPropertyOfStructRoundTrip(t *testing.T) {
	tag := &PropertyTag{
		Name: FName{Content: "Locations"},
		Type: FName{Content: "ArrayProperty"},
		Property: &ArrayProperty{
			InnerType:  FName{Content: "StructProperty"},
			StructName: FName{Content: "Vector"},
			Elements: []interface{}{
				Vector{X: 1, Y: 2, Z: 3},
				Vector{X: 4, Y: 5, Z: 6},
			},
		},
	}

	got := writeAndReadTaggedProperty(t, tag)
	require.IsType(t, &ArrayProperty{}, got.Property)
	ap := got.Property.(*ArrayProperty)
	assert.Equal(t, "Vector", ap.StructName.Content)
	require.Len(t, ap.Elements, 2)
	assert.Equal(t, Vector{X: 1, Y: 2, Z: 3}, ap.Elements[0])
	assert.Equal(t, Vector{X: 4, Y: 5, Z: 6}, ap.Elements[1])
}

func TestArrayPropertyOfNestedStructPropertiesRoundTrip(t *testing.T) {
	tag := &PropertyTag{
		Name: FName{Content: "Items"},
		Type: FName{Content: "ArrayProperty"},
		Property: &ArrayProperty{
			InnerType:  FName{Content: "StructProperty"},
			StructName: FName{Content: "InventoryItem"},
			Elements: []interface{}{
				[]*PropertyTag{
					{Name: FName{Content: "Id"}, Type: FName{Content: "IntProperty"}, Property: &Int32Property{Value: 5}},
				},
			},
		},
	}

	got := writeAndReadTaggedProperty(t, tag)
	ap := got.Property.(*ArrayProperty)
	require.Len(t, ap.Elements, 1)
	props, ok := ap.Elements[0].([]*PropertyTag)
	require.True(t, ok)
	require.Len(t, props, 1)
	assert.Equal(t, int32(5), props[0].Property.(*Int32Property).Value)
}

func TestSetPropertyRoundTrip(t *testing.T) {
	tag := &PropertyTag{
		Name: FName{Content: "Tags"},
		Type: FName{Content: "SetProperty"},
		Property: &SetProperty{
			Inner: ArrayProperty{
				InnerType: FName{Content: "NameProperty"},
				Elements: []interface{}{
					&NameProperty{Value: FName{Content: "Red"}},
					&NameProperty{Value: FName{Content: "Blue"}},
				},
			},
		},
	}

	got := writeAndReadTaggedProperty(t, tag)
	require.IsType(t, &SetProperty{}, got.Property)
	sp := got.Property.(*SetProperty)
	require.Len(t, sp.Inner.Elements, 2)
	assert.Equal(t, "Red", sp.Inner.Elements[0].(*NameProperty).Value.Content)
	assert.Equal(t, "Blue", sp.Inner.Elements[1].(*NameProperty).Value.Content)
}

func TestMapPropertyRoundTrip(t *testing.T) {
	tag := &PropertyTag{
		Name: FName{Content: "Inventory"},
		Type: FName{Content: "MapProperty"},
		Property: &MapProperty{
			KeyType:   FName{Content: "NameProperty"},
			ValueType: FName{Content: "IntProperty"},
			Keys: []Property{
				&NameProperty{Value: FName{Content: "Sword"}},
				&NameProperty{Value: FName{Content: "Shield"}},
			},
			Values: []Property{
				&Int32Property{Value: 1},
				&Int32Property{Value: 2},
			},
		},
	}

	got := writeAndReadTaggedProperty(t, tag)
	require.IsType(t, &MapProperty{}, got.Property)
	mp := got.Property.(*MapProperty)
	require.Len(t, mp.Keys, 2)
	require.Len(t, mp.Values, 2)
	assert.Equal(t, "Sword", mp.Keys[0].(*NameProperty).Value.Content)
	assert.Equal(t, int32(1), mp.Values[0].(*Int32Property).Value)
}

func TestMapPropertyKeyOverride(t *testing.T) {
	matrix := uversion.NewMatrix(uversion.VerUE4_27)

	w := NewRawWriter(matrix)
	tag := &PropertyTag{
		Name: FName{Content: "ByteMap"},
		Type: FName{Content: "MapProperty"},
		Property: &MapProperty{
			KeyType:   FName{Content: "UInt32Property"}, // placeholder; override drives resolution
			ValueType: FName{Content: "IntProperty"},
			Keys:      []Property{&UInt32Property{Value: 1}},
			Values:    []Property{&Int32Property{Value: 2}},
		},
	}
	require.NoError(t, WritePropertyTagged(w, tag))
	require.NoError(t, WriteNoneSentinel(w))

	r := NewRawReader(w.Bytes(), matrix)
	r.MapKeyOverride = map[string]string{"ByteMap": "IntProperty"}
	got, err := ReadPropertyTagged(r)
	require.NoError(t, err)
	require.NotNil(t, got)
	mp := got.Property.(*MapProperty)
	assert.Equal(t, "IntProperty", mp.KeyType.Content)
}
