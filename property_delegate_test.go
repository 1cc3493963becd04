package uasset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelegatePropertyRoundTrip(t *testing.T) {
	tag := &PropertyTag{
		Name: FName{Content: "OnDeath"},
		Type: FName{Content: "DelegateProperty"},
		Property: &DelegateProperty{
			Value: ScriptDelegate{
				Object:       PackageIndex{Index: 7},
				FunctionName: FName{Content: "HandleDeath"},
			},
		},
	}

	got := writeAndReadTaggedProperty(t, tag)
	require.IsType(t, &DelegateProperty{}, got.Property)
	dp := got.Property.(*DelegateProperty)
	assert.Equal(t, int32(7), dp.Value.Object.Index)
	assert.Equal(t, "HandleDeath", dp.Value.FunctionName.Content)
}

func TestMulticastDelegatePropertyRoundTrip(t *testing.T) {
	tag := &PropertyTag{
		Name: FName{Content: "OnDamaged"},
		Type: FName{Content: "MulticastInlineDelegateProperty"},
		Property: &MulticastDelegateProperty{
			Values: []ScriptDelegate{
				{Object: PackageIndex{Index: 1}, FunctionName: FName{Content: "Handler1"}},
				{Object: PackageIndex{Index: 2}, FunctionName: FName{Content: "Handler2"}},
			},
		},
	}

	got := writeAndReadTaggedProperty(t, tag)
	mp := got.Property.(*MulticastDelegateProperty)
	require.Len(t, mp.Values, 2)
	assert.Equal(t, "Handler1", mp.Values[0].FunctionName.Content)
	assert.Equal(t, "Handler2", mp.Values[1].FunctionName.Content)
}

func TestViewTargetBlendParamsPropertyRoundTrip(t *testing.T) {
	tag := &PropertyTag{
		Name: FName{Content: "BlendParams"},
		Type: FName{Content: "ViewTargetBlendParamsProperty"},
		Property: &ViewTargetBlendParamsProperty{
			BlendTime:     1.5,
			BlendFunction: 2,
			BlendExp:      0.25,
			LockOutgoing:  true,
		},
	}

	got := writeAndReadTaggedProperty(t, tag)
	vp := got.Property.(*ViewTargetBlendParamsProperty)
	assert.Equal(t, float32(1.5), vp.BlendTime)
	assert.Equal(t, uint8(2), vp.BlendFunction)
	assert.Equal(t, float32(0.25), vp.BlendExp)
	assert.True(t, vp.LockOutgoing)
}
