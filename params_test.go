package texconv

import (
	"testing"

	"github.com/soypat/geometry/ms2"
)

func TestSetShaderParameters(t *testing.T) {
	var (
		gotSlot  = -1
		gotCount = -1
		staging  [8]float32
	)
	upload := func(slot, vec4Count int) []float32 {
		gotSlot, gotCount = slot, vec4Count
		return staging[:]
	}

	blk := ms2.Vec{X: 4, Y: 4}
	buf := ms2.Vec{X: 640, Y: 528}
	region := ms2.Box{
		Min: ms2.Vec{X: 32, Y: 64},
		Max: ms2.Vec{X: 160, Y: 192},
	}
	if err := SetShaderParameters(upload, blk, buf, region); err != nil {
		t.Fatal(err)
	}
	if gotSlot != UniformSlot || gotCount != 2 {
		t.Errorf("upload called with slot=%d count=%d, want slot=%d count=2", gotSlot, gotCount, UniformSlot)
	}
	want := [8]float32{4, 4, 640, 528, 128, 127, 32, 64}
	if staging != want {
		t.Errorf("constants = %v, want %v", staging, want)
	}
}

func TestSetShaderParametersShortBuffer(t *testing.T) {
	upload := func(slot, vec4Count int) []float32 { return make([]float32, 4) }
	err := SetShaderParameters(upload, ms2.Vec{}, ms2.Vec{}, ms2.Box{})
	if err == nil {
		t.Error("expected error for undersized staging buffer")
	}
}
